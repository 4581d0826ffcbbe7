package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
)

// AuthUsecase defines the interface for account and authentication use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error)

	// ResolveIdentity verifies a bearer token and loads its owner without credentials.
	ResolveIdentity(ctx context.Context, token string) (*Identity, error)

	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (*AuthResult, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	DisplayName string
	Email       string
	Password    string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// UpdateProfileParams carries the optional profile changes. Nil fields are kept.
type UpdateProfileParams struct {
	DisplayName *string
	Email       *string
	Password    *string
	Profile     *ProfilePatch
}

// ProfilePatch is merged field by field into the stored profile.
type ProfilePatch struct {
	Gender        *string
	Age           *int
	Height        *float64
	Weight        *float64
	DailyActivity *model.DailyActivity
}

// AuthResult is a user together with a freshly issued token.
type AuthResult struct {
	User      *model.User
	Token     string
	ExpiresAt time.Time
}

// Identity is the authenticated caller produced by the authentication gate.
type Identity struct {
	UserID string
	User   *model.User
}

var (
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrGoogleSignInDisabled = errors.New("google sign-in is disabled")
	ErrGoogleSignInFailed   = errors.New("google sign-in failed")
)

type authUsecase struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	google   GoogleVerifier
	now      func() time.Time
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	hasher PasswordHasher,
	issuer TokenIssuer,
	google GoogleVerifier,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		google:   google,
		now:      time.Now,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	passwordHash, err := hashPassword(u.hasher, params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		DisplayName:  strings.TrimSpace(params.DisplayName),
		Email:        normalizeEmail(params.Email),
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := u.hasher.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	user, err = u.touchLastLogin(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return u.issue(user)
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	if u.google == nil || !u.google.Enabled() {
		return nil, ErrGoogleSignInDisabled
	}

	profile, err := u.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGoogleSignInFailed, err)
	}

	email := normalizeEmail(profile.Email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		user, err = u.provisionGoogleUser(ctx, email, profile.Name)
	}
	if err != nil {
		return nil, err
	}

	user, err = u.touchLastLogin(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return u.issue(user)
}

// provisionGoogleUser creates an account for a first Google sign-in. The
// password is random so the account can only be reached through Google or
// a password reset.
func (u *authUsecase) provisionGoogleUser(ctx context.Context, email, name string) (*model.User, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(u.hasher, hex.EncodeToString(secret))
	if err != nil {
		return nil, err
	}

	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		DisplayName:  name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent sign-in created the account first.
			return u.userRepo.GetUserByEmail(ctx, email)
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) ResolveIdentity(ctx context.Context, token string) (*Identity, error) {
	userID, err := u.issuer.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetUserWithoutCredentials(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, bson.ErrInvalidHex) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &Identity{UserID: userID, User: user}, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUserWithoutCredentials(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) UpdateProfile(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*AuthResult, error) {
	current, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var update repository.UpdateUserParams

	if params.DisplayName != nil {
		name := strings.TrimSpace(*params.DisplayName)
		update.DisplayName = &name
	}
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		update.Email = &email
	}
	if params.Password != nil {
		passwordHash, err := hashPassword(u.hasher, *params.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &passwordHash
	}
	if params.Profile != nil {
		update.Profile = mergeProfile(current.Profile, params.Profile)
	}

	if update == (repository.UpdateUserParams{}) {
		return u.issue(current)
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, update)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrUserAlreadyExists
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, ErrUserNotFound
		default:
			return nil, err
		}
	}

	return u.issue(user)
}

func (u *authUsecase) touchLastLogin(ctx context.Context, userID string) (*model.User, error) {
	now := u.now()

	return u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{LastLoginAt: &now})
}

func (u *authUsecase) issue(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := u.issuer.Issue(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func mergeProfile(current *model.Profile, patch *ProfilePatch) *model.Profile {
	merged := model.Profile{}
	if current != nil {
		merged = *current
	}

	if patch.Gender != nil {
		merged.Gender = *patch.Gender
	}
	if patch.Age != nil {
		merged.Age = patch.Age
	}
	if patch.Height != nil {
		merged.Height = patch.Height
	}
	if patch.Weight != nil {
		merged.Weight = patch.Weight
	}
	if patch.DailyActivity != nil {
		merged.DailyActivity = mergeDailyActivity(merged.DailyActivity, patch.DailyActivity)
	}

	return &merged
}

func mergeDailyActivity(current, patch *model.DailyActivity) *model.DailyActivity {
	merged := model.DailyActivity{}
	if current != nil {
		merged = *current
	}

	if patch.SleepHours != nil {
		merged.SleepHours = patch.SleepHours
	}
	if patch.SittingHours != nil {
		merged.SittingHours = patch.SittingHours
	}
	if patch.WalkingMinutes != nil {
		merged.WalkingMinutes = patch.WalkingMinutes
	}
	if patch.StrengthMinutes != nil {
		merged.StrengthMinutes = patch.StrengthMinutes
	}
	if patch.CardioMinutes != nil {
		merged.CardioMinutes = patch.CardioMinutes
	}

	return &merged
}
