package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/config"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/mailer"
)

// PasswordResetUsecase defines the business logic for password reset token operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a reset token for email and sends the reset code.
	// It returns the issued token, or "" when no account uses email.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword replaces the password of the account that owns code.
	ResetPassword(ctx context.Context, code, newPassword string) error
}

const resetTokenBytes = 32

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrResetInputRequired = errors.New("verification code and new password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidResetCode   = errors.New("invalid or expired verification code")
	ErrNotificationFailed = errors.New("failed to send password reset email")
	ErrTokenCleanupFailed = errors.New("failed to delete password reset token")
)

type passwordResetUsecase struct {
	userRepo  repository.UserRepository
	tokenRepo repository.PasswordResetTokenRepository
	hasher    PasswordHasher
	mailer    mailer.Sender
	resetCfg  config.PasswordResetConfig
	now       func() time.Time
	random    io.Reader
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	hasher PasswordHasher,
	mailer mailer.Sender,
	resetCfg config.PasswordResetConfig,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		mailer:    mailer,
		resetCfg:  resetCfg,
		now:       time.Now,
		random:    rand.Reader,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", ErrEmailRequired
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email does not exist.
			return "", nil
		}
		return "", err
	}

	token, err := u.generateResetToken()
	if err != nil {
		return "", err
	}

	expiresAt := u.now().Add(u.resetCfg.ExpiresIn)
	if _, err := u.tokenRepo.UpsertByUser(ctx, user.ID.Hex(), token, expiresAt); err != nil {
		return "", err
	}

	subject := fmt.Sprintf("Reset Your %s Password", u.resetCfg.AppName)
	body := u.resetEmailBody(user.DisplayName, u.verificationCode(token))

	if err := u.mailer.SendHTML([]string{user.Email}, subject, body); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNotificationFailed, err)
	}

	return token, nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, code, newPassword string) error {
	code = strings.TrimSpace(code)
	if code == "" || newPassword == "" {
		return ErrResetInputRequired
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	resetToken, err := u.findActiveToken(ctx, code)
	if err != nil {
		return err
	}

	user, err := u.userRepo.GetUser(ctx, resetToken.UserID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	passwordHash, err := hashPassword(u.hasher, newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return err
	}

	// The token is consumed only once the new password is stored.
	if err := u.tokenRepo.DeleteToken(ctx, resetToken.ID.Hex()); err != nil {
		return fmt.Errorf("%w: %w", ErrTokenCleanupFailed, err)
	}

	return nil
}

// findActiveToken resolves code to an unexpired token. A code of exactly the
// verification code length is compared case-insensitively against the prefix
// of every active token and the first match wins; any other code must equal
// a full token.
func (u *passwordResetUsecase) findActiveToken(ctx context.Context, code string) (*model.PasswordResetToken, error) {
	now := u.now()

	if len(code) == u.resetCfg.CodeLength {
		tokens, err := u.tokenRepo.ListActive(ctx)
		if err != nil {
			return nil, err
		}

		for _, t := range tokens {
			if len(t.Token) >= len(code) && strings.EqualFold(t.Token[:len(code)], code) && t.Active(now) {
				return t, nil
			}
		}

		return nil, ErrInvalidResetCode
	}

	resetToken, err := u.tokenRepo.GetActiveByToken(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidResetCode
		}
		return nil, err
	}

	if !resetToken.Active(now) {
		return nil, ErrInvalidResetCode
	}

	return resetToken, nil
}

func (u *passwordResetUsecase) generateResetToken() (string, error) {
	bytes := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(u.random, bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// verificationCode is the human-enterable form of token sent by email.
func (u *passwordResetUsecase) verificationCode(token string) string {
	n := min(u.resetCfg.CodeLength, len(token))
	return strings.ToUpper(token[:n])
}

func (u *passwordResetUsecase) resetEmailBody(name, code string) string {
	if name == "" {
		name = "there"
	}
	appName := html.EscapeString(u.resetCfg.AppName)

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; color: #333;">
			<h1 style="color: #0097a7; text-align: center;">%s</h1>
			<p>Hello %s,</p>
			<p>You requested to reset your password. Please use the verification code below:</p>
			<p style="text-align: center; font-size: 24px; letter-spacing: 5px; font-weight: bold;">%s</p>
			<p>Enter this code in the app to set a new password.</p>
			<p>If you did not request this, please ignore this email and your password will remain unchanged.</p>
			<p>This code will expire in %s.</p>
			<p>Regards,<br>%s Team</p>
		</div>
	`, appName, html.EscapeString(name), code, u.resetCfg.ExpiresIn, appName)
}
