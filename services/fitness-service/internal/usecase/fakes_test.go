package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/repository"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/provider"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/security"
)

var errStore = errors.New("store unavailable")

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}
}

func newTestHasher(t *testing.T) *security.PasswordHasher {
	t.Helper()

	hasher, err := security.NewPasswordHasher(security.Config{
		Algorithm:  security.AlgorithmBcrypt,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	return hasher
}

type failingHasher struct{}

func (failingHasher) HashPassword(string) (string, error) { return "", errors.New("entropy exhausted") }

func (failingHasher) VerifyPassword(string, string) (bool, error) { return false, nil }

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[bson.ObjectID]*model.User
	updates   []repository.UpdateUserParams
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[bson.ObjectID]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored

	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	user, ok := f.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) GetUserWithoutCredentials(ctx context.Context, id string) (*model.User, error) {
	user, err := f.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return nil, f.updateErr
	}

	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	user, ok := f.users[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		for otherID, other := range f.users {
			if otherID != objectID && other.Email == *params.Email {
				return nil, duplicateKeyError()
			}
		}
		user.Email = *params.Email
	}
	if params.DisplayName != nil {
		user.DisplayName = *params.DisplayName
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.Profile != nil {
		profile := *params.Profile
		user.Profile = &profile
	}
	if params.LastLoginAt != nil {
		lastLogin := *params.LastLoginAt
		user.LastLoginAt = &lastLogin
	}

	f.updates = append(f.updates, params)

	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) delete(id bson.ObjectID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.users, id)
}

type fakeTokenRepo struct {
	mu        sync.Mutex
	tokens    []*model.PasswordResetToken
	deleteErr error
	now       func() time.Time
}

func newFakeTokenRepo(now func() time.Time) *fakeTokenRepo {
	return &fakeTokenRepo{now: now}
}

func (f *fakeTokenRepo) UpsertByUser(
	_ context.Context,
	userID, token string,
	expiresAt time.Time,
) (*model.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	for _, t := range f.tokens {
		if t.UserID == ownerID {
			t.Token = token
			t.ExpiresAt = expiresAt
			t.CreatedAt = f.now()
			cp := *t
			return &cp, nil
		}
	}

	t := &model.PasswordResetToken{
		ID:        bson.NewObjectID(),
		UserID:    ownerID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: f.now(),
	}
	f.tokens = append(f.tokens, t)

	cp := *t
	return &cp, nil
}

func (f *fakeTokenRepo) GetActiveByToken(_ context.Context, token string) (*model.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tokens {
		if t.Token == token && t.ExpiresAt.After(f.now()) {
			cp := *t
			return &cp, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeTokenRepo) ListActive(_ context.Context) ([]*model.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var active []*model.PasswordResetToken
	for _, t := range f.tokens {
		if t.ExpiresAt.After(f.now()) {
			cp := *t
			active = append(active, &cp)
		}
	}

	return active, nil
}

func (f *fakeTokenRepo) DeleteToken(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return f.deleteErr
	}

	for i, t := range f.tokens {
		if t.ID.Hex() == id {
			f.tokens = append(f.tokens[:i], f.tokens[i+1:]...)
			return nil
		}
	}

	return nil
}

func (f *fakeTokenRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.tokens)
}

type sentEmail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, sentEmail{to: to, subject: subject, body: htmlBody})
	return nil
}

type fakeGoogle struct {
	enabled bool
	profile *provider.GoogleProfile
	err     error
}

func (g *fakeGoogle) Enabled() bool { return g.enabled }

func (g *fakeGoogle) VerifyIDToken(context.Context, string) (*provider.GoogleProfile, error) {
	return g.profile, g.err
}
