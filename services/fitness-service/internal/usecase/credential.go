package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vasapolrittideah/fitness-tracker-api/shared/provider"
)

const MinPasswordLength = 8

var ErrPasswordHashing = errors.New("failed to hash password")

// PasswordHasher produces and checks salted password digests.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// TokenIssuer mints and verifies bearer tokens bound to a user id.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// GoogleVerifier checks Google ID tokens.
type GoogleVerifier interface {
	Enabled() bool
	VerifyIDToken(ctx context.Context, idToken string) (*provider.GoogleProfile, error)
}

// hashPassword is the only place a password digest is produced. Callers
// store the result as-is.
func hashPassword(hasher PasswordHasher, plaintext string) (string, error) {
	hash, err := hasher.HashPassword(plaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	return hash, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
