package security

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

var (
	ErrUnsupportedAlgorithm = errors.New("unsupported password hashing algorithm")
	ErrInvalidHash          = errors.New("invalid password hash")
)

// Config holds the password hashing parameters.
type Config struct {
	Algorithm         string `env:"ALGORITHM"          envDefault:"bcrypt"`
	BcryptCost        int    `env:"BCRYPT_COST"        envDefault:"10"`
	Argon2TimeCost    uint32 `env:"ARGON2_TIME_COST"   envDefault:"3"`
	Argon2MemoryKiB   uint32 `env:"ARGON2_MEMORY_KIB"  envDefault:"65536"`
	Argon2Parallelism uint8  `env:"ARGON2_PARALLELISM" envDefault:"4"`
}

// PasswordHasher hashes new passwords with the configured algorithm and
// verifies both bcrypt and argon2id encoded hashes, so accounts created under
// one setting keep working after the algorithm is switched.
type PasswordHasher struct {
	algorithm  string
	bcryptCost int
	argon      argon2.Config
}

// NewPasswordHasher creates a new PasswordHasher from the given configuration.
func NewPasswordHasher(cfg Config) (*PasswordHasher, error) {
	h := &PasswordHasher{algorithm: cfg.Algorithm}

	switch cfg.Algorithm {
	case AlgorithmBcrypt:
		if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
		}
		h.bcryptCost = cfg.BcryptCost
	case AlgorithmArgon2id:
		argon := argon2.DefaultConfig()
		argon.Mode = argon2.ModeArgon2id
		if cfg.Argon2TimeCost > 0 {
			argon.TimeCost = cfg.Argon2TimeCost
		}
		if cfg.Argon2MemoryKiB > 0 {
			argon.MemoryCost = cfg.Argon2MemoryKiB
		}
		if cfg.Argon2Parallelism > 0 {
			argon.Parallelism = cfg.Argon2Parallelism
		}
		h.argon = argon
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}

	return h, nil
}

// HashPassword returns the salted, encoded hash of password.
func (h *PasswordHasher) HashPassword(password string) (string, error) {
	switch h.algorithm {
	case AlgorithmArgon2id:
		encoded, err := h.argon.HashEncoded([]byte(password))
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(encoded), nil
	default:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %w", err)
		}
		return string(hash), nil
	}
}

// VerifyPassword reports whether password matches the encoded hash.
// A mismatch is (false, nil); a hash that cannot be decoded is an error.
func (h *PasswordHasher) VerifyPassword(password, hash string) (bool, error) {
	if hash == "" {
		return false, ErrInvalidHash
	}

	if strings.HasPrefix(hash, "$argon2") {
		ok, err := argon2.VerifyEncoded([]byte(password), []byte(hash))
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
		}
		return ok, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
}
