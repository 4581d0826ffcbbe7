package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token. The user id is carried as "id".
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies access tokens for a single secret and lifetime.
type TokenIssuer struct {
	jwtAuth   JWTAuthenticator
	issuer    string
	secret    string
	expiresIn time.Duration
}

// NewTokenIssuer creates a TokenIssuer. The issuer is also used as the audience.
func NewTokenIssuer(issuer, secret string, expiresIn time.Duration) *TokenIssuer {
	return &TokenIssuer{
		jwtAuth:   NewJWTAuthenticator(issuer, issuer),
		issuer:    issuer,
		secret:    secret,
		expiresIn: expiresIn,
	}
}

// WithClock returns a copy of the issuer that reads the current time from now.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *i
	cp.jwtAuth.now = now
	return &cp
}

// Issue returns a signed token for userID and its expiry time.
func (i *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	now := i.jwtAuth.now()
	expiresAt := now.Add(i.expiresIn)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := i.jwtAuth.GenerateToken(claims, i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify checks signature and expiry of token and returns the user id it carries.
func (i *TokenIssuer) Verify(token string) (string, error) {
	claims := &Claims{}
	if _, err := i.jwtAuth.ValidateTokenWithClaims(token, i.secret, claims); err != nil {
		return "", err
	}

	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
