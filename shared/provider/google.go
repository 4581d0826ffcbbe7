package provider

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var (
	ErrGoogleNotConfigured    = errors.New("google sign-in is not configured")
	ErrInvalidGoogleToken     = errors.New("invalid google id token")
	ErrGoogleEmailMissing     = errors.New("email not found in google claims")
	ErrGoogleEmailNotVerified = errors.New("google email is not verified")
)

// GoogleProfile is the identity asserted by a verified Google ID token.
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
}

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleOAuthProvider verifies Google ID tokens issued for clientID.
type GoogleOAuthProvider struct {
	clientID string
	validate validateFunc
}

func NewGoogleOAuthProvider(clientID string) *GoogleOAuthProvider {
	return &GoogleOAuthProvider{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// Enabled reports whether a client id has been configured.
func (p *GoogleOAuthProvider) Enabled() bool {
	return p.clientID != ""
}

// VerifyIDToken validates signature, audience and expiry of idToken and
// returns the verified profile. Unverified email addresses are rejected.
func (p *GoogleOAuthProvider) VerifyIDToken(ctx context.Context, idToken string) (*GoogleProfile, error) {
	if !p.Enabled() {
		return nil, ErrGoogleNotConfigured
	}

	payload, err := p.validate(ctx, idToken, p.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return nil, ErrGoogleEmailMissing
	}

	if verified, ok := payload.Claims["email_verified"].(bool); !ok || !verified {
		return nil, ErrGoogleEmailNotVerified
	}

	name, _ := payload.Claims["name"].(string)

	return &GoogleProfile{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}
