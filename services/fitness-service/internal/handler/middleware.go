package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

var errNoBearerToken = errors.New("missing or non-bearer authorization header")

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *usecase.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller resolved by the authentication gate.
func IdentityFromContext(ctx context.Context) (*usecase.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*usecase.Identity)
	return identity, ok && identity != nil
}

// authenticate admits requests carrying a valid bearer token whose owner
// still exists. Rejections are 401 with one of two fixed messages; the
// actual reason only goes to the log.
func (h *httpHandler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			h.log(r).Warn().Err(err).Msg("rejected unauthenticated request")
			_ = utilities.WriteMessage(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		identity, err := h.authUsecase.ResolveIdentity(r.Context(), token)
		if err != nil {
			h.log(r).Warn().Err(err).Msg("rejected bearer token")
			_ = utilities.WriteMessage(w, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func bearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errNoBearerToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errNoBearerToken
	}

	return token, nil
}

// identity returns the caller of a protected route. The gate guarantees it
// is present.
func identity(r *http.Request) *usecase.Identity {
	id, _ := IdentityFromContext(r.Context())
	return id
}
