package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/config"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/auth"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/security"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

const testSecret = "handler-test-secret"

type testServer struct {
	handler http.Handler
	users   *memUserRepo
	tokens  *memTokenRepo
	mail    *recordingMailer
	issuer  *auth.TokenIssuer
}

type serverOptions struct {
	exposeResetToken bool
	goals            usecase.NutritionGoalUsecase
	healthCheck      HealthCheck
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	logger := zerolog.Nop()

	validator, err := payload.NewValidator()
	require.NoError(t, err)

	hasher, err := security.NewPasswordHasher(security.Config{
		Algorithm:  security.AlgorithmBcrypt,
		BcryptCost: bcrypt.MinCost,
	})
	require.NoError(t, err)

	s := &testServer{
		users:  newMemUserRepo(),
		tokens: &memTokenRepo{},
		mail:   &recordingMailer{},
		issuer: auth.NewTokenIssuer("fitness-service", testSecret, 30*24*time.Hour),
	}

	s.handler = NewHTTPHandler(HTTPHandlerParams{
		Logger:      &logger,
		Validator:   validator,
		AuthUsecase: usecase.NewAuthUsecase(s.users, hasher, s.issuer, disabledGoogle{}),
		PasswordResetUsecase: usecase.NewPasswordResetUsecase(
			s.users,
			s.tokens,
			hasher,
			s.mail,
			config.PasswordResetConfig{ExpiresIn: time.Hour, CodeLength: 8, AppName: "Built by Rain"},
		),
		NutritionGoalUsecase: opts.goals,
		HealthCheck:          opts.healthCheck,
		ExposeResetToken:     opts.exposeResetToken,
	})

	return s
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func (s *testServer) register(t *testing.T, name, email, password string) payload.AuthResponse {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp payload.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) utilities.MessageResponse {
	t.Helper()

	var resp utilities.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestWelcomeAndNotFound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	rec := s.do(t, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Rain Fitness API", decodeMessage(t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/unknown", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found - /api/unknown", decodeMessage(t, rec).Message)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	healthy := newTestServer(t, serverOptions{healthCheck: func(context.Context) error { return nil }})
	assert.Equal(t, http.StatusOK, healthy.do(t, http.MethodGet, "/healthz", nil, "").Code)

	down := newTestServer(t, serverOptions{healthCheck: func(context.Context) error { return errors.New("no primary") }})
	assert.Equal(t, http.StatusServiceUnavailable, down.do(t, http.MethodGet, "/healthz", nil, "").Code)
}

func TestAuthenticate_NoToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	for name, header := range map[string]string{
		"missing":      "",
		"basic scheme": "Basic YWxpY2U6c2VjcmV0",
		"empty bearer": "Bearer ",
		"bare token":   "eyJhbGciOiJIUzI1NiJ9",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Equal(t, "Not authorized, no token", decodeMessage(t, rec).Message, name)
	}
}

func TestAuthenticate_TokenFailed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	alice := s.register(t, "Alice", "alice@example.com", "correct-horse")
	bob := s.register(t, "Bob", "bob@example.com", "battery-staple")
	s.users.remove(bob.ID)

	expired, _, err := s.issuer.
		WithClock(func() time.Time { return time.Now().Add(-31 * 24 * time.Hour) }).
		Issue(alice.ID)
	require.NoError(t, err)

	foreign, _, err := auth.NewTokenIssuer("fitness-service", "someone-elses-secret", time.Hour).Issue(alice.ID)
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":      "not-a-jwt",
		"expired":        expired,
		"foreign secret": foreign,
		"user removed":   bob.Token,
	}

	for name, token := range cases {
		s.users.mu.Lock()
		s.users.reads = 0
		s.users.mu.Unlock()

		rec := s.do(t, http.MethodGet, "/api/users/profile", nil, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
		assert.Equal(t, "Not authorized, token failed", decodeMessage(t, rec).Message, name)

		s.users.mu.Lock()
		assert.LessOrEqual(t, s.users.reads, 1, name)
		s.users.mu.Unlock()
	}
}

func TestAuthenticate_ResolvesIdentity(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	alice := s.register(t, "Alice", "Alice@Example.com", "correct-horse")

	rec := s.do(t, http.MethodGet, "/api/users/profile", nil, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, alice.ID, body["_id"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	s.register(t, "Alice", "alice@example.com", "correct-horse")

	rec := s.do(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "Alice Again",
		"email":    "ALICE@example.com",
		"password": "another-password",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", decodeMessage(t, rec).Message)

	rec = s.do(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "Shorty",
		"email":    "shorty@example.com",
		"password": "short",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeMessage(t, rec)
	assert.Equal(t, "Validation failed", resp.Message)
	assert.Contains(t, resp.Errors, "password")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	s.register(t, "Alice", "alice@example.com", "correct-horse")

	rec := s.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-horse",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeMessage(t, rec).Message)

	rec = s.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong-horse",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeMessage(t, rec).Message)

	rec = s.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp payload.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alice", resp.DisplayName)
}

func TestGoogleSignInDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	rec := s.do(t, http.MethodPost, "/api/users/google", map[string]string{"idToken": "abc"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})
	alice := s.register(t, "Alice", "alice@example.com", "correct-horse")
	s.register(t, "Bob", "bob@example.com", "battery-staple")

	rec := s.do(t, http.MethodPut, "/api/users/profile", map[string]any{
		"email": "BOB@example.com",
	}, alice.Token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/users/profile", map[string]any{
		"displayName": "Alice L.",
		"profile":     map[string]any{"gender": "female", "age": 31},
	}, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp payload.ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice L.", resp.DisplayName)
	require.NotNil(t, resp.Profile)
	require.NotNil(t, resp.Profile.Age)
	assert.Equal(t, 31, *resp.Profile.Age)
	assert.NotEmpty(t, resp.Token)
}

func TestRequestPasswordReset_IdenticalBodiesInProduction(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{exposeResetToken: false})
	s.register(t, "Alice", "alice@example.com", "correct-horse")

	known := s.do(t, http.MethodPost, "/reset/request", map[string]string{"email": "alice@example.com"}, "")
	unknown := s.do(t, http.MethodPost, "/reset/request", map[string]string{"email": "mallory@example.com"}, "")

	require.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Code, unknown.Code)
	assert.Equal(t, known.Body.Bytes(), unknown.Body.Bytes())
	assert.NotContains(t, known.Body.String(), "devToken")
	assert.Len(t, s.mail.bodies, 1)
}

func TestRequestPasswordReset_DevToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{exposeResetToken: true})
	s.register(t, "Alice", "alice@example.com", "correct-horse")

	rec := s.do(t, http.MethodPost, "/api/password-reset/request", map[string]string{"email": "alice@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp payload.RequestPasswordResetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.DevToken, 64)

	rec = s.do(t, http.MethodPost, "/api/password-reset/request", map[string]string{"email": "nobody@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "devToken")

	rec = s.do(t, http.MethodPost, "/api/password-reset/request", map[string]string{"email": "  "}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", decodeMessage(t, rec).Message)
}

func TestPasswordReset_EndToEnd(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{exposeResetToken: true})
	s.register(t, "Alice", "alice@example.com", "old-password")

	rec := s.do(t, http.MethodPost, "/reset/request", map[string]string{"email": "Alice@Example.com "}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var requested payload.RequestPasswordResetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &requested))
	require.Len(t, requested.DevToken, 64)

	code := requested.DevToken[:8]
	require.Len(t, s.mail.bodies, 1)
	assert.Contains(t, s.mail.bodies[0], strings.ToUpper(code))

	rec = s.do(t, http.MethodPost, "/reset/confirm", map[string]string{
		"token":       strings.ToLower(code),
		"newPassword": "new-password",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Password has been reset successfully", decodeMessage(t, rec).Message)

	rec = s.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "old-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "new-password",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/reset/confirm", map[string]string{
		"token":       code,
		"newPassword": "third-password",
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid or expired verification code", decodeMessage(t, rec).Message)
}

func TestResetPassword_Rejections(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{})

	tests := []struct {
		name    string
		body    map[string]string
		message string
	}{
		{
			name:    "missing code",
			body:    map[string]string{"newPassword": "new-password"},
			message: "Verification code and new password are required",
		},
		{
			name:    "missing password",
			body:    map[string]string{"token": "ABCDEF12"},
			message: "Verification code and new password are required",
		},
		{
			name:    "short password",
			body:    map[string]string{"token": "ABCDEF12", "newPassword": "short"},
			message: "Password must be at least 8 characters long",
		},
		{
			name:    "unknown code",
			body:    map[string]string{"token": "ABCDEF12", "newPassword": "new-password"},
			message: "Invalid or expired verification code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/password-reset/confirm", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rec).Message)
		})
	}
}

func TestNutritionGoalErrors(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID().Hex()

	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		err     error
		status  int
		message string
	}{
		{
			name:    "malformed id",
			method:  http.MethodGet,
			path:    "/api/nutrition-goals/not-an-id",
			err:     usecase.ErrInvalidID,
			status:  http.StatusBadRequest,
			message: "Invalid nutrition goal ID",
		},
		{
			name:    "missing",
			method:  http.MethodGet,
			path:    "/api/nutrition-goals/" + id,
			err:     usecase.ErrNotFound,
			status:  http.StatusNotFound,
			message: "Nutrition goal not found",
		},
		{
			name:    "foreign owner",
			method:  http.MethodPut,
			path:    "/api/nutrition-goals/" + id,
			body:    map[string]any{"name": "Cut"},
			err:     usecase.ErrForbidden,
			status:  http.StatusForbidden,
			message: "Not authorized to update this nutrition goal",
		},
		{
			name:    "store failure",
			method:  http.MethodDelete,
			path:    "/api/nutrition-goals/" + id,
			err:     errors.New("connection reset"),
			status:  http.StatusInternalServerError,
			message: "Failed to delete nutrition goal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, serverOptions{goals: &stubNutritionGoalUsecase{err: tt.err}})
			alice := s.register(t, "Alice", "alice@example.com", "correct-horse")

			rec := s.do(t, tt.method, tt.path, tt.body, alice.Token)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decodeMessage(t, rec).Message)
		})
	}
}

func TestNutritionGoals_ListAndDelete(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, serverOptions{goals: &stubNutritionGoalUsecase{goal: &model.NutritionGoal{Name: "Cut"}}})
	alice := s.register(t, "Alice", "alice@example.com", "correct-horse")

	rec := s.do(t, http.MethodGet, "/api/nutrition-goals", nil, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/api/nutrition-goals/"+bson.NewObjectID().Hex(), nil, alice.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Nutrition goal removed", decodeMessage(t, rec).Message)

	rec = s.do(t, http.MethodGet, "/api/nutrition-goals", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
