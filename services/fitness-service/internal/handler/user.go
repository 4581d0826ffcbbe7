package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

func (h *httpHandler) register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		DisplayName: req.Name,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			_ = utilities.WriteMessage(w, http.StatusConflict, "User already exists")
		default:
			h.log(r).Error().Err(err).Msg("failed to register user")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	_ = utilities.WriteJSON(w, http.StatusCreated, payload.NewAuthResponse(result))
}

func (h *httpHandler) login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			h.log(r).Warn().Msg("failed login attempt")
			_ = utilities.WriteMessage(w, http.StatusUnauthorized, "Invalid email or password")
		default:
			h.log(r).Error().Err(err).Msg("failed to log in")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, payload.NewAuthResponse(result))
}

func (h *httpHandler) loginWithGoogle(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleLoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUsecase.LoginWithGoogle(r.Context(), req.IDToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGoogleSignInDisabled):
			_ = utilities.WriteMessage(w, http.StatusNotFound, "Google sign-in is not enabled")
		case errors.Is(err, usecase.ErrGoogleSignInFailed):
			h.log(r).Warn().Err(err).Msg("rejected google sign-in")
			_ = utilities.WriteMessage(w, http.StatusUnauthorized, "Google sign-in failed")
		default:
			h.log(r).Error().Err(err).Msg("failed to sign in with google")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, payload.NewAuthResponse(result))
}

func (h *httpHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.GetProfile(r.Context(), identity(r).UserID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			_ = utilities.WriteMessage(w, http.StatusNotFound, "User not found")
		default:
			h.log(r).Error().Err(err).Msg("failed to get profile")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, payload.NewProfileResponse(user))
}

func (h *httpHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authUsecase.UpdateProfile(r.Context(), identity(r).UserID, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			_ = utilities.WriteMessage(w, http.StatusConflict, "User already exists")
		case errors.Is(err, usecase.ErrUserNotFound):
			_ = utilities.WriteMessage(w, http.StatusNotFound, "User not found")
		default:
			h.log(r).Error().Err(err).Msg("failed to update profile")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	resp := payload.NewProfileResponse(result.User)
	resp.Token = result.Token

	_ = utilities.WriteJSON(w, http.StatusOK, resp)
}
