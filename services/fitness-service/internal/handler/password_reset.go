package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

// resetRequestedMessage is returned whether or not the email is registered.
const resetRequestedMessage = "If an account with that email exists, we have sent password reset instructions."

func (h *httpHandler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.RequestPasswordResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailRequired):
			_ = utilities.WriteMessage(w, http.StatusBadRequest, "Email is required")
		default:
			h.log(r).Error().Err(err).Msg("failed to request password reset")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "An error occurred while processing your request")
		}
		return
	}

	resp := payload.RequestPasswordResetResponse{Message: resetRequestedMessage}
	if h.exposeResetToken {
		resp.DevToken = token
	}

	_ = utilities.WriteJSON(w, http.StatusOK, resp)
}

func (h *httpHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrResetInputRequired):
			_ = utilities.WriteMessage(w, http.StatusBadRequest, "Verification code and new password are required")
		case errors.Is(err, usecase.ErrPasswordTooShort):
			_ = utilities.WriteMessage(w, http.StatusBadRequest, "Password must be at least 8 characters long")
		case errors.Is(err, usecase.ErrInvalidResetCode):
			h.log(r).Warn().Msg("rejected password reset code")
			_ = utilities.WriteMessage(w, http.StatusBadRequest, "Invalid or expired verification code")
		case errors.Is(err, usecase.ErrUserNotFound):
			_ = utilities.WriteMessage(w, http.StatusNotFound, "User not found")
		default:
			h.log(r).Error().Err(err).Msg("failed to reset password")
			_ = utilities.WriteMessage(w, http.StatusInternalServerError, "An error occurred while resetting your password")
		}
		return
	}

	_ = utilities.WriteMessage(w, http.StatusOK, "Password has been reset successfully")
}
