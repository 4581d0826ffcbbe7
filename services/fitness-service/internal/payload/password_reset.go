package payload

// The reset endpoints validate presence inside the usecase so that the
// response messages stay fixed.

type RequestPasswordResetRequest struct {
	Email string `json:"email"`
}

type RequestPasswordResetResponse struct {
	Message  string `json:"message"`
	DevToken string `json:"devToken,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}
