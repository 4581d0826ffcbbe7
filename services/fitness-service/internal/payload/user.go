package payload

import (
	"time"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/model"
	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type AuthResponse struct {
	ID          string `json:"_id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Token       string `json:"token"`
}

func NewAuthResponse(result *usecase.AuthResult) AuthResponse {
	return AuthResponse{
		ID:          result.User.ID.Hex(),
		DisplayName: result.User.DisplayName,
		Email:       result.User.Email,
		Token:       result.Token,
	}
}

type ProfileResponse struct {
	ID          string         `json:"_id"`
	DisplayName string         `json:"displayName"`
	Email       string         `json:"email"`
	Profile     *model.Profile `json:"profile"`
	CreatedAt   *time.Time     `json:"createdAt,omitempty"`
	LastLogin   *time.Time     `json:"lastLogin,omitempty"`
	Token       string         `json:"token,omitempty"`
}

func NewProfileResponse(user *model.User) ProfileResponse {
	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{}
	}

	resp := ProfileResponse{
		ID:          user.ID.Hex(),
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Profile:     profile,
		LastLogin:   user.LastLoginAt,
	}
	if !user.CreatedAt.IsZero() {
		createdAt := user.CreatedAt
		resp.CreatedAt = &createdAt
	}

	return resp
}

type UpdateProfileRequest struct {
	DisplayName *string         `json:"displayName" validate:"omitempty,min=1,max=100"`
	Email       *string         `json:"email"       validate:"omitempty,email"`
	Password    *string         `json:"password"    validate:"omitempty,min=8,max=72"`
	Profile     *ProfileRequest `json:"profile"`
}

type ProfileRequest struct {
	Gender        *string               `json:"gender"        validate:"omitempty,oneof=male female"`
	Age           *int                  `json:"age"           validate:"omitempty,min=1,max=120"`
	Height        *float64              `json:"height"        validate:"omitempty,gt=0"`
	Weight        *float64              `json:"weight"        validate:"omitempty,gt=0"`
	DailyActivity *DailyActivityRequest `json:"dailyActivity"`
}

type DailyActivityRequest struct {
	SleepHours      *float64 `json:"sleepHours"      validate:"omitempty,min=0,max=24"`
	SittingHours    *float64 `json:"sittingHours"    validate:"omitempty,min=0,max=24"`
	WalkingMinutes  *float64 `json:"walkingMinutes"  validate:"omitempty,min=0"`
	StrengthMinutes *float64 `json:"strengthMinutes" validate:"omitempty,min=0"`
	CardioMinutes   *float64 `json:"cardioMinutes"   validate:"omitempty,min=0"`
}

func (r UpdateProfileRequest) ToParams() usecase.UpdateProfileParams {
	params := usecase.UpdateProfileParams{
		DisplayName: r.DisplayName,
		Email:       r.Email,
		Password:    r.Password,
	}

	if p := r.Profile; p != nil {
		params.Profile = &usecase.ProfilePatch{
			Gender: p.Gender,
			Age:    p.Age,
			Height: p.Height,
			Weight: p.Weight,
		}
		if a := p.DailyActivity; a != nil {
			params.Profile.DailyActivity = &model.DailyActivity{
				SleepHours:      a.SleepHours,
				SittingHours:    a.SittingHours,
				WalkingMinutes:  a.WalkingMinutes,
				StrengthMinutes: a.StrengthMinutes,
				CardioMinutes:   a.CardioMinutes,
			}
		}
	}

	return params
}
