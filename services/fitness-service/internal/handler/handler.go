package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/middleware"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/validation"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether the backing store is reachable.
type HealthCheck func(ctx context.Context) error

type HTTPHandlerParams struct {
	Logger               *zerolog.Logger
	Validator            *validation.Validator
	AuthUsecase          usecase.AuthUsecase
	PasswordResetUsecase usecase.PasswordResetUsecase
	NutritionGoalUsecase usecase.NutritionGoalUsecase
	MealPlanUsecase      usecase.MealPlanUsecase
	WorkoutPlanUsecase   usecase.WorkoutPlanUsecase
	HealthCheck          HealthCheck

	// ExposeResetToken adds the issued reset token to reset responses.
	// It must stay false in production.
	ExposeResetToken bool
}

type httpHandler struct {
	logger               *zerolog.Logger
	validator            *validation.Validator
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	nutritionGoalUsecase usecase.NutritionGoalUsecase
	mealPlanUsecase      usecase.MealPlanUsecase
	workoutPlanUsecase   usecase.WorkoutPlanUsecase
	healthCheck          HealthCheck
	exposeResetToken     bool
}

// NewHTTPHandler builds the router of the fitness service.
func NewHTTPHandler(params HTTPHandlerParams) http.Handler {
	h := &httpHandler{
		logger:               params.Logger,
		validator:            params.Validator,
		authUsecase:          params.AuthUsecase,
		passwordResetUsecase: params.PasswordResetUsecase,
		nutritionGoalUsecase: params.NutritionGoalUsecase,
		mealPlanUsecase:      params.MealPlanUsecase,
		workoutPlanUsecase:   params.WorkoutPlanUsecase,
		healthCheck:          params.HealthCheck,
		exposeResetToken:     params.ExposeResetToken,
	}

	return h.routes()
}

func (h *httpHandler) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	r.Get("/", h.welcome)
	r.Get("/healthz", h.health)

	r.Route("/reset", h.passwordResetRoutes)

	r.Route("/api", func(r chi.Router) {
		r.Route("/password-reset", func(r chi.Router) {
			h.passwordResetRoutes(r)
			r.Post("/request-reset", h.requestPasswordReset)
			r.Post("/reset", h.resetPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.register)
			r.Post("/login", h.login)
			r.Post("/google", h.loginWithGoogle)

			r.With(h.authenticate).Get("/profile", h.getProfile)
			r.With(h.authenticate).Put("/profile", h.updateProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Route("/nutrition-goals", func(r chi.Router) {
				r.Post("/", h.createNutritionGoal)
				r.Get("/", h.listNutritionGoals)
				r.Get("/{id}", h.getNutritionGoal)
				r.Put("/{id}", h.updateNutritionGoal)
				r.Delete("/{id}", h.deleteNutritionGoal)
			})

			r.Route("/meal-plans", func(r chi.Router) {
				r.Post("/", h.createMealPlan)
				r.Get("/", h.listMealPlans)
				r.Get("/{id}", h.getMealPlan)
				r.Put("/{id}", h.updateMealPlan)
				r.Delete("/{id}", h.deleteMealPlan)
			})

			r.Route("/workout-plans", func(r chi.Router) {
				r.Post("/", h.createWorkoutPlan)
				r.Get("/", h.listWorkoutPlans)
				r.Get("/{id}", h.getWorkoutPlan)
				r.Put("/{id}", h.updateWorkoutPlan)
				r.Patch("/{id}/progress", h.updateWorkoutProgress)
				r.Delete("/{id}", h.deleteWorkoutPlan)
			})
		})
	})

	return r
}

func (h *httpHandler) passwordResetRoutes(r chi.Router) {
	r.Post("/request", h.requestPasswordReset)
	r.Post("/confirm", h.resetPassword)
}

func (h *httpHandler) welcome(w http.ResponseWriter, _ *http.Request) {
	_ = utilities.WriteMessage(w, http.StatusOK, "Welcome to Rain Fitness API")
}

func (h *httpHandler) health(w http.ResponseWriter, r *http.Request) {
	if h.healthCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.healthCheck(ctx); err != nil {
			h.log(r).Error().Err(err).Msg("health check failed")
			_ = utilities.WriteMessage(w, http.StatusServiceUnavailable, "unavailable")
			return
		}
	}

	_ = utilities.WriteMessage(w, http.StatusOK, "ok")
}

func (h *httpHandler) notFound(w http.ResponseWriter, r *http.Request) {
	_ = utilities.WriteMessage(w, http.StatusNotFound, "Not Found - "+r.URL.RequestURI())
}

func (h *httpHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = utilities.WriteMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed - "+r.Method)
}

// decodeAndValidate reads the JSON body into v and validates it. On failure
// the 400 response has already been written.
func (h *httpHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := utilities.DecodeJSON(w, r, v); err != nil {
		_ = utilities.WriteMessage(w, http.StatusBadRequest, err.Error())
		return false
	}

	if err := h.validator.Struct(v); err != nil {
		var fields validation.FieldErrors
		if errors.As(err, &fields) {
			_ = utilities.WriteJSON(w, http.StatusBadRequest, utilities.MessageResponse{
				Message: "Validation failed",
				Errors:  fields,
			})
			return false
		}

		h.log(r).Error().Err(err).Msg("failed to validate request")
		_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Server error")
		return false
	}

	return true
}

// log returns the request-scoped logger, falling back to the handler logger.
func (h *httpHandler) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return h.logger
}
