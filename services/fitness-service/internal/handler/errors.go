package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/usecase"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

// resource names an owned collection in client-facing messages.
type resource struct {
	singular string
	title    string
}

var (
	nutritionGoalResource = resource{singular: "nutrition goal", title: "Nutrition goal"}
	mealPlanResource      = resource{singular: "meal plan", title: "Meal plan"}
	workoutPlanResource   = resource{singular: "workout plan", title: "Workout plan"}
)

// action is what the caller attempted: verb is used in 403 messages and
// failure in 500 messages.
type action struct {
	verb    string
	failure string
}

var (
	actionCreate = action{verb: "create", failure: "create"}
	actionRead   = action{verb: "access", failure: "retrieve"}
	actionUpdate = action{verb: "update", failure: "update"}
	actionDelete = action{verb: "delete", failure: "delete"}
)

func (h *httpHandler) writeResourceError(
	w http.ResponseWriter,
	r *http.Request,
	res resource,
	act action,
	err error,
) {
	switch {
	case errors.Is(err, usecase.ErrInvalidID):
		_ = utilities.WriteMessage(w, http.StatusBadRequest, "Invalid "+res.singular+" ID")
	case errors.Is(err, usecase.ErrNotFound):
		_ = utilities.WriteMessage(w, http.StatusNotFound, res.title+" not found")
	case errors.Is(err, usecase.ErrForbidden):
		h.log(r).Warn().Str("resource", res.singular).Msg("rejected access to foreign resource")
		_ = utilities.WriteMessage(w, http.StatusForbidden, "Not authorized to "+act.verb+" this "+res.singular)
	default:
		h.log(r).Error().Err(err).Str("resource", res.singular).Msg("failed to " + act.failure + " resource")
		_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Failed to "+act.failure+" "+res.singular)
	}
}

// emptyIfNil keeps list responses as [] rather than null.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
