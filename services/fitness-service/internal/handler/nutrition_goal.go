package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

func (h *httpHandler) createNutritionGoal(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateNutritionGoalRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	goal, err := h.nutritionGoalUsecase.CreateNutritionGoal(r.Context(), identity(r).UserID, req.ToParams())
	if err != nil {
		h.writeResourceError(w, r, nutritionGoalResource, actionCreate, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusCreated, goal)
}

func (h *httpHandler) listNutritionGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.nutritionGoalUsecase.ListNutritionGoals(r.Context(), identity(r).UserID)
	if err != nil {
		h.log(r).Error().Err(err).Msg("failed to list nutrition goals")
		_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Failed to retrieve nutrition goals")
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, emptyIfNil(goals))
}

func (h *httpHandler) getNutritionGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.nutritionGoalUsecase.GetNutritionGoal(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeResourceError(w, r, nutritionGoalResource, actionRead, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, goal)
}

func (h *httpHandler) updateNutritionGoal(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateNutritionGoalRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	goal, err := h.nutritionGoalUsecase.UpdateNutritionGoal(
		r.Context(),
		identity(r).UserID,
		chi.URLParam(r, "id"),
		req.ToParams(),
	)
	if err != nil {
		h.writeResourceError(w, r, nutritionGoalResource, actionUpdate, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, goal)
}

func (h *httpHandler) deleteNutritionGoal(w http.ResponseWriter, r *http.Request) {
	err := h.nutritionGoalUsecase.DeleteNutritionGoal(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeResourceError(w, r, nutritionGoalResource, actionDelete, err)
		return
	}

	_ = utilities.WriteMessage(w, http.StatusOK, "Nutrition goal removed")
}
