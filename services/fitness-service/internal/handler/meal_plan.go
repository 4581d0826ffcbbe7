package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

func (h *httpHandler) createMealPlan(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateMealPlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	plan, err := h.mealPlanUsecase.CreateMealPlan(r.Context(), identity(r).UserID, req.ToParams())
	if err != nil {
		h.writeResourceError(w, r, mealPlanResource, actionCreate, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusCreated, plan)
}

func (h *httpHandler) listMealPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.mealPlanUsecase.ListMealPlans(r.Context(), identity(r).UserID)
	if err != nil {
		h.log(r).Error().Err(err).Msg("failed to list meal plans")
		_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Failed to retrieve meal plans")
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, emptyIfNil(plans))
}

func (h *httpHandler) getMealPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.mealPlanUsecase.GetMealPlan(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeResourceError(w, r, mealPlanResource, actionRead, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, plan)
}

func (h *httpHandler) updateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateMealPlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	plan, err := h.mealPlanUsecase.UpdateMealPlan(r.Context(), identity(r).UserID, chi.URLParam(r, "id"), req.ToParams())
	if err != nil {
		h.writeResourceError(w, r, mealPlanResource, actionUpdate, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, plan)
}

func (h *httpHandler) deleteMealPlan(w http.ResponseWriter, r *http.Request) {
	err := h.mealPlanUsecase.DeleteMealPlan(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeResourceError(w, r, mealPlanResource, actionDelete, err)
		return
	}

	_ = utilities.WriteMessage(w, http.StatusOK, "Meal plan removed")
}
