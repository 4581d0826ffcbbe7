package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/fitness-tracker-api/services/fitness-service/internal/payload"
	"github.com/vasapolrittideah/fitness-tracker-api/shared/utilities"
)

func (h *httpHandler) createWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateWorkoutPlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params, err := req.ToParams()
	if err != nil {
		_ = utilities.WriteMessage(w, http.StatusBadRequest, "Invalid routine data")
		return
	}

	plan, err := h.workoutPlanUsecase.CreateWorkoutPlan(r.Context(), identity(r).UserID, params)
	if err != nil {
		h.writeResourceError(w, r, workoutPlanResource, actionCreate, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusCreated, plan)
}

func (h *httpHandler) listWorkoutPlans(w http.ResponseWriter, r *http.Request) {
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	plans, err := h.workoutPlanUsecase.ListWorkoutPlans(r.Context(), identity(r).UserID, status)
	if err != nil {
		h.log(r).Error().Err(err).Msg("failed to list workout plans")
		_ = utilities.WriteMessage(w, http.StatusInternalServerError, "Failed to retrieve workout plans")
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, emptyIfNil(plans))
}

func (h *httpHandler) getWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.workoutPlanUsecase.GetWorkoutPlan(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeResourceError(w, r, workoutPlanResource, actionRead, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, plan)
}

func (h *httpHandler) updateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateWorkoutPlanRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params, err := req.ToParams()
	if err != nil {
		_ = utilities.WriteMessage(w, http.StatusBadRequest, "Invalid routine data")
		return
	}

	plan, err := h.workoutPlanUsecase.UpdateWorkoutPlan(r.Context(), identity(r).UserID, chi.URLParam(r, "id"), params)
	if err != nil {
		h.writeResourceError(w, r, workoutPlanResource, actionUpdate, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, plan)
}

func (h *httpHandler) updateWorkoutProgress(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProgressRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	plan, err := h.workoutPlanUsecase.UpdateProgress(
		r.Context(),
		identity(r).UserID,
		chi.URLParam(r, "id"),
		*req.DaysCompleted,
	)
	if err != nil {
		h.writeResourceError(w, r, workoutPlanResource, action{verb: "update", failure: "update progress of"}, err)
		return
	}

	_ = utilities.WriteJSON(w, http.StatusOK, plan)
}

func (h *httpHandler) deleteWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	err := h.workoutPlanUsecase.DeleteWorkoutPlan(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeResourceError(w, r, workoutPlanResource, actionDelete, err)
		return
	}

	_ = utilities.WriteMessage(w, http.StatusOK, "Workout plan removed")
}
