package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"habitLogAPI/internal/freeze"
	"habitLogAPI/services"
)

type StreakFreezeHandler struct {
	habitService *services.HabitService
	log          *zap.Logger
}

func NewStreakFreezeHandler(habitService *services.HabitService, log *zap.Logger) *StreakFreezeHandler {
	return &StreakFreezeHandler{
		habitService: habitService,
		log:          log,
	}
}

type applyFreezeRequest struct {
	Date string `json:"date"`
}

type applyFreezeResponse struct {
	Success       bool          `json:"success"`
	StreakFreezes *freeze.State `json:"streakFreezes"`
}

func (h *StreakFreezeHandler) GetStreakFreezes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	state, err := h.habitService.GetStreakFreezes(ctx, userID)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, state)
}

func (h *StreakFreezeHandler) ApplyStreakFreeze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req applyFreezeRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	state, err := h.habitService.ApplyStreakFreeze(ctx, userID, req.Date)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, applyFreezeResponse{Success: true, StreakFreezes: state})
}
