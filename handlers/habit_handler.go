package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"habitLogAPI/internal/habit"
	"habitLogAPI/services"
)

type HabitHandler struct {
	habitService *services.HabitService
	log          *zap.Logger
}

func NewHabitHandler(habitService *services.HabitService, log *zap.Logger) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
		log:          log,
	}
}

func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	habits, err := h.habitService.ListHabits(ctx, userID)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req habit.CreateHabitRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	created, err := h.habitService.CreateHabit(ctx, userID, req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req habit.UpdateHabitRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	updated, err := h.habitService.UpdateHabit(ctx, userID, mux.Vars(r)["id"], req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, updated)
}

func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.habitService.DeleteHabit(ctx, userID, mux.Vars(r)["id"]); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully"})
}

// ToggleHabit accepts an optional {"date": "YYYY-MM-DD"}; no body means today.
func (h *HabitHandler) ToggleHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req habit.ToggleRequest
	if err := decodeJSON(r, &req, true); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	out, err := h.habitService.ToggleHabit(ctx, userID, mux.Vars(r)["id"], req.Date)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, out)
}

func (h *HabitHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rw, err := h.habitService.GetRewards(ctx, userID)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rw)
}
