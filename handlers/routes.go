package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Handlers struct {
	User         *UserHandler
	Habit        *HabitHandler
	StreakFreeze *StreakFreezeHandler
	Chatbot      *ChatbotHandler
}

type RouterOptions struct {
	// Auth resolves the current user for every /api/v1 route.
	Auth func(http.Handler) http.Handler
	// Middlewares wrap every route, in order.
	Middlewares []mux.MiddlewareFunc
	// Metrics is served at /metrics when set; callers wrap it in auth.
	Metrics http.Handler
	// Ping backs /health.
	Ping        func(ctx context.Context) error
	ServiceName string
}

func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	for _, m := range opts.Middlewares {
		r.Use(m)
	}

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}
	r.HandleFunc("/health", healthHandler(opts)).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	if opts.Auth != nil {
		api.Use(opts.Auth)
	}

	api.HandleFunc("/user", h.User.Register).Methods("POST")
	api.HandleFunc("/user", h.User.GetProfile).Methods("GET")
	api.HandleFunc("/user/settings", h.User.GetSettings).Methods("GET")
	api.HandleFunc("/user/settings", h.User.UpdateSettings).Methods("PUT")
	api.HandleFunc("/user/stats", h.User.GetUserStats).Methods("GET")
	api.HandleFunc("/user/calendar", h.User.GetCalendar).Methods("GET")

	api.HandleFunc("/habits", h.Habit.ListHabits).Methods("GET")
	api.HandleFunc("/habits", h.Habit.CreateHabit).Methods("POST")
	api.HandleFunc("/habits/{id}", h.Habit.UpdateHabit).Methods("PUT")
	api.HandleFunc("/habits/{id}", h.Habit.DeleteHabit).Methods("DELETE")
	api.HandleFunc("/habits/{id}/toggle", h.Habit.ToggleHabit).Methods("POST")
	api.HandleFunc("/rewards", h.Habit.GetRewards).Methods("GET")

	api.HandleFunc("/streak-freeze", h.StreakFreeze.GetStreakFreezes).Methods("GET")
	api.HandleFunc("/streak-freeze/apply", h.StreakFreeze.ApplyStreakFreeze).Methods("POST")

	api.HandleFunc("/chatbot/ask", h.Chatbot.Ask).Methods("POST")

	return r
}

func healthHandler(opts RouterOptions) http.HandlerFunc {
	name := opts.ServiceName
	if name == "" {
		name = "habitlog-api"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if opts.Ping != nil {
			if err := opts.Ping(ctx); err != nil {
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
					"status": "unhealthy",
					"error":  "storage unavailable",
				})
				return
			}
		}

		respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": name})
	}
}
