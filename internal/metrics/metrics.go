package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HabitToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_toggles_total",
			Help: "Completion toggles by resulting state",
		},
		[]string{"state"},
	)
	MilestonesAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_milestones_awarded_total",
			Help: "Streak milestones awarded by threshold",
		},
		[]string{"threshold"},
	)
	FreezesEarned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_freezes_earned_total",
			Help: "Streak freezes earned from consecutive-day runs",
		},
	)
	FreezesApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_freezes_applied_total",
			Help: "Streak freezes spent on a day",
		},
	)
	RemindersIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "habit_reminders_issued_total",
			Help: "Habit reminders recorded by the reminder worker",
		},
	)
	ChatbotIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_intents_total",
			Help: "Chatbot questions by matched intent",
		},
		[]string{"intent"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HabitToggles,
		MilestonesAwarded,
		FreezesEarned,
		FreezesApplied,
		RemindersIssued,
		ChatbotIntents,
	)
}

func ObserveToggle(completed bool, thresholds []int, freezes int) {
	state := "uncompleted"
	if completed {
		state = "completed"
	}
	HabitToggles.WithLabelValues(state).Inc()
	for _, t := range thresholds {
		MilestonesAwarded.WithLabelValues(strconv.Itoa(t)).Inc()
	}
	if freezes > 0 {
		FreezesEarned.Add(float64(freezes))
	}
}
