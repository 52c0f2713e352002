package tracker

import (
	"fmt"
	"time"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/freeze"
	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/rewards"
	"habitLogAPI/internal/streak"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

// Outcome is the toggle response body.
type Outcome struct {
	Habit         habit.Habit         `json:"habit"`
	Completed     bool                `json:"completed"`
	Rewards       rewards.Rewards     `json:"rewards"`
	StreakFreezes freeze.State        `json:"streakFreezes"`
	NewMilestones []rewards.Milestone `json:"newMilestones"`
	FreezesEarned []freeze.Award      `json:"freezesEarned"`
}

// Recompute refreshes streak and longestStreak of h as of today.
func Recompute(h *habit.Habit, today string) {
	h.Streak = streak.Compute(h.CompletedDates, today)
	h.LongestStreak = streak.Longest(h.LongestStreak, h.Streak)
}

// Toggle flips date for one habit of u and runs the reward and freeze engines.
// Validation happens before anything in u is touched; on error u is unchanged.
func Toggle(u *user.User, habitID, date, today string, now time.Time) (*Outcome, error) {
	if date == "" {
		date = today
	} else if !utils.ValidDay(date) {
		return nil, fmt.Errorf("toggle %q: %w", date, apperrors.InvalidDate)
	}

	h, ok := u.FindHabit(habitID)
	if !ok {
		return nil, apperrors.HabitNotFound
	}
	u.Normalize()

	completed := h.Toggle(date)
	Recompute(h, today)

	milestones := rewards.Apply(&u.Rewards, h.Streak, u.BestLongestStreak(), now)
	awards := freeze.Scan(&u.StreakFreezes, streak.Union(u.CompletionSets()...), today)

	if milestones == nil {
		milestones = []rewards.Milestone{}
	}
	if awards == nil {
		awards = []freeze.Award{}
	}

	return &Outcome{
		Habit:         *h,
		Completed:     completed,
		Rewards:       u.Rewards,
		StreakFreezes: u.StreakFreezes,
		NewMilestones: milestones,
		FreezesEarned: awards,
	}, nil
}

// RefreshStreaks recomputes every habit's streak as of today. Stored values go
// stale once a day passes without a toggle.
func RefreshStreaks(u *user.User, today string) {
	for i := range u.Habits {
		Recompute(&u.Habits[i], today)
	}
}
