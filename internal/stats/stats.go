package stats

import (
	"time"

	"habitLogAPI/internal/streak"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

type UserStats struct {
	TodayStatus       bool   `json:"todayStatus"`
	CompletedToday    int    `json:"completedToday"`
	TotalHabits       int    `json:"totalHabits"`
	DaysThisWeek      int    `json:"daysThisWeek"`
	DaysThisMonth     int    `json:"daysThisMonth"`
	DaysThisYear      int    `json:"daysThisYear"`
	TotalActiveDays   int    `json:"totalActiveDays"`
	TotalCompletions  int    `json:"totalCompletions"`
	MainStreak        int    `json:"mainStreak"`
	BestStreak        int    `json:"bestStreak"`
	AchievementsCount int    `json:"achievementsCount"`
	Stars             int    `json:"stars"`
	Status            string `json:"status"`
	FreezesAvailable  int    `json:"freezesAvailable"`
}

// Compute summarizes u as of today. Weeks start on Monday.
func Compute(u *user.User, today string) (*UserStats, error) {
	t, err := utils.ParseDay(today)
	if err != nil {
		return nil, err
	}

	active := streak.Union(u.CompletionSets()...)
	s := &UserStats{
		CompletedToday:    u.CompletedOn(today),
		TotalHabits:       len(u.Habits),
		TotalActiveDays:   len(active),
		MainStreak:        streak.Main(u.CompletionSets(), today),
		BestStreak:        u.BestLongestStreak(),
		AchievementsCount: len(u.Rewards.Badges),
		Stars:             u.Rewards.Stars,
		Status:            string(u.Rewards.Status),
		FreezesAvailable:  u.StreakFreezes.Available,
	}
	s.TodayStatus = s.CompletedToday > 0

	for _, h := range u.Habits {
		s.TotalCompletions += len(h.CompletedDates)
	}

	weekStart := utils.FormatDay(t.AddDate(0, 0, -mondayOffset(t)))
	monthStart := utils.FormatDay(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
	yearStart := utils.FormatDay(time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))

	for _, d := range active {
		if d > today {
			continue
		}
		if d >= weekStart {
			s.DaysThisWeek++
		}
		if d >= monthStart {
			s.DaysThisMonth++
		}
		if d >= yearStart {
			s.DaysThisYear++
		}
	}
	return s, nil
}

func mondayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
