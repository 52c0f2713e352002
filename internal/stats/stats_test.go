package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/rewards"
	"habitLogAPI/internal/user"
)

func TestCompute(t *testing.T) {
	// 2024-06-12 is a Wednesday.
	u := &user.User{
		Habits: []habit.Habit{
			{ID: "a", LongestStreak: 5, CompletedDates: []string{"2023-12-31", "2024-05-30", "2024-06-10", "2024-06-11", "2024-06-12"}},
			{ID: "b", LongestStreak: 2, CompletedDates: []string{"2024-06-12"}},
		},
		Rewards: rewards.Rewards{Stars: 10, Status: rewards.StatusStar, Badges: []rewards.Badge{{Name: "7-Day Star"}}},
	}
	u.Normalize()

	s, err := Compute(u, "2024-06-12")
	require.NoError(t, err)

	assert.True(t, s.TodayStatus)
	assert.Equal(t, 2, s.CompletedToday)
	assert.Equal(t, 2, s.TotalHabits)
	assert.Equal(t, 3, s.DaysThisWeek)
	assert.Equal(t, 3, s.DaysThisMonth)
	assert.Equal(t, 4, s.DaysThisYear)
	assert.Equal(t, 5, s.TotalActiveDays)
	assert.Equal(t, 6, s.TotalCompletions)
	assert.Equal(t, 3, s.MainStreak)
	assert.Equal(t, 5, s.BestStreak)
	assert.Equal(t, 1, s.AchievementsCount)
	assert.Equal(t, "star", s.Status)
}

func TestComputeEmptyUser(t *testing.T) {
	u := &user.User{}
	u.Normalize()

	s, err := Compute(u, "2024-06-12")
	require.NoError(t, err)
	assert.False(t, s.TodayStatus)
	assert.Equal(t, 0, s.MainStreak)
	assert.Equal(t, "beginner", s.Status)

	_, err = Compute(u, "bad")
	assert.Error(t, err)
}

func TestWeekStartsMonday(t *testing.T) {
	u := &user.User{Habits: []habit.Habit{{ID: "a", CompletedDates: []string{"2024-06-09", "2024-06-10"}}}}
	u.Normalize()

	// 2024-06-10 is a Monday; the Sunday before belongs to the previous week.
	s, err := Compute(u, "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 1, s.DaysThisWeek)
}
