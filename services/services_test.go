package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/rewards"
	"habitLogAPI/internal/store"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

const today = "2024-06-15"

type fixture struct {
	ctx      context.Context
	clock    *utils.FixedClock
	store    *store.Memory
	habits   *HabitService
	users    *UserService
	chatbot  *ChatbotService
	reminder *ReminderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &utils.FixedClock{T: time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)}
	st := store.NewMemory()
	deps := Deps{Store: st, Clock: clock, Log: zap.NewNop()}

	f := &fixture{
		ctx:      context.Background(),
		clock:    clock,
		store:    st,
		habits:   NewHabitService(deps),
		users:    NewUserService(deps),
		chatbot:  NewChatbotService(deps),
		reminder: NewReminderService(deps),
	}
	_, err := f.users.Register(f.ctx, "u1", user.RegisterRequest{Username: "ana", Email: "ana@example.com", DOB: "1990-03-01"})
	require.NoError(t, err)
	return f
}

func (f *fixture) addHabit(t *testing.T, name string) *habit.Habit {
	t.Helper()
	h, err := f.habits.CreateHabit(f.ctx, "u1", habit.CreateHabitRequest{Name: name})
	require.NoError(t, err)
	return h
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	u, err := f.store.Load(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 34, u.Age)
	assert.Equal(t, user.CategoryAdult, u.Category)
	assert.Equal(t, rewards.StatusBeginner, u.Rewards.Status)
	assert.Equal(t, 0, u.StreakFreezes.Available)
	assert.Equal(t, user.DefaultSettings(), u.Settings)

	_, err = f.users.Register(f.ctx, "u1", user.RegisterRequest{Username: "ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, apperrors.UserExists)

	_, err = f.users.Register(f.ctx, "u2", user.RegisterRequest{Username: "bo"})
	assert.ErrorIs(t, err, apperrors.InvalidRequest)

	_, err = f.users.Register(f.ctx, "u2", user.RegisterRequest{Username: "bo", Email: "bo@example.com", DOB: "01/02/2000"})
	assert.ErrorIs(t, err, apperrors.InvalidDate)
}

func TestCreateHabitDefaults(t *testing.T) {
	f := newFixture(t)
	h := f.addHabit(t, "  Read  ")

	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, habit.DefaultColor, h.Color)
	assert.Equal(t, habit.DefaultIcon, h.Icon)
	assert.NotEmpty(t, h.ID)

	_, err := f.habits.CreateHabit(f.ctx, "u1", habit.CreateHabitRequest{Name: " "})
	assert.ErrorIs(t, err, apperrors.InvalidRequest)

	_, err = f.habits.CreateHabit(f.ctx, "ghost", habit.CreateHabitRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.UserNotFound)
}

func TestUpdateAndDeleteHabit(t *testing.T) {
	f := newFixture(t)
	h := f.addHabit(t, "Read")

	name := "Read more"
	updated, err := f.habits.UpdateHabit(f.ctx, "u1", h.ID, habit.UpdateHabitRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Read more", updated.Name)

	_, err = f.habits.UpdateHabit(f.ctx, "u1", "missing", habit.UpdateHabitRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.HabitNotFound)

	require.NoError(t, f.habits.DeleteHabit(f.ctx, "u1", h.ID))
	assert.ErrorIs(t, f.habits.DeleteHabit(f.ctx, "u1", h.ID), apperrors.HabitNotFound)

	list, err := f.habits.ListHabits(f.ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestToggleHabitPersistsOnce(t *testing.T) {
	f := newFixture(t)
	h := f.addHabit(t, "Run")

	for i := 2; i >= 1; i-- {
		_, err := f.habits.ToggleHabit(f.ctx, "u1", h.ID, utils.DayBefore(today, i))
		require.NoError(t, err)
	}
	out, err := f.habits.ToggleHabit(f.ctx, "u1", h.ID, "")
	require.NoError(t, err)

	assert.True(t, out.Completed)
	assert.Equal(t, 3, out.Habit.Streak)
	assert.Len(t, out.FreezesEarned, 1)

	u, err := f.store.Load(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, u.StreakFreezes.Available)
	assert.Equal(t, 3, u.Habits[0].LongestStreak)

	_, err = f.habits.ToggleHabit(f.ctx, "u1", h.ID, "15-06-2024")
	assert.ErrorIs(t, err, apperrors.InvalidDate)
	_, err = f.habits.ToggleHabit(f.ctx, "u1", "missing", "")
	assert.ErrorIs(t, err, apperrors.HabitNotFound)
}

func TestListHabitsRefreshesStaleStreaks(t *testing.T) {
	f := newFixture(t)
	h := f.addHabit(t, "Run")
	_, err := f.habits.ToggleHabit(f.ctx, "u1", h.ID, "")
	require.NoError(t, err)

	f.clock.T = f.clock.T.AddDate(0, 0, 2)
	list, err := f.habits.ListHabits(f.ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Streak)
	assert.Equal(t, 1, list[0].LongestStreak)
}

func TestApplyStreakFreeze(t *testing.T) {
	f := newFixture(t)

	_, err := f.habits.ApplyStreakFreeze(f.ctx, "u1", "2024-06-14")
	assert.ErrorIs(t, err, apperrors.NoFreezeAvailable)

	state, err := f.habits.GetStreakFreezes(f.ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, state.AppliedDays)

	h := f.addHabit(t, "Run")
	for i := 2; i >= 0; i-- {
		_, err := f.habits.ToggleHabit(f.ctx, "u1", h.ID, utils.DayBefore(today, i))
		require.NoError(t, err)
	}

	state, err = f.habits.ApplyStreakFreeze(f.ctx, "u1", "2024-06-10")
	require.NoError(t, err)
	assert.Equal(t, 0, state.Available)
	assert.Equal(t, 1, state.Used)
	assert.Equal(t, []string{"2024-06-10"}, state.AppliedDays)

	_, err = f.habits.ApplyStreakFreeze(f.ctx, "u1", "nope")
	assert.ErrorIs(t, err, apperrors.InvalidDate)
}

func TestStatusDoesNotDowngrade(t *testing.T) {
	f := newFixture(t)
	long := f.addHabit(t, "Long")
	short := f.addHabit(t, "Short")

	for i := 29; i >= 0; i-- {
		_, err := f.habits.ToggleHabit(f.ctx, "u1", long.ID, utils.DayBefore(today, i))
		require.NoError(t, err)
	}
	r, err := f.habits.GetRewards(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, rewards.StatusAdvanced, r.Status)
	assert.Equal(t, 60, r.Stars)

	for i := 6; i >= 0; i-- {
		_, err := f.habits.ToggleHabit(f.ctx, "u1", short.ID, utils.DayBefore(today, i))
		require.NoError(t, err)
	}
	r, err = f.habits.GetRewards(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, rewards.StatusAdvanced, r.Status)
	// The 7-day milestone was already earned on the long habit.
	assert.Equal(t, 60, r.Stars)
	assert.Len(t, r.Badges, 2)
}

func TestSettings(t *testing.T) {
	f := newFixture(t)

	off := false
	s, err := f.users.UpdateSettings(f.ctx, "u1", user.UpdateSettingsRequest{Theme: "dark", Notifications: &off, ReminderTime: "20:30"})
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.False(t, s.Notifications)
	assert.Equal(t, "20:30", s.ReminderTime)

	_, err = f.users.UpdateSettings(f.ctx, "u1", user.UpdateSettingsRequest{ReminderTime: "25:00"})
	assert.ErrorIs(t, err, apperrors.InvalidRequest)

	got, err := f.users.GetSettings(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "english", got.Language)
	assert.Equal(t, "20:30", got.ReminderTime)
}

func TestProfileStatsAndCalendar(t *testing.T) {
	f := newFixture(t)
	h := f.addHabit(t, "Run")
	for i := 1; i >= 0; i-- {
		_, err := f.habits.ToggleHabit(f.ctx, "u1", h.ID, utils.DayBefore(today, i))
		require.NoError(t, err)
	}

	p, err := f.users.GetProfile(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.MainStreak)
	assert.Equal(t, "ana", p.Username)

	st, err := f.users.GetStats(f.ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.MainStreak)
	assert.Equal(t, 1, st.CompletedToday)

	cal, err := f.users.GetCalendar(f.ctx, "u1", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, cal.Year)
	assert.Equal(t, 6, cal.Month)
	assert.Len(t, cal.Days, 30)
	assert.Equal(t, 1, cal.Days[14].Completed)
	assert.True(t, cal.Days[14].IsToday)

	_, err = f.users.GetCalendar(f.ctx, "u1", 2024, 13)
	assert.ErrorIs(t, err, apperrors.InvalidRequest)
}

func TestChatbotAsk(t *testing.T) {
	f := newFixture(t)

	resp, err := f.chatbot.Ask(f.ctx, "u1", "what is my name?")
	require.NoError(t, err)
	assert.Equal(t, "Your name is ana", resp.Response)

	_, err = f.chatbot.Ask(f.ctx, "u1", "   ")
	assert.ErrorIs(t, err, apperrors.InvalidRequest)

	_, err = f.chatbot.Ask(f.ctx, "ghost", "hello")
	assert.ErrorIs(t, err, apperrors.UserNotFound)
}

func TestRemindersOncePerDay(t *testing.T) {
	f := newFixture(t)
	done := f.addHabit(t, "Done")
	f.addHabit(t, "Pending")
	_, err := f.habits.ToggleHabit(f.ctx, "u1", done.ID, "")
	require.NoError(t, err)

	n, err := f.reminder.SendMissedHabitReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.reminder.SendMissedHabitReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	u, err := f.store.Load(f.ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, u.Habits[0].LastReminded)
	require.NotNil(t, u.Habits[1].LastReminded)
	assert.NotNil(t, u.LastReminderSent)

	// Next day both habits are pending again.
	f.clock.T = f.clock.T.AddDate(0, 0, 1)
	n, err = f.reminder.SendMissedHabitReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRemindersSkipMutedUsers(t *testing.T) {
	f := newFixture(t)
	f.addHabit(t, "Pending")

	off := false
	_, err := f.users.UpdateSettings(f.ctx, "u1", user.UpdateSettingsRequest{Notifications: &off})
	require.NoError(t, err)

	n, err := f.reminder.SendMissedHabitReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
