package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/calendar"
	"habitLogAPI/internal/freeze"
	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/rewards"
	"habitLogAPI/internal/stats"
	"habitLogAPI/internal/streak"
	"habitLogAPI/internal/tracker"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

type UserService struct {
	Deps
}

func NewUserService(deps Deps) *UserService {
	return &UserService{Deps: deps.withDefaults()}
}

// Register creates the record for an authenticated identity that has not
// signed up yet.
func (s *UserService) Register(ctx context.Context, userID string, req user.RegisterRequest) (*user.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required: %w", apperrors.InvalidRequest)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", email, apperrors.InvalidRequest)
	}

	now := s.Clock.Now().UTC()
	age := 0
	if req.DOB != "" {
		dob, err := utils.ParseDay(req.DOB)
		if err != nil {
			return nil, fmt.Errorf("dob: %w", apperrors.InvalidDate)
		}
		age = utils.AgeOn(dob, now)
	}

	settings := user.DefaultSettings()
	if req.Language != "" {
		settings.Language = req.Language
	}

	u := &user.User{
		ID:            userID,
		Username:      username,
		Email:         email,
		DOB:           req.DOB,
		Age:           age,
		Category:      user.CategoryForAge(age),
		Habits:        []habit.Habit{},
		Rewards:       rewards.New(),
		StreakFreezes: freeze.New(),
		Settings:      settings,
		CreatedAt:     now,
		LastLogin:     now,
	}

	if err := s.Store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Log.Info("user registered",
		zap.String("user_id", userID),
		zap.String("category", string(u.Category)),
	)
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	tracker.RefreshStreaks(u, today)
	if dob, err := utils.ParseDay(u.DOB); err == nil {
		u.Age = utils.AgeOn(dob, s.Clock.Now())
		u.Category = user.CategoryForAge(u.Age)
	}

	return &user.Profile{
		User:       u,
		MainStreak: streak.Main(u.CompletionSets(), today),
	}, nil
}

func (s *UserService) GetSettings(ctx context.Context, userID string) (*user.Settings, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &u.Settings, nil
}

func (s *UserService) UpdateSettings(ctx context.Context, userID string, req user.UpdateSettingsRequest) (*user.Settings, error) {
	if req.ReminderTime != "" && !validClock(req.ReminderTime) {
		return nil, fmt.Errorf("reminderTime %q: %w", req.ReminderTime, apperrors.InvalidRequest)
	}

	u, err := s.mutate(ctx, userID, func(u *user.User) error {
		u.Settings.Apply(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u.Settings, nil
}

func (s *UserService) GetStats(ctx context.Context, userID string) (*stats.UserStats, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats.Compute(u, s.today())
}

// GetCalendar returns one month. Zero year or month means the current one.
func (s *UserService) GetCalendar(ctx context.Context, userID string, year, month int) (*calendar.CalendarResponse, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	t, err := utils.ParseDay(today)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = t.Year()
	}
	if month == 0 {
		month = int(t.Month())
	}
	return calendar.Month(u, year, month, today)
}

// validClock accepts HH:MM in 24-hour time.
func validClock(v string) bool {
	h, m, ok := strings.Cut(v, ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return false
	}
	return h >= "00" && h <= "23" && m >= "00" && m <= "59" && isDigits(h) && isDigits(m)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
