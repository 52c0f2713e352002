package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/freeze"
	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/metrics"
	"habitLogAPI/internal/rewards"
	"habitLogAPI/internal/tracker"
	"habitLogAPI/internal/user"
)

type HabitService struct {
	Deps
}

func NewHabitService(deps Deps) *HabitService {
	return &HabitService{Deps: deps.withDefaults()}
}

// ListHabits returns the user's habits with streaks recomputed for today.
// Nothing is written.
func (s *HabitService) ListHabits(ctx context.Context, userID string) ([]habit.Habit, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	tracker.RefreshStreaks(u, s.today())
	return u.Habits, nil
}

func (s *HabitService) CreateHabit(ctx context.Context, userID string, req habit.CreateHabitRequest) (*habit.Habit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("habit name is required: %w", apperrors.InvalidRequest)
	}

	h := habit.Habit{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    req.Description,
		Color:          req.Color,
		Icon:           req.Icon,
		CreatedAt:      s.Clock.Now().UTC(),
		CompletedDates: []string{},
	}
	if h.Color == "" {
		h.Color = habit.DefaultColor
	}
	if h.Icon == "" {
		h.Icon = habit.DefaultIcon
	}

	_, err := s.mutate(ctx, userID, func(u *user.User) error {
		u.Habits = append(u.Habits, h)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Log.Info("habit created", zap.String("user_id", userID), zap.String("habit_id", h.ID))
	return &h, nil
}

func (s *HabitService) UpdateHabit(ctx context.Context, userID, habitID string, req habit.UpdateHabitRequest) (*habit.Habit, error) {
	var updated habit.Habit
	_, err := s.mutate(ctx, userID, func(u *user.User) error {
		h, ok := u.FindHabit(habitID)
		if !ok {
			return apperrors.HabitNotFound
		}
		h.Apply(req)
		updated = *h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *HabitService) DeleteHabit(ctx context.Context, userID, habitID string) error {
	_, err := s.mutate(ctx, userID, func(u *user.User) error {
		if !u.RemoveHabit(habitID) {
			return apperrors.HabitNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Log.Info("habit deleted", zap.String("user_id", userID), zap.String("habit_id", habitID))
	return nil
}

// ToggleHabit flips one date for one habit, runs the reward and freeze engines
// and persists the user once. An empty date means today.
func (s *HabitService) ToggleHabit(ctx context.Context, userID, habitID, date string) (*tracker.Outcome, error) {
	today := s.today()
	now := s.Clock.Now()

	var out *tracker.Outcome
	_, err := s.mutate(ctx, userID, func(u *user.User) error {
		var err error
		out, err = tracker.Toggle(u, habitID, date, today, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	thresholds := make([]int, 0, len(out.NewMilestones))
	for _, m := range out.NewMilestones {
		thresholds = append(thresholds, m.Threshold)
		s.Log.Info("milestone awarded",
			zap.String("user_id", userID),
			zap.String("habit_id", habitID),
			zap.Int("threshold", m.Threshold),
			zap.String("badge", m.BadgeName),
		)
	}
	for _, a := range out.FreezesEarned {
		s.Log.Info("streak freeze earned",
			zap.String("user_id", userID),
			zap.String("run", a.Key),
			zap.Int("run_length", a.RunLength),
		)
	}
	metrics.ObserveToggle(out.Completed, thresholds, len(out.FreezesEarned))

	return out, nil
}

func (s *HabitService) GetRewards(ctx context.Context, userID string) (*rewards.Rewards, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &u.Rewards, nil
}

func (s *HabitService) GetStreakFreezes(ctx context.Context, userID string) (*freeze.State, error) {
	u, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &u.StreakFreezes, nil
}

// ApplyStreakFreeze spends one freeze on date. Nothing is persisted on failure.
func (s *HabitService) ApplyStreakFreeze(ctx context.Context, userID, date string) (*freeze.State, error) {
	today := s.today()

	u, err := s.mutate(ctx, userID, func(u *user.User) error {
		return freeze.Apply(&u.StreakFreezes, date, today)
	})
	if err != nil {
		return nil, err
	}

	metrics.FreezesApplied.Inc()
	s.Log.Info("streak freeze applied",
		zap.String("user_id", userID),
		zap.String("date", date),
		zap.Int("available", u.StreakFreezes.Available),
	)
	return &u.StreakFreezes, nil
}
