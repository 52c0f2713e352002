package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"habitLogAPI/internal/metrics"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

// errNothingToRemind aborts Update so untouched users are not rewritten.
var errNothingToRemind = errors.New("nothing to remind")

type ReminderService struct {
	Deps
}

func NewReminderService(deps Deps) *ReminderService {
	return &ReminderService{Deps: deps.withDefaults()}
}

// SendMissedHabitReminders marks every habit that is not completed today and
// was not reminded today, for users with notifications enabled. Delivery is a
// log line. It returns how many habits were reminded.
func (s *ReminderService) SendMissedHabitReminders(ctx context.Context) (int, error) {
	ids, err := s.Store.List(ctx)
	if err != nil {
		return 0, err
	}

	today := s.today()
	total := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		reminded := 0
		u, err := s.mutate(ctx, id, func(u *user.User) error {
			reminded = s.markReminders(u, today)
			if reminded == 0 {
				return errNothingToRemind
			}
			return nil
		})
		if errors.Is(err, errNothingToRemind) {
			continue
		}
		if err != nil {
			s.Log.Error("reminder update failed", zap.String("user_id", id), zap.Error(err))
			continue
		}

		total += reminded
		metrics.RemindersIssued.Add(float64(reminded))
		s.Log.Info("habit reminder",
			zap.String("user_id", id),
			zap.String("username", u.Username),
			zap.Int("incomplete_habits", reminded),
		)
	}
	return total, nil
}

func (s *ReminderService) markReminders(u *user.User, today string) int {
	if !u.Settings.Notifications {
		return 0
	}

	now := s.Clock.Now().UTC()
	n := 0
	for i := range u.Habits {
		h := &u.Habits[i]
		if h.IsCompleted(today) {
			continue
		}
		if h.LastReminded != nil && utils.FormatDay(h.LastReminded.In(s.Location)) == today {
			continue
		}
		h.LastReminded = &now
		n++
	}
	if n > 0 {
		u.LastReminderSent = &now
	}
	return n
}
