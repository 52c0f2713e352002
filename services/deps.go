package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/lock"
	"habitLogAPI/internal/store"
	"habitLogAPI/internal/user"
	"habitLogAPI/utils"
)

// Deps is what every service needs to read and write user records.
type Deps struct {
	Store    store.UserStore
	Locker   lock.Locker
	Clock    utils.Clock
	Location *time.Location
	Log      *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Locker == nil {
		d.Locker = lock.NewLocal()
	}
	if d.Clock == nil {
		d.Clock = utils.RealClock{}
	}
	if d.Location == nil {
		d.Location = time.UTC
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

func (d Deps) today() string {
	return utils.Today(d.Clock, d.Location)
}

// mutate serializes writes to one user and persists fn's changes once.
func (d Deps) mutate(ctx context.Context, userID string, fn store.UpdateFunc) (*user.User, error) {
	unlock, err := d.Locker.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.Persistence, err)
	}
	defer unlock()

	return d.Store.Update(ctx, userID, fn)
}
