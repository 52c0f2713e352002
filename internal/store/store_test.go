package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/habit"
	"habitLogAPI/internal/user"
)

func newTestUser(id string) *user.User {
	u := &user.User{ID: id, Username: "ana", Email: id + "@example.com"}
	u.Normalize()
	return u
}

type backend struct {
	name string
	open func(t *testing.T) UserStore
}

func backends() []backend {
	return []backend{
		{"memory", func(t *testing.T) UserStore { return NewMemory() }},
		{"file", func(t *testing.T) UserStore {
			s, err := NewFile(t.TempDir())
			require.NoError(t, err)
			return s
		}},
		{"sqlite", func(t *testing.T) UserStore {
			s, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "habits.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		}},
	}
}

func TestUserStoreContract(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.open(t)

			_, err := s.Load(ctx, "u1")
			assert.ErrorIs(t, err, apperrors.UserNotFound)

			require.NoError(t, s.Create(ctx, newTestUser("u1")))
			assert.ErrorIs(t, s.Create(ctx, newTestUser("u1")), apperrors.UserExists)

			u, err := s.Load(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "ana", u.Username)

			// Loaded values are copies.
			u.Username = "mutated"
			again, err := s.Load(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "ana", again.Username)

			u.Habits = append(u.Habits, habit.Habit{ID: "h1", Name: "Read"})
			require.NoError(t, s.Save(ctx, u))
			again, err = s.Load(ctx, "u1")
			require.NoError(t, err)
			require.Len(t, again.Habits, 1)
			assert.Equal(t, []string{}, again.Habits[0].CompletedDates)

			assert.ErrorIs(t, s.Save(ctx, newTestUser("ghost")), apperrors.UserNotFound)

			require.NoError(t, s.Create(ctx, newTestUser("u0")))
			ids, err := s.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"u0", "u1"}, ids)

			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestUpdateAbortsOnError(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.open(t)
			require.NoError(t, s.Create(ctx, newTestUser("u1")))

			boom := errors.New("boom")
			_, err := s.Update(ctx, "u1", func(u *user.User) error {
				u.Username = "changed"
				return boom
			})
			assert.ErrorIs(t, err, boom)

			u, err := s.Load(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, "ana", u.Username)

			_, err = s.Update(ctx, "missing", func(*user.User) error { return nil })
			assert.ErrorIs(t, err, apperrors.UserNotFound)
		})
	}
}

func TestUpdateIsAtomic(t *testing.T) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s := b.open(t)
			require.NoError(t, s.Create(ctx, newTestUser("u1")))

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, err := s.Update(ctx, "u1", func(u *user.User) error {
						u.Rewards.Stars++
						return nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			u, err := s.Load(ctx, "u1")
			require.NoError(t, err)
			assert.Equal(t, 20, u.Rewards.Stars)
		})
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, s.Create(ctx, newTestUser("u1")))
	_, err = s.Update(ctx, "u1", func(u *user.User) error {
		u.Habits = append(u.Habits, habit.Habit{ID: "h1", CompletedDates: []string{"2024-06-01"}})
		return nil
	})
	require.NoError(t, err)

	reopened, err := NewFile(dir)
	require.NoError(t, err)
	u, err := reopened.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u.Habits, 1)
	assert.Equal(t, []string{"2024-06-01"}, u.Habits[0].CompletedDates)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mongo"})
	assert.Error(t, err)

	s, err := Open(context.Background(), Options{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)
}
