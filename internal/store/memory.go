package store

import (
	"context"
	"sort"
	"sync"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/user"
)

// Memory keeps encoded snapshots so every read hands out a fresh copy.
type Memory struct {
	mu    sync.RWMutex
	users map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{users: map[string][]byte{}}
}

func (m *Memory) Create(_ context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; ok {
		return apperrors.UserExists
	}
	m.users[u.ID] = b
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (*user.User, error) {
	m.mu.RLock()
	b, ok := m.users[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperrors.UserNotFound
	}
	return decode(b)
}

func (m *Memory) Save(_ context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return apperrors.UserNotFound
	}
	m.users[u.ID] = b
	return nil
}

func (m *Memory) Update(_ context.Context, id string, fn UpdateFunc) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.users[id]
	if !ok {
		return nil, apperrors.UserNotFound
	}
	u, err := decode(b)
	if err != nil {
		return nil, err
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	out, err := encode(u)
	if err != nil {
		return nil, err
	}
	m.users[id] = out
	return u, nil
}

func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
