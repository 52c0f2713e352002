package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/user"
)

const usersFile = "users.json"

type fileState struct {
	Users map[string]json.RawMessage `json:"users"`
}

// File persists all users in one JSON document under dataDir. Every write
// rewrites the document through a temp file and rename.
type File struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFile(dataDir string) (*File, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f := &File{
		path: filepath.Join(dataDir, usersFile),
		s:    fileState{Users: map[string]json.RawMessage{}},
	}
	if err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return persistErr("read users file", err)
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return persistErr("parse users file", err)
	}
	if loaded.Users == nil {
		loaded.Users = map[string]json.RawMessage{}
	}
	f.s = loaded
	return nil
}

func (f *File) saveLocked() error {
	b, err := json.MarshalIndent(f.s, "", "  ")
	if err != nil {
		return persistErr("encode users file", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), usersFile+".*.tmp")
	if err != nil {
		return persistErr("create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return persistErr("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return persistErr("close temp file", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return persistErr("replace users file", err)
	}
	return nil
}

// put stores b under id and rolls back the in-memory map when the disk write fails.
func (f *File) putLocked(id string, b []byte) error {
	prev, had := f.s.Users[id]
	f.s.Users[id] = b
	if err := f.saveLocked(); err != nil {
		if had {
			f.s.Users[id] = prev
		} else {
			delete(f.s.Users, id)
		}
		return err
	}
	return nil
}

func (f *File) Create(_ context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.s.Users[u.ID]; ok {
		return apperrors.UserExists
	}
	return f.putLocked(u.ID, b)
}

func (f *File) Load(_ context.Context, id string) (*user.User, error) {
	f.mu.RLock()
	b, ok := f.s.Users[id]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.UserNotFound
	}
	return decode(b)
}

func (f *File) Save(_ context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.s.Users[u.ID]; !ok {
		return apperrors.UserNotFound
	}
	return f.putLocked(u.ID, b)
}

func (f *File) Update(_ context.Context, id string, fn UpdateFunc) (*user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.s.Users[id]
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
	if err := f.putLocked(id, out); err != nil {
		return nil, err
	}
	return u, nil
}

func (f *File) List(_ context.Context) ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]string, 0, len(f.s.Users))
	for id := range f.s.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *File) Ping(context.Context) error {
	_, err := os.Stat(filepath.Dir(f.path))
	return err
}

func (f *File) Close() error { return nil }
