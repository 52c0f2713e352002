package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/user"
)

const createSQLiteUsersTable = `
CREATE TABLE IF NOT EXISTS habit_users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL DEFAULT '',
	data       TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const updateSQLiteUser = `
	UPDATE habit_users
	SET email = ?, data = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?
`

// SQLite is a single-file store. It keeps one open connection, so every
// transaction is serialized by the pool itself.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createSQLiteUsersTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Create(ctx context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO habit_users (id, email, data) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		u.ID, u.Email, string(b))
	if err != nil {
		return persistErr("insert user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.UserExists
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, id string) (*user.User, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM habit_users WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.UserNotFound
	}
	if err != nil {
		return nil, persistErr("select user", err)
	}
	return decode([]byte(data))
}

func (s *SQLite) Save(ctx context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, updateSQLiteUser, u.Email, string(b), u.ID)
	if err != nil {
		return persistErr("update user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.UserNotFound
	}
	return nil
}

func (s *SQLite) Update(ctx context.Context, id string, fn UpdateFunc) (*user.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, persistErr("begin transaction", err)
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx, `SELECT data FROM habit_users WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.UserNotFound
	}
	if err != nil {
		return nil, persistErr("select user", err)
	}

	u, err := decode([]byte(data))
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
	if _, err := tx.ExecContext(ctx, updateSQLiteUser, u.Email, string(out), id); err != nil {
		return nil, persistErr("update user", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, persistErr("commit transaction", err)
	}
	return u, nil
}

func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM habit_users ORDER BY id`)
	if err != nil {
		return nil, persistErr("list users", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, persistErr("scan user id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list users", err)
	}
	return ids, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
