package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/user"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS habit_users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL DEFAULT '',
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const updateUserQuery = `
	UPDATE habit_users
	SET email = $2, data = $3::jsonb, updated_at = NOW()
	WHERE id = $1
`

// Postgres stores each user as one JSONB document keyed by id.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	if _, err := pool.Exec(ctx, createUsersTable); err != nil {
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Create(ctx context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO habit_users (id, email, data)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (id) DO NOTHING
	`
	tag, err := p.pool.Exec(ctx, query, u.ID, u.Email, string(b))
	if err != nil {
		return persistErr("insert user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.UserExists
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, id string) (*user.User, error) {
	var b []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM habit_users WHERE id = $1`, id).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.UserNotFound
	}
	if err != nil {
		return nil, persistErr("select user", err)
	}
	return decode(b)
}

func (p *Postgres) Save(ctx context.Context, u *user.User) error {
	b, err := encode(u)
	if err != nil {
		return err
	}

	tag, err := p.pool.Exec(ctx, updateUserQuery, u.ID, u.Email, string(b))
	if err != nil {
		return persistErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.UserNotFound
	}
	return nil
}

// Update holds a row lock for the whole load-modify-write.
func (p *Postgres) Update(ctx context.Context, id string, fn UpdateFunc) (*user.User, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, persistErr("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var b []byte
	err = tx.QueryRow(ctx, `SELECT data FROM habit_users WHERE id = $1 FOR UPDATE`, id).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.UserNotFound
	}
	if err != nil {
		return nil, persistErr("select user for update", err)
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
	if _, err := tx.Exec(ctx, updateUserQuery, id, u.Email, string(out)); err != nil {
		return nil, persistErr("update user", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, persistErr("commit transaction", err)
	}
	return u, nil
}

func (p *Postgres) List(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `SELECT id FROM habit_users ORDER BY id`)
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

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
