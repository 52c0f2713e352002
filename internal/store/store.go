package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"habitLogAPI/internal/apperrors"
	"habitLogAPI/internal/user"
)

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// UpdateFunc mutates a loaded user. Returning an error aborts the write.
type UpdateFunc func(u *user.User) error

// UserStore persists whole user snapshots. Implementations return copies, so
// callers may mutate what they get back without affecting stored state.
type UserStore interface {
	Create(ctx context.Context, u *user.User) error
	Load(ctx context.Context, id string) (*user.User, error)
	Save(ctx context.Context, u *user.User) error
	// Update loads id, applies fn and writes the result once. The
	// load-modify-write is atomic with respect to other Update calls on the
	// same store.
	Update(ctx context.Context, id string, fn UpdateFunc) (*user.User, error)
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

type Options struct {
	Driver      string
	DataDir     string
	DatabaseURL string
	SQLitePath  string
}

func Open(ctx context.Context, opts Options) (UserStore, error) {
	switch opts.Driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverFile:
		return NewFile(opts.DataDir)
	case DriverPostgres:
		pool, err := NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return NewPostgres(ctx, pool)
	case DriverSQLite:
		return NewSQLite(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

func NewPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func encode(u *user.User) ([]byte, error) {
	b, err := json.Marshal(u)
	if err != nil {
		return nil, persistErr("encode user", err)
	}
	return b, nil
}

func decode(b []byte) (*user.User, error) {
	var u user.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, persistErr("decode user", err)
	}
	u.Normalize()
	return &u, nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperrors.Persistence, err)
}
