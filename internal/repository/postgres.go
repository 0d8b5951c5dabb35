package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keshster98/cashfly-backend/internal/domain"
)

//go:embed schema.sql
var schema string

const pgUniqueViolation = "23505"

type scanner interface {
	Scan(dest ...any) error
}

// OpenPostgres connects a pool and optionally applies the schema.
func OpenPostgres(ctx context.Context, dsn string, migrate bool) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	if migrate {
		if err := Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return NewPostgresStore(pool), nil
}

func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Airports: NewAirportRepository(pool),
		Flights:  NewFlightRepository(pool),
		Bookings: NewBookingRepository(pool),
		Users:    NewUserRepository(pool),
		ping:     pool.Ping,
		close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}

// Migrate is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// pgError folds driver errors into the domain taxonomy. onUnique is returned
// for a unique-index violation.
func pgError(err error, op string, onUnique error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if onUnique != nil && errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%s: %w", op, onUnique)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// findOne turns "no rows" into (nil, nil) for Find* lookups.
func findOne[T any](v *T, err error, op string) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
