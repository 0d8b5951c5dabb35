package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keshster98/cashfly-backend/internal/domain"
)

const airportColumns = `id, name, location, code, created_at, updated_at`

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func scanAirport(row scanner) (*domain.Airport, error) {
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Name, &a.Location, &a.Code, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT `+airportColumns+` FROM airports ORDER BY code, name`)
	if err != nil {
		return nil, fmt.Errorf("list airports: %w", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan airport: %w", err)
		}
		airports = append(airports, *a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id string) (*domain.Airport, error) {
	a, err := scanAirport(r.db.QueryRow(ctx, `SELECT `+airportColumns+` FROM airports WHERE id=$1`, id))
	if err != nil {
		return nil, pgError(err, "get airport "+id, nil)
	}
	return a, nil
}

func (r *PGAirportRepository) FindByNameAndCode(ctx context.Context, name, code string) (*domain.Airport, error) {
	a, err := scanAirport(r.db.QueryRow(ctx, `SELECT `+airportColumns+` FROM airports WHERE name=$1 AND code=$2 LIMIT 1`, name, code))
	return findOne(a, err, "find airport")
}

func (r *PGAirportRepository) Create(ctx context.Context, a *domain.Airport) error {
	_, err := r.db.Exec(ctx, `INSERT INTO airports (`+airportColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Location, a.Code, a.CreatedAt, a.UpdatedAt)
	return pgError(err, "insert airport", domain.ErrDuplicateRecord)
}

func (r *PGAirportRepository) Update(ctx context.Context, a *domain.Airport) error {
	tag, err := r.db.Exec(ctx, `UPDATE airports SET name=$2, location=$3, code=$4, updated_at=$5 WHERE id=$1`,
		a.ID, a.Name, a.Location, a.Code, a.UpdatedAt)
	if err != nil {
		return pgError(err, "update airport", domain.ErrDuplicateRecord)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update airport %s: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id string) (*domain.Airport, error) {
	a, err := scanAirport(r.db.QueryRow(ctx, `DELETE FROM airports WHERE id=$1 RETURNING `+airportColumns, id))
	if err != nil {
		return nil, pgError(err, "delete airport "+id, nil)
	}
	return a, nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
