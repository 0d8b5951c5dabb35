package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keshster98/cashfly-backend/internal/domain"
)

const flightColumns = `id, departure_date_time, arrival_date_time, departure_airport, arrival_airport, flight_number, price, duration, seats, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func scanFlight(row scanner) (*domain.Flight, error) {
	var (
		f     domain.Flight
		seats []byte
	)
	if err := row.Scan(&f.ID, &f.DepartureDateTime, &f.ArrivalDateTime, &f.DepartureAirport, &f.ArrivalAirport,
		&f.FlightNumber, &f.Price, &f.Duration, &seats, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if len(seats) > 0 {
		if err := json.Unmarshal(seats, &f.Seats); err != nil {
			return nil, fmt.Errorf("decode seats of flight %s: %w", f.ID, err)
		}
	}
	return &f, nil
}

func encodeSeats(seats []domain.Seat) ([]byte, error) {
	if seats == nil {
		seats = []domain.Seat{}
	}
	return json.Marshal(seats)
}

// buildFlightListQuery renders the filter as positional predicates, ordered
// by departure.
func buildFlightListQuery(f domain.FlightFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(expr string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}
	if f.DepartureAirport != "" {
		add("departure_airport = $%d", f.DepartureAirport)
	}
	if f.ArrivalAirport != "" {
		add("arrival_airport = $%d", f.ArrivalAirport)
	}
	if f.DepartAfter != nil {
		add("departure_date_time > $%d", *f.DepartAfter)
	}
	if f.DepartBefore != nil {
		add("departure_date_time < $%d", *f.DepartBefore)
	}

	var b strings.Builder
	b.WriteString("SELECT " + flightColumns + " FROM flights")
	if len(conds) > 0 {
		b.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY departure_date_time, flight_number")
	return b.String(), args
}

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query, args := buildFlightListQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		return nil, pgError(err, "get flight "+id, nil)
	}
	return f, nil
}

func (r *PGFlightRepository) FindByKey(ctx context.Context, key domain.FlightKey) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE departure_date_time=$1 AND arrival_date_time=$2 AND departure_airport=$3 AND arrival_airport=$4 AND flight_number=$5
		LIMIT 1`,
		key.DepartureDateTime, key.ArrivalDateTime, key.DepartureAirport, key.ArrivalAirport, key.FlightNumber))
	return findOne(f, err, "find flight")
}

func (r *PGFlightRepository) FindByFlightNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1 LIMIT 1`, flightNumber))
	return findOne(f, err, "find flight by number")
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	seats, err := encodeSeats(f.Seats)
	if err != nil {
		return fmt.Errorf("encode seats: %w", err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO flights (`+flightColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		f.ID, f.DepartureDateTime, f.ArrivalDateTime, f.DepartureAirport, f.ArrivalAirport,
		f.FlightNumber, f.Price, f.Duration, seats, f.CreatedAt, f.UpdatedAt)
	return pgError(err, "insert flight", domain.ErrFlightNumberInUse)
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	seats, err := encodeSeats(f.Seats)
	if err != nil {
		return fmt.Errorf("encode seats: %w", err)
	}
	tag, err := r.db.Exec(ctx, `UPDATE flights SET departure_date_time=$2, arrival_date_time=$3, departure_airport=$4,
		arrival_airport=$5, flight_number=$6, price=$7, duration=$8, seats=$9, updated_at=$10 WHERE id=$1`,
		f.ID, f.DepartureDateTime, f.ArrivalDateTime, f.DepartureAirport, f.ArrivalAirport,
		f.FlightNumber, f.Price, f.Duration, seats, f.UpdatedAt)
	if err != nil {
		return pgError(err, "update flight", domain.ErrFlightNumberInUse)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update flight %s: %w", f.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `DELETE FROM flights WHERE id=$1 RETURNING `+flightColumns, id))
	if err != nil {
		return nil, pgError(err, "delete flight "+id, nil)
	}
	return f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
