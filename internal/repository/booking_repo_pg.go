package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keshster98/cashfly-backend/internal/domain"
)

const bookingColumns = `id, name, email, flight_id, seats, bill_id, paid_at, created_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Name, &b.Email, &b.Flight, &b.Seats, &b.BillID, &b.PaidAt, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) List(ctx context.Context, flightID string) ([]domain.Booking, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if flightID == "" {
		rows, err = r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at`)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE flight_id=$1 ORDER BY created_at`, flightID)
	}
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		return nil, pgError(err, "get booking "+id, nil)
	}
	return b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID, b.Name, b.Email, b.Flight, b.Seats, b.BillID, b.PaidAt, b.CreatedAt)
	return pgError(err, "insert booking", domain.ErrDuplicateRecord)
}

// MarkPaid only touches unpaid rows. A row that exists but is already paid
// reports ErrNoChange.
func (r *PGBookingRepository) MarkPaid(ctx context.Context, id, billID string, paidAt time.Time) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET bill_id=$2, paid_at=$3
		WHERE id=$1 AND paid_at IS NULL RETURNING `+bookingColumns, id, billID, paidAt))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("mark booking paid: %w", err)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("mark booking %s paid: %w", id, domain.ErrNoChange)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 RETURNING `+bookingColumns, id))
	if err != nil {
		return nil, pgError(err, "delete booking "+id, nil)
	}
	return b, nil
}

func (r *PGBookingRepository) DeleteUnpaidBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `DELETE FROM bookings WHERE paid_at IS NULL AND created_at < $1 RETURNING `+bookingColumns, deadline)
	if err != nil {
		return nil, fmt.Errorf("delete unpaid bookings: %w", err)
	}
	return collectBookings(rows)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
