// Package repository is the record access layer. Each entity has an interface
// with a Postgres and a MongoDB implementation.
//
// GetByID, Update and Delete report a missing identity as domain.ErrNotFound.
// Find* lookups treat "no match" as a normal outcome and return (nil, nil).
package repository

import (
	"context"
	"time"

	"github.com/keshster98/cashfly-backend/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	GetByID(ctx context.Context, id string) (*domain.Airport, error)
	FindByNameAndCode(ctx context.Context, name, code string) (*domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id string) (*domain.Airport, error)
}

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	FindByKey(ctx context.Context, key domain.FlightKey) (*domain.Flight, error)
	FindByFlightNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id string) (*domain.Flight, error)
}

type BookingRepository interface {
	List(ctx context.Context, flightID string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	MarkPaid(ctx context.Context, id, billID string, paidAt time.Time) (*domain.Booking, error)
	Delete(ctx context.Context, id string) (*domain.Booking, error)
	DeleteUnpaidBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Airports AirportRepository
	Flights  FlightRepository
	Bookings BookingRepository
	Users    UserRepository
	ping     func(ctx context.Context) error
	close    func(ctx context.Context) error
}

// Ping reports whether the backing database answers.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}
