package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/keshster98/cashfly-backend/internal/clock"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/keshster98/cashfly-backend/internal/repository"
	"github.com/keshster98/cashfly-backend/internal/validation"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, flightID string) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	RecordPayment(ctx context.Context, id string, input PaymentInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	ExpireUnpaidBookings(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type CreateBookingInput struct {
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email" validate:"required,email"`
	Flight string   `json:"flight" validate:"required"`
	Seats  []string `json:"seats" validate:"required,min=1,dive,required"`
}

type PaymentInput struct {
	BillID string `json:"billplzId" validate:"required"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	clock              *clock.Clock
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	holdTTL            time.Duration
}

type BookingServiceOption func(*BookingService)

func WithEvents(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithHoldTTL sets how long an unpaid booking survives before the sweep
// removes it. Zero disables expiry.
func WithHoldTTL(ttl time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.holdTTL = ttl
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	clk *clock.Clock,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		clock:    clk,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetByID(ctx, input.Flight)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Flight:    flight.ID,
		Seats:     input.Seats,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking, flight.FlightNumber)
	return booking, nil
}

// ListBookings returns every booking, or only those of flightID when set.
func (s *BookingService) ListBookings(ctx context.Context, flightID string) ([]domain.Booking, error) {
	return s.bookings.List(ctx, flightID)
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// RecordPayment stores the gateway bill and stamps PaidAt. A booking is paid
// at most once.
func (s *BookingService) RecordPayment(ctx context.Context, id string, input PaymentInput) (*domain.Booking, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.IsPaid() {
		return nil, fmt.Errorf("%w: booking %s is already paid", domain.ErrNoChange, id)
	}

	updated, err := s.bookings.MarkPaid(ctx, id, input.BillID, s.clock.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingPaid, updated, s.flightNumber(ctx, updated.Flight))
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingCancelled, deleted, s.flightNumber(ctx, deleted.Flight))
	return deleted, nil
}

// ExpireUnpaidBookings drops unpaid bookings created more than the hold TTL
// ago.
func (s *BookingService) ExpireUnpaidBookings(ctx context.Context) ([]domain.Booking, error) {
	if s.holdTTL <= 0 {
		return nil, nil
	}
	deadline := s.clock.Now().Add(-s.holdTTL).UTC()
	expired, err := s.bookings.DeleteUnpaidBefore(ctx, deadline)
	if err != nil {
		return nil, err
	}
	for i := range expired {
		s.publish(ctx, kafka.EventBookingExpired, &expired[i], s.flightNumber(ctx, expired[i].Flight))
	}
	return expired, nil
}

// flightNumber is best effort; the flight may already be gone.
func (s *BookingService) flightNumber(ctx context.Context, flightID string) string {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return ""
	}
	return flight.FlightNumber
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, flightNumber string) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:         eventType,
		BookingID:    booking.ID,
		FlightID:     booking.Flight,
		FlightNumber: flightNumber,
		Seats:        booking.Seats,
		Name:         booking.Name,
		Email:        booking.Email,
		PaidAt:       booking.PaidAt,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, booking.ID, err)
		return
	}
	if s.notificationsTopic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s notification for booking %s: %v", eventType, booking.ID, err)
	}
}

var _ BookingUseCase = (*BookingService)(nil)
