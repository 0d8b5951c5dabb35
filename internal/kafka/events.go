package kafka

import "time"

const (
	EventAirportCreated = "airport_created"
	EventAirportUpdated = "airport_updated"
	EventAirportDeleted = "airport_deleted"
	EventFlightCreated  = "flight_created"
	EventFlightUpdated  = "flight_updated"
	EventFlightDeleted  = "flight_deleted"

	EventBookingCreated   = "booking_created"
	EventBookingPaid      = "booking_paid"
	EventBookingCancelled = "booking_cancelled"
	EventBookingExpired   = "booking_expired"
)

// RecordEvent announces a write to an airport or flight.
type RecordEvent struct {
	Type       string      `json:"type"`
	Entity     string      `json:"entity"`
	ID         string      `json:"id"`
	Data       interface{} `json:"data,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type BookingEvent struct {
	Type         string     `json:"type"`
	BookingID    string     `json:"booking_id"`
	FlightID     string     `json:"flight_id"`
	FlightNumber string     `json:"flight_number,omitempty"`
	Seats        []string   `json:"seats"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}
