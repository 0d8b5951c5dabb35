package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/validation"
)

// FlightInput carries the caller-settable fields of a flight. Times are kept
// raw so that parsing is part of the ordered checks.
type FlightInput struct {
	DepartureDateTime string  `json:"departureDateTime" validate:"required"`
	ArrivalDateTime   string  `json:"arrivalDateTime" validate:"required"`
	DepartureAirport  string  `json:"departureAirport" validate:"required"`
	ArrivalAirport    string  `json:"arrivalAirport" validate:"required"`
	FlightNumber      string  `json:"flightNumber" validate:"required"`
	Price             float64 `json:"price" validate:"required,gt=0"`
}

// checkRules runs the flight checks in their fixed order and stops at the
// first failure. existing is nil on create. On update the unchanged-payload
// check comes first, ahead of field presence.
func (s *FlightService) checkRules(ctx context.Context, in FlightInput, existing *domain.Flight) (departure, arrival time.Time, err error) {
	if existing != nil && s.unchanged(in, existing) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: flight %s", domain.ErrNoChange, existing.ID)
	}

	if err := validation.Struct(in); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if departure, err = s.clock.Parse(in.DepartureDateTime); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if arrival, err = s.clock.Parse(in.ArrivalDateTime); err != nil {
		return time.Time{}, time.Time{}, err
	}

	if s.clock.IsPast(departure) || s.clock.IsPast(arrival) {
		return time.Time{}, time.Time{}, domain.ErrPastDateTime
	}
	if departure.Equal(arrival) {
		return time.Time{}, time.Time{}, domain.ErrZeroDuration
	}
	if departure.After(arrival) {
		return time.Time{}, time.Time{}, domain.ErrDepartureAfterArrival
	}

	dup, err := s.repo.FindByKey(ctx, domain.FlightKey{
		DepartureDateTime: departure,
		ArrivalDateTime:   arrival,
		DepartureAirport:  in.DepartureAirport,
		ArrivalAirport:    in.ArrivalAirport,
		FlightNumber:      in.FlightNumber,
	})
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("find duplicate flight: %w", err)
	}
	if dup != nil && !isSameRecord(dup, existing) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: this exact flight already exists", domain.ErrDuplicateRecord)
	}

	holder, err := s.repo.FindByFlightNumber(ctx, in.FlightNumber)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("find flight number: %w", err)
	}
	if holder != nil && !isSameRecord(holder, existing) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s", domain.ErrFlightNumberInUse, in.FlightNumber)
	}

	for _, id := range []string{in.DepartureAirport, in.ArrivalAirport} {
		if _, err := s.airports.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return time.Time{}, time.Time{}, fmt.Errorf("%w: airport %s", domain.ErrNotFound, id)
			}
			return time.Time{}, time.Time{}, fmt.Errorf("get airport: %w", err)
		}
	}

	return departure, arrival, nil
}

// unchanged compares the payload with the stored flight. Times compare as
// instants, an unparseable time never matches.
func (s *FlightService) unchanged(in FlightInput, f *domain.Flight) bool {
	departure, err := s.clock.Parse(in.DepartureDateTime)
	if err != nil || !departure.Equal(f.DepartureDateTime) {
		return false
	}
	arrival, err := s.clock.Parse(in.ArrivalDateTime)
	if err != nil || !arrival.Equal(f.ArrivalDateTime) {
		return false
	}
	return in.DepartureAirport == f.DepartureAirport &&
		in.ArrivalAirport == f.ArrivalAirport &&
		in.FlightNumber == f.FlightNumber &&
		in.Price == f.Price
}

func isSameRecord(found, existing *domain.Flight) bool {
	return existing != nil && found.ID == existing.ID
}
