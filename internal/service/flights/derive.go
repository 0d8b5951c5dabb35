package flights

import (
	"fmt"
	"strconv"
	"time"

	"github.com/keshster98/cashfly-backend/internal/domain"
)

const seatRows = 5

var seatColumns = []string{"A", "B", "C", "D"}

// DeriveDuration formats the whole minutes between departure and arrival as
// "<H> Hrs <M> Mins". Hours are floored, minutes keep the sign of the span.
func DeriveDuration(departure, arrival time.Time) string {
	minutes := int64(arrival.Sub(departure) / time.Minute)
	hours := minutes / 60
	if minutes < 0 && minutes%60 != 0 {
		hours--
	}
	return fmt.Sprintf("%d Hrs %d Mins", hours, minutes%60)
}

// GenerateSeatLayout returns the fixed 5x4 cabin, 1A..5D in row-major order,
// with every seat free.
func GenerateSeatLayout() []domain.Seat {
	seats := make([]domain.Seat, 0, seatRows*len(seatColumns))
	for row := 1; row <= seatRows; row++ {
		for _, col := range seatColumns {
			seats = append(seats, domain.Seat{SeatNumber: strconv.Itoa(row) + col})
		}
	}
	return seats
}

// EnsureSeats generates the layout only when existing is empty. A populated
// list, booked flags included, is returned as is.
func EnsureSeats(existing []domain.Seat) []domain.Seat {
	if len(existing) > 0 {
		return existing
	}
	return GenerateSeatLayout()
}

// applyDerived must run right before every flight write.
func applyDerived(f *domain.Flight) {
	f.Duration = DeriveDuration(f.DepartureDateTime, f.ArrivalDateTime)
	f.Seats = EnsureSeats(f.Seats)
}
