package domain

import "errors"

// Validation and lookup failures. Callers add context with
// fmt.Errorf("%w: ...") and match with errors.Is. Anything that does not wrap
// one of these is a system fault.
var (
	ErrMissingFields         = errors.New("required fields are missing")
	ErrInvalidFormat         = errors.New("invalid format")
	ErrInvalidTimestamp      = errors.New("invalid date-time format")
	ErrPastDateTime          = errors.New("departure/arrival date, time or both cannot be in the past")
	ErrZeroDuration          = errors.New("departure and arrival cannot have the exact same date & time")
	ErrDepartureAfterArrival = errors.New("departure time cannot be after the arrival time")
	ErrDuplicateRecord       = errors.New("record already exists")
	ErrFlightNumberInUse     = errors.New("flight number is already in use")
	ErrNoChange              = errors.New("no changes were made that require an update")
	ErrNotFound              = errors.New("not found")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// IsValidation reports whether err belongs to the request-level taxonomy
// rather than being an unexpected fault.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrMissingFields, ErrInvalidFormat, ErrInvalidTimestamp, ErrPastDateTime,
		ErrZeroDuration, ErrDepartureAfterArrival, ErrDuplicateRecord,
		ErrFlightNumberInUse, ErrNoChange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
