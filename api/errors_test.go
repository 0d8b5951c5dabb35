package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{domain.ErrMissingFields, http.StatusBadRequest},
		{domain.ErrInvalidFormat, http.StatusBadRequest},
		{domain.ErrInvalidTimestamp, http.StatusBadRequest},
		{domain.ErrPastDateTime, http.StatusBadRequest},
		{domain.ErrZeroDuration, http.StatusBadRequest},
		{domain.ErrDepartureAfterArrival, http.StatusBadRequest},
		{domain.ErrDuplicateRecord, http.StatusBadRequest},
		{domain.ErrFlightNumberInUse, http.StatusBadRequest},
		{domain.ErrNoChange, http.StatusBadRequest},
		{fmt.Errorf("get flight: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
