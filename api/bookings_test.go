package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/keshster98/cashfly-backend/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("POST", "/bookings", map[string]any{
		"name":   "Aina",
		"email":  "aina@example.com",
		"flight": flightID,
		"seats":  []string{"1A", "1B"},
	})

	want := booking.CreateBookingInput{Name: "Aina", Email: "aina@example.com", Flight: flightID, Seats: []string{"1A", "1B"}}
	mockService.On("CreateBooking", mock.Anything, want).
		Return(&domain.Booking{ID: bookingID, Flight: flightID, Seats: want.Seats}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, bookingID, response.ID)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_MissingFields(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("POST", "/bookings", map[string]any{"name": "Aina"})
	mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingFields)

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.ErrMissingFields.Error(), decodeError(t, w))
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("GET", "/bookings?flight="+flightID, nil)
	mockService.On("ListBookings", mock.Anything, flightID).Return([]domain.Booking{{ID: bookingID}}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_pay(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("PUT", "/bookings/"+bookingID+"/payment", map[string]string{"billplzId": "bill-42"})
	c.Params = gin.Params{{Key: "id", Value: bookingID}}

	paidAt := time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC)
	mockService.On("RecordPayment", mock.Anything, bookingID, booking.PaymentInput{BillID: "bill-42"}).
		Return(&domain.Booking{ID: bookingID, BillID: "bill-42", PaidAt: &paidAt}, nil)

	handler.pay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response domain.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.IsPaid())
}

func TestBookingHandler_pay_AlreadyPaid(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("PUT", "/bookings/"+bookingID+"/payment", map[string]string{"billplzId": "bill-42"})
	c.Params = gin.Params{{Key: "id", Value: bookingID}}
	mockService.On("RecordPayment", mock.Anything, bookingID, mock.Anything).Return(nil, domain.ErrNoChange)

	handler.pay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandler_qr(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("GET", "/bookings/"+bookingID+"/qr?size=128", nil)
	c.Params = gin.Params{{Key: "id", Value: bookingID}}
	mockService.On("GetBooking", mock.Anything, bookingID).
		Return(&domain.Booking{ID: bookingID, Flight: flightID, Seats: []string{"1A"}, Name: "Aina"}, nil)

	handler.qr(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestBookingHandler_cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	c, w := newTestContext("DELETE", "/bookings/"+bookingID, nil)
	c.Params = gin.Params{{Key: "id", Value: bookingID}}
	mockService.On("CancelBooking", mock.Anything, bookingID).Return(nil, domain.ErrNotFound)

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
