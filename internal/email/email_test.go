package email

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/keshster98/cashfly-backend/config"
	"github.com/keshster98/cashfly-backend/internal/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type MockDialer struct {
	mock.Mock
}

func (m *MockDialer) DialAndSend(msgs ...*gomail.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}

func paidEvent() kafka.BookingEvent {
	paidAt := time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC)
	return kafka.BookingEvent{
		Type:         kafka.EventBookingPaid,
		BookingID:    "b-1",
		FlightID:     "f-1",
		FlightNumber: "MH123",
		Seats:        []string{"1A", "1B"},
		Name:         "Aisyah",
		Email:        "aisyah@example.com",
		PaidAt:       &paidAt,
	}
}

func TestSender_Send(t *testing.T) {
	dialer := &MockDialer{}
	sender := &Sender{dialer: dialer, from: "ops@cashfly.test"}

	dialer.On("DialAndSend", mock.MatchedBy(func(msgs []*gomail.Message) bool {
		return len(msgs) == 1 &&
			msgs[0].GetHeader("To")[0] == "aisyah@example.com" &&
			msgs[0].GetHeader("Subject")[0] == "Payment received for flight MH123"
	})).Return(nil).Once()

	require.NoError(t, sender.Send(context.Background(), paidEvent()))
	dialer.AssertExpectations(t)
}

func TestSender_SendError(t *testing.T) {
	dialer := &MockDialer{}
	sender := &Sender{dialer: dialer, from: "ops@cashfly.test"}
	dialer.On("DialAndSend", mock.Anything).Return(errors.New("smtp down")).Once()

	err := sender.Send(context.Background(), paidEvent())
	assert.ErrorContains(t, err, "smtp down")
}

func TestSender_WithoutHostOnlyLogs(t *testing.T) {
	sender := NewSender(config.SMTPConfig{})
	assert.Nil(t, sender.dialer)
	assert.Equal(t, "no-reply@cashfly.local", sender.from)
	assert.NoError(t, sender.Send(context.Background(), paidEvent()))
}

func TestSender_SkipsEventsWithoutRecipient(t *testing.T) {
	dialer := &MockDialer{}
	sender := &Sender{dialer: dialer}

	assert.NoError(t, sender.Send(context.Background(), kafka.BookingEvent{Type: kafka.EventBookingCreated}))
	dialer.AssertNotCalled(t, "DialAndSend", mock.Anything)
}

func TestCompose_PaidAttachesBoardingPass(t *testing.T) {
	sender := &Sender{from: "ops@cashfly.test"}
	msg, err := sender.compose(paidEvent())
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "boarding-pass.png")
	assert.Contains(t, buf.String(), "Seats: 1A, 1B")
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "Your CashFly booking for flight f-1", subject(kafka.BookingEvent{Type: kafka.EventBookingCreated, FlightID: "f-1"}))
	assert.Equal(t, "Your unpaid booking for flight MH1 has expired", subject(kafka.BookingEvent{Type: kafka.EventBookingExpired, FlightNumber: "MH1"}))
	assert.Equal(t, "CashFly booking update", subject(kafka.BookingEvent{Type: "other"}))
}
