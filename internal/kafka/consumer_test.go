package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestDecodeBookingEvent(t *testing.T) {
	event, ok := decodeBookingEvent(kafka.Message{Value: []byte(`{"type":"booking_created","booking_id":"b1","seats":["1A","1B"],"email":"a@b.c"}`)})
	assert.True(t, ok)
	assert.Equal(t, EventBookingCreated, event.Type)
	assert.Equal(t, "b1", event.BookingID)
	assert.Equal(t, []string{"1A", "1B"}, event.Seats)

	_, ok = decodeBookingEvent(kafka.Message{Value: []byte(`not json`)})
	assert.False(t, ok)

	_, ok = decodeBookingEvent(kafka.Message{Value: []byte(`{"booking_id":"b1"}`)})
	assert.False(t, ok)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"})
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())
}
