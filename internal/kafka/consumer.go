package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingHandler processes one decoded notification.
type BookingHandler func(ctx context.Context, event BookingEvent) error

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeBookings reads booking notifications until ctx is cancelled.
// Messages that are not valid JSON are logged and skipped; a handler error
// stops consumption.
func (c *Consumer) ConsumeBookings(ctx context.Context, handle BookingHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		event, ok := decodeBookingEvent(msg)
		if !ok {
			continue
		}
		if err := handle(ctx, event); err != nil {
			return err
		}
	}
}

func decodeBookingEvent(msg kafka.Message) (BookingEvent, bool) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("skip message offset=%d: decode booking event: %v", msg.Offset, err)
		return BookingEvent{}, false
	}
	if event.Type == "" {
		log.Printf("skip message offset=%d: missing event type", msg.Offset)
		return BookingEvent{}, false
	}
	return event, true
}
