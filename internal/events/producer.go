package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Booking lifecycle event types.
const (
	TypeBookingCreated     = "booking_created"
	TypeBookingCancelled   = "booking_cancelled"
	TypeBookingRefunded    = "booking_refunded"
	TypePassengerCancelled = "passenger_cancelled"
)

// BookingEvent is published on every booking lifecycle transition.
type BookingEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id"`
	ScheduleID int64     `json:"schedule_id"`
	UserID     int64     `json:"user_id"`
	Seats      []string  `json:"seats,omitempty"`
	TotalPrice string    `json:"total_price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Producer publishes booking events to Kafka.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish sends one event, keyed so that all events of a booking land on the
// same partition and stay ordered.
func (p *Producer) Publish(ctx context.Context, key string, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
