// Package kafka provides the real-time event broadcaster. Shipment lifecycle
// events go to one Kafka topic; dashboard and tracking consumers fan the
// stream out to clients.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	skafka "github.com/segmentio/kafka-go"
)

// Writer is the subset of the kafka writer the broadcaster needs; tests
// inject a recording implementation.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// envelope is the wire format of one broadcast event.
type envelope struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Payload   any       `json:"payload"`
	EmittedAt time.Time `json:"emittedAt"`
}

// Broadcaster implements ports.Broadcaster on a Kafka writer. The event name
// is the message key, so all events of one kind stay ordered within a
// partition.
type Broadcaster struct {
	writer Writer
}

// NewBroadcaster creates a broadcaster writing to the given broker and topic.
func NewBroadcaster(brokerURL, topic string) *Broadcaster {
	return &Broadcaster{
		writer: &skafka.Writer{
			Addr:     skafka.TCP(brokerURL),
			Topic:    topic,
			Balancer: &skafka.LeastBytes{},
		},
	}
}

// NewBroadcasterWithWriter allows injecting a test writer.
func NewBroadcasterWithWriter(w Writer) *Broadcaster {
	return &Broadcaster{writer: w}
}

// Emit publishes one event with a JSON envelope.
func (b *Broadcaster) Emit(ctx context.Context, event string, payload any) error {
	body, err := json.Marshal(envelope{
		ID:        uuid.NewString(),
		Event:     event,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event, err)
	}

	return b.writer.WriteMessages(ctx, skafka.Message{
		Key:   []byte(event),
		Value: body,
	})
}

// Close closes the underlying writer.
func (b *Broadcaster) Close() error {
	return b.writer.Close()
}
