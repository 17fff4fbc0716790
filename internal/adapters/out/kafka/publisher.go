// Package kafka contains the outbound event publisher and the inbound
// order-intake consumer. Events are JSON envelopes on Kafka topics; delivery
// is fire-and-forget from the orchestrator's point of view.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// envelope is the wire form of every published event.
type envelope struct {
	Source      string          `json:"source"`
	Type        string          `json:"type"`
	PublishedAt time.Time       `json:"publishedAt"`
	Data        json.RawMessage `json:"data"`
}

// EventPublisher implements ports.EventPublisher on a kafka.Writer. One
// writer serves all event types; the topic is configured on the writer.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher creates a publisher over the given writer.
func NewEventPublisher(writer *kafka.Writer) *EventPublisher {
	return &EventPublisher{writer: writer}
}

// Publish marshals the payload into a typed envelope and writes it. The
// message key is the event type, so consumers interested in one type read a
// stable partition order per type.
func (p *EventPublisher) Publish(ctx context.Context, source, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	message, err := json.Marshal(envelope{
		Source:      source,
		Type:        eventType,
		PublishedAt: time.Now().UTC(),
		Data:        data,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: message,
	})
}
