package ports

import "context"

// EventPublisher is the fire-and-forget notification contract. A stage
// transition is durable once the store write commits; publication failures
// are logged by the caller and never propagated, so implementations should
// not retry indefinitely or block beyond their context.
type EventPublisher interface {
	// Publish sends one event to the bus. source identifies the publishing
	// component (see the events package), eventType is the event's wire name
	// and payload is marshalled to JSON.
	Publish(ctx context.Context, source, eventType string, payload any) error
}
