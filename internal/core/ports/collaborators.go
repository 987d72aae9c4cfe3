package ports

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
)

// Email is a notification message handed to the Notifier.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// Notifier delivers user notifications. Best-effort: the core logs failures
// and never fails the owning use case on a send error, and never retries.
type Notifier interface {
	SendEmail(ctx context.Context, email Email) error
}

// Broadcaster pushes real-time events to connected listeners. Fire and
// forget, no delivery guarantee.
type Broadcaster interface {
	Emit(ctx context.Context, event string, payload any) error
}

// AddressValidator is the external address validation collaborator. It may
// apply richer checks than the structural validation the shipment entity
// always performs on top of it.
type AddressValidator interface {
	Validate(ctx context.Context, address shipment.Address) (bool, error)
}
