// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and outbound collaborators.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository is the persistence boundary for shipment aggregates.
// Point lookups return errs.ErrObjectNotFound (via errors.Is) when the row
// is absent; connection and constraint failures are propagated untouched,
// never retried.
type ShipmentRepository interface {
	// Add inserts a new shipment row (status Pending, serialized package
	// and address documents, tracking number, estimated delivery date)
	// and returns the aggregate with its persistence-assigned id.
	Add(ctx context.Context, aggregate *shipment.Shipment) (*shipment.Shipment, error)

	// GetByID retrieves a shipment by id.
	GetByID(ctx context.Context, id int) (*shipment.Shipment, error)

	// GetByTrackingNumber retrieves a shipment by its tracking number.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error)

	// UpdateStatus sets the shipment's status and refreshes updated_at; when
	// the shipment has an assigned carrier, that carrier's availability is
	// reset to true as part of the same change set. Callers must run this
	// inside a unit-of-work transaction so the carrier release can never
	// outlive a rolled-back status change. Returns whether a shipment row
	// was affected.
	UpdateStatus(ctx context.Context, id int, status shipment.Status) (bool, error)

	// Delete removes a shipment row. Administrative operation.
	Delete(ctx context.Context, id int) (bool, error)

	// FindAll lists every shipment. Administrative operation.
	FindAll(ctx context.Context) ([]*shipment.Shipment, error)
}
