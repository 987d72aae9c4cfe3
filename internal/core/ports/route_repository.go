package ports

import (
	"context"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/route"
)

// RouteRepository is the persistence boundary for routes and carriers,
// including the atomic route-assignment transaction.
type RouteRepository interface {
	// FindAvailableRoutes returns routes whose availability flag is true.
	FindAvailableRoutes(ctx context.Context) ([]*route.Route, error)

	// FindCarrierByID returns the carrier only while its availability flag
	// is true; an unavailable carrier is reported exactly like a
	// nonexistent one (errs.ErrObjectNotFound).
	FindCarrierByID(ctx context.Context, id int) (*carrier.Carrier, error)

	// AssignRouteToShipment links the route and carrier to the shipment and
	// clears the carrier's availability flag. Both updates must affect at
	// least one row; when either affects zero the caller must roll back and
	// the method reports false with a nil error. Callers run this inside a
	// unit-of-work transaction; the carrier row is locked first so two
	// concurrent claims serialize and exactly one wins.
	AssignRouteToShipment(ctx context.Context, shipmentID, routeID, carrierID int) (bool, error)

	// AddCarrier registers a new carrier and returns it with its
	// persistence-assigned id. Administrative operation.
	AddCarrier(ctx context.Context, aggregate *carrier.Carrier) (*carrier.Carrier, error)
}
