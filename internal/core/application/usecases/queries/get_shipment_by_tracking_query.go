package queries

import (
	"errors"
	"strings"

	"shipping/internal/pkg/guard"
)

var (
	ErrGetShipmentByTrackingQueryIsNotConstructed = errors.New(
		"GetShipmentByTrackingQuery must be created via NewGetShipmentByTrackingQuery constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
)

// GetShipmentByTrackingQuery retrieves one shipment by its public tracking
// number. Unauthenticated lookups are allowed; the tracking number itself is
// the capability.
type GetShipmentByTrackingQuery struct {
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetShipmentByTrackingQuery creates a tracking lookup query. The tracking
// number must be non-blank; no format check beyond that, unknown formats
// simply find nothing.
func NewGetShipmentByTrackingQuery(trackingNumber string) (GetShipmentByTrackingQuery, error) {
	if strings.TrimSpace(trackingNumber) == "" {
		return GetShipmentByTrackingQuery{}, ErrTrackingNumberIsRequired
	}
	return GetShipmentByTrackingQuery{
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentByTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByTrackingQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetShipmentByTrackingQuery) TrackingNumber() string {
	return q.trackingNumber
}
