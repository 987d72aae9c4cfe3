package queries

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"shipping/internal/core/application/result"
)

// GetShipmentByTrackingQueryHandler resolves a tracking number to its
// shipment view.
type GetShipmentByTrackingQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGetShipmentByTrackingQueryHandler creates a handler for tracking lookups.
func NewGetShipmentByTrackingQueryHandler(db *gorm.DB, logger *slog.Logger) GetShipmentByTrackingQueryHandler {
	return GetShipmentByTrackingQueryHandler{
		db:     db,
		logger: logger.With("component", "tracking_lookup_handler"),
	}
}

// Handle executes the tracking lookup.
func (h GetShipmentByTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentByTrackingQuery,
) result.Result[ShipmentView] {
	if err := query.Validate(); err != nil {
		return result.BadRequest[ShipmentView](err.Error())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentViewColumns+`
		FROM shipments s
		LEFT JOIN routes r ON s.route_id = r.id
		LEFT JOIN carriers c ON s.carrier_id = c.id
		WHERE s.tracking_number = ?
	`, query.TrackingNumber()).Rows()
	if err != nil {
		return h.internal(ctx, "tracking lookup failed", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return h.internal(ctx, "tracking lookup failed", err)
		}
		return result.NotFound[ShipmentView]("shipment not found")
	}

	view, err := scanShipmentView(rows)
	if err != nil {
		return h.internal(ctx, "shipment row decoding failed", err)
	}

	return result.Ok(view)
}

func (h GetShipmentByTrackingQueryHandler) internal(
	ctx context.Context,
	msg string,
	err error,
) result.Result[ShipmentView] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[ShipmentView]("could not process shipping request")
}
