package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// CarrierPerformanceQueryHandler aggregates shipment outcomes per carrier
// over a reporting window. Delivery time is measured from row creation to the
// final update of a delivered shipment, in fractional days.
type CarrierPerformanceQueryHandler struct {
	db *gorm.DB
}

// NewCarrierPerformanceQueryHandler creates a handler for carrier metrics.
func NewCarrierPerformanceQueryHandler(db *gorm.DB) CarrierPerformanceQueryHandler {
	return CarrierPerformanceQueryHandler{db: db}
}

// Handle executes the carrier metrics query. Carriers with no shipments in
// the window do not appear; rows are sorted fastest average first.
func (h CarrierPerformanceQueryHandler) Handle(
	ctx context.Context,
	query CarrierPerformanceQuery,
) ([]CarrierPerformance, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	metrics := make([]CarrierPerformance, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS carrier_id,
			c.name AS carrier_name,
			COUNT(s.id) AS total_shipments,
			SUM(CASE WHEN s.status = 'DELIVERED' THEN 1 ELSE 0 END) AS completed_shipments,
			AVG(
				CASE
					WHEN s.status = 'DELIVERED' THEN
						EXTRACT(EPOCH FROM (s.updated_at - s.created_at)) / 86400.0
					ELSE NULL
				END
			) AS avg_delivery_time_days,
			SUM(CASE WHEN s.status = 'DELIVERED' THEN 1 ELSE 0 END)::float
				/ COUNT(s.id) * 100 AS completion_rate,
			SUM(CASE WHEN s.status = 'PENDING' THEN 1 ELSE 0 END) AS pending_shipments,
			SUM(CASE WHEN s.status IN ('PROCESSING', 'SHIPPING') THEN 1 ELSE 0 END) AS in_transit_shipments,
			SUM(CASE WHEN s.status = 'DELIVERED' THEN 1 ELSE 0 END) AS delivered_shipments,
			SUM(CASE WHEN s.status = 'CANCELLED' THEN 1 ELSE 0 END) AS cancelled_shipments
		FROM shipments s
		INNER JOIN carriers c ON s.carrier_id = c.id
		WHERE s.created_at BETWEEN ? AND ?
		GROUP BY c.id, c.name
		ORDER BY avg_delivery_time_days ASC
	`, query.StartDate(), query.EndDate()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var metric CarrierPerformance
		var avgDays sql.NullFloat64

		err = rows.Scan(
			&metric.CarrierID,
			&metric.CarrierName,
			&metric.TotalShipments,
			&metric.CompletedShipments,
			&avgDays,
			&metric.CompletionRate,
			&metric.PendingShipments,
			&metric.InTransitShipments,
			&metric.DeliveredShipments,
			&metric.CancelledShipments,
		)
		if err != nil {
			return nil, err
		}

		if avgDays.Valid {
			metric.AvgDeliveryTimeDays = &avgDays.Float64
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return metrics, nil
}
