package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// RoutePerformanceQueryHandler aggregates delivered shipments per route and
// carrier over a reporting window.
type RoutePerformanceQueryHandler struct {
	db *gorm.DB
}

// NewRoutePerformanceQueryHandler creates a handler for route metrics.
func NewRoutePerformanceQueryHandler(db *gorm.DB) RoutePerformanceQueryHandler {
	return RoutePerformanceQueryHandler{db: db}
}

// Handle executes the route metrics query. Only delivered shipments count;
// rows are sorted by route name, then fastest average.
func (h RoutePerformanceQueryHandler) Handle(
	ctx context.Context,
	query RoutePerformanceQuery,
) ([]RoutePerformance, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	metrics := make([]RoutePerformance, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id AS route_id,
			r.name AS route_name,
			c.id AS carrier_id,
			c.name AS carrier_name,
			COUNT(s.id) AS total_shipments,
			AVG(EXTRACT(EPOCH FROM (s.updated_at - s.created_at)) / 86400.0) AS avg_delivery_time_days
		FROM shipments s
		INNER JOIN carriers c ON s.carrier_id = c.id
		INNER JOIN routes r ON s.route_id = r.id
		WHERE s.created_at BETWEEN ? AND ?
			AND s.status = 'DELIVERED'
		GROUP BY r.id, r.name, c.id, c.name
		ORDER BY r.name, avg_delivery_time_days
	`, query.StartDate(), query.EndDate()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var metric RoutePerformance
		var avgDays sql.NullFloat64

		err = rows.Scan(
			&metric.RouteID,
			&metric.RouteName,
			&metric.CarrierID,
			&metric.CarrierName,
			&metric.TotalShipments,
			&avgDays,
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
