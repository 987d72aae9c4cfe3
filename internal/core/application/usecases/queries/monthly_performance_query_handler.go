package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// MonthlyPerformanceQueryHandler aggregates shipment outcomes per carrier and
// calendar month over a reporting window.
type MonthlyPerformanceQueryHandler struct {
	db *gorm.DB
}

// NewMonthlyPerformanceQueryHandler creates a handler for monthly metrics.
func NewMonthlyPerformanceQueryHandler(db *gorm.DB) MonthlyPerformanceQueryHandler {
	return MonthlyPerformanceQueryHandler{db: db}
}

// Handle executes the monthly metrics query, sorted by carrier name then
// chronologically.
func (h MonthlyPerformanceQueryHandler) Handle(
	ctx context.Context,
	query MonthlyPerformanceQuery,
) ([]MonthlyPerformance, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	metrics := make([]MonthlyPerformance, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.id AS carrier_id,
			c.name AS carrier_name,
			EXTRACT(YEAR FROM s.created_at)::int AS year,
			EXTRACT(MONTH FROM s.created_at)::int AS month,
			COUNT(s.id) AS total_shipments,
			SUM(CASE WHEN s.status = 'DELIVERED' THEN 1 ELSE 0 END) AS completed_shipments,
			AVG(
				CASE
					WHEN s.status = 'DELIVERED' THEN
						EXTRACT(EPOCH FROM (s.updated_at - s.created_at)) / 86400.0
					ELSE NULL
				END
			) AS avg_delivery_time_days
		FROM shipments s
		INNER JOIN carriers c ON s.carrier_id = c.id
		WHERE s.created_at BETWEEN ? AND ?
		GROUP BY c.id, c.name, year, month
		ORDER BY c.name, year, month
	`, query.StartDate(), query.EndDate()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var metric MonthlyPerformance
		var avgDays sql.NullFloat64

		err = rows.Scan(
			&metric.CarrierID,
			&metric.CarrierName,
			&metric.Year,
			&metric.Month,
			&metric.TotalShipments,
			&metric.CompletedShipments,
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
