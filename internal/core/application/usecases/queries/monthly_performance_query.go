package queries

import (
	"errors"
	"time"

	"shipping/internal/pkg/guard"
)

var ErrMonthlyPerformanceQueryIsNotConstructed = errors.New(
	"MonthlyPerformanceQuery must be created via NewMonthlyPerformanceQuery constructor",
)

// MonthlyPerformanceQuery retrieves per-carrier delivery metrics broken down
// by calendar month across the reporting window.
type MonthlyPerformanceQuery struct {
	startDate time.Time
	endDate   time.Time

	guard guard.ConstructorGuard
}

// NewMonthlyPerformanceQuery creates a monthly metrics query for the window
// [startDate, endDate] over shipment creation time.
func NewMonthlyPerformanceQuery(startDate, endDate time.Time) (MonthlyPerformanceQuery, error) {
	if err := validatePeriod(startDate, endDate); err != nil {
		return MonthlyPerformanceQuery{}, err
	}
	return MonthlyPerformanceQuery{
		startDate: startDate,
		endDate:   endDate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q MonthlyPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrMonthlyPerformanceQueryIsNotConstructed)
}

// StartDate returns the inclusive window start.
func (q MonthlyPerformanceQuery) StartDate() time.Time {
	return q.startDate
}

// EndDate returns the inclusive window end.
func (q MonthlyPerformanceQuery) EndDate() time.Time {
	return q.endDate
}

// MonthlyPerformance is the per-carrier, per-month metrics read model.
type MonthlyPerformance struct {
	CarrierID           int      `json:"carrierId"`
	CarrierName         string   `json:"carrierName"`
	Year                int      `json:"year"`
	Month               int      `json:"month"`
	TotalShipments      int      `json:"totalShipments"`
	CompletedShipments  int      `json:"completedShipments"`
	AvgDeliveryTimeDays *float64 `json:"avgDeliveryTimeDays"`
}
