package queries

import (
	"errors"
	"time"

	"shipping/internal/pkg/guard"
)

var (
	ErrCarrierPerformanceQueryIsNotConstructed = errors.New(
		"CarrierPerformanceQuery must be created via NewCarrierPerformanceQuery constructor",
	)
	ErrPeriodIsRequired = errors.New("start date and end date are required")
	ErrPeriodIsInvalid  = errors.New("start date must not be after end date")
)

// validatePeriod checks a metrics reporting window: both bounds set, start
// not after end.
func validatePeriod(startDate, endDate time.Time) error {
	if startDate.IsZero() || endDate.IsZero() {
		return ErrPeriodIsRequired
	}
	if startDate.After(endDate) {
		return ErrPeriodIsInvalid
	}
	return nil
}

// CarrierPerformanceQuery retrieves per-carrier delivery metrics for a
// reporting window: volumes, per-status counts, average delivery time, and
// completion rate.
type CarrierPerformanceQuery struct {
	startDate time.Time
	endDate   time.Time

	guard guard.ConstructorGuard
}

// NewCarrierPerformanceQuery creates a carrier metrics query for the window
// [startDate, endDate] over shipment creation time.
func NewCarrierPerformanceQuery(startDate, endDate time.Time) (CarrierPerformanceQuery, error) {
	if err := validatePeriod(startDate, endDate); err != nil {
		return CarrierPerformanceQuery{}, err
	}
	return CarrierPerformanceQuery{
		startDate: startDate,
		endDate:   endDate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CarrierPerformanceQuery) Validate() error {
	return q.guard.Validate(ErrCarrierPerformanceQueryIsNotConstructed)
}

// StartDate returns the inclusive window start.
func (q CarrierPerformanceQuery) StartDate() time.Time {
	return q.startDate
}

// EndDate returns the inclusive window end.
func (q CarrierPerformanceQuery) EndDate() time.Time {
	return q.endDate
}

// CarrierPerformance is the per-carrier metrics read model.
// AvgDeliveryTimeDays is nil when the carrier delivered nothing in the
// window.
type CarrierPerformance struct {
	CarrierID           int      `json:"carrierId"`
	CarrierName         string   `json:"carrierName"`
	TotalShipments      int      `json:"totalShipments"`
	CompletedShipments  int      `json:"completedShipments"`
	AvgDeliveryTimeDays *float64 `json:"avgDeliveryTimeDays"`
	CompletionRate      float64  `json:"completionRate"`
	PendingShipments    int      `json:"pendingShipments"`
	InTransitShipments  int      `json:"inTransitShipments"`
	DeliveredShipments  int      `json:"deliveredShipments"`
	CancelledShipments  int      `json:"cancelledShipments"`
}
