package queries

import (
	"errors"
	"time"

	"shipping/internal/pkg/guard"
)

var ErrRoutePerformanceQueryIsNotConstructed = errors.New(
	"RoutePerformanceQuery must be created via NewRoutePerformanceQuery constructor",
)

// RoutePerformanceQuery retrieves delivery metrics per route and carrier
// pair, restricted to delivered shipments in the reporting window.
type RoutePerformanceQuery struct {
	startDate time.Time
	endDate   time.Time

	guard guard.ConstructorGuard
}

// NewRoutePerformanceQuery creates a route metrics query for the window
// [startDate, endDate] over shipment creation time.
func NewRoutePerformanceQuery(startDate, endDate time.Time) (RoutePerformanceQuery, error) {
	if err := validatePeriod(startDate, endDate); err != nil {
		return RoutePerformanceQuery{}, err
	}
	return RoutePerformanceQuery{
		startDate: startDate,
		endDate:   endDate,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q RoutePerformanceQuery) Validate() error {
	return q.guard.Validate(ErrRoutePerformanceQueryIsNotConstructed)
}

// StartDate returns the inclusive window start.
func (q RoutePerformanceQuery) StartDate() time.Time {
	return q.startDate
}

// EndDate returns the inclusive window end.
func (q RoutePerformanceQuery) EndDate() time.Time {
	return q.endDate
}

// RoutePerformance is the per-route, per-carrier metrics read model.
type RoutePerformance struct {
	RouteID             int      `json:"routeId"`
	RouteName           string   `json:"routeName"`
	CarrierID           int      `json:"carrierId"`
	CarrierName         string   `json:"carrierName"`
	TotalShipments      int      `json:"totalShipments"`
	AvgDeliveryTimeDays *float64 `json:"avgDeliveryTimeDays"`
}
