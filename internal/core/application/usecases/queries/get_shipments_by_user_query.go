package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

var (
	ErrGetShipmentsByUserQueryIsNotConstructed = errors.New(
		"GetShipmentsByUserQuery must be created via NewGetShipmentsByUserQuery constructor",
	)
	ErrQueryUserIDIsInvalid = errors.New("user id must be greater than 0")
)

// Filter narrows a shipment listing. Zero values mean "not filtered". Search
// is an exact tracking-number match, not a substring scan. StartDate and
// EndDate bound the estimated delivery date; either side may be open.
type Filter struct {
	Search    string
	Status    shipment.Status
	RouteID   int
	CarrierID int
	StartDate time.Time
	EndDate   time.Time
	Page      int
	PageSize  int
}

// GetShipmentsByUserQuery retrieves the shipments visible to one caller:
// their own shipments, or every shipment when the caller is an administrator.
type GetShipmentsByUserQuery struct {
	userID int
	filter Filter

	guard guard.ConstructorGuard
}

// NewGetShipmentsByUserQuery creates a listing query for the given caller.
// Non-positive page and page size fall back to 1 and 10; a set status filter
// must be one of the five valid states.
func NewGetShipmentsByUserQuery(userID int, filter Filter) (GetShipmentsByUserQuery, error) {
	if userID <= 0 {
		return GetShipmentsByUserQuery{}, ErrQueryUserIDIsInvalid
	}
	if filter.Status != shipment.Unknown {
		if err := filter.Status.Validate(); err != nil {
			return GetShipmentsByUserQuery{}, err
		}
	}

	if filter.Page <= 0 {
		filter.Page = defaultPage
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}

	return GetShipmentsByUserQuery{
		userID: userID,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsByUserQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsByUserQueryIsNotConstructed)
}

// UserID returns the calling user's id.
func (q GetShipmentsByUserQuery) UserID() int {
	return q.userID
}

// Filter returns the normalized listing filter.
func (q GetShipmentsByUserQuery) Filter() Filter {
	return q.filter
}
