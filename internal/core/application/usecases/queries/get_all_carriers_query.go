package queries

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrGetAllCarriersQueryIsNotConstructed = errors.New(
	"GetAllCarriersQuery must be created via NewGetAllCarriersQuery constructor",
)

// GetAllCarriersQuery retrieves every carrier as a label/value option. The
// listing includes unavailable carriers; availability is enforced at
// assignment time, not here.
type GetAllCarriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllCarriersQuery creates a query to retrieve all carriers.
func NewGetAllCarriersQuery() GetAllCarriersQuery {
	return GetAllCarriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllCarriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAllCarriersQueryIsNotConstructed)
}
