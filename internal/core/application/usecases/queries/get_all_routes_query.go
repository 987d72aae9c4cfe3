package queries

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrGetAllRoutesQueryIsNotConstructed = errors.New(
	"GetAllRoutesQuery must be created via NewGetAllRoutesQuery constructor",
)

// GetAllRoutesQuery retrieves every route as a label/value option, for
// populating assignment pickers.
type GetAllRoutesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAllRoutesQuery creates a query to retrieve all routes.
func NewGetAllRoutesQuery() GetAllRoutesQuery {
	return GetAllRoutesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAllRoutesQuery) Validate() error {
	return q.guard.Validate(ErrGetAllRoutesQueryIsNotConstructed)
}

// Option is a display label paired with the id it denotes.
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}
