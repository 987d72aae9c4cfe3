// Package route contains the transport lane entity. Routes are referenced by
// id from shipments, not owned by them.
package route

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrRouteIsNotConstructed is returned when a Route instance was not created
// through the RestoreRoute constructor.
var ErrRouteIsNotConstructed = errors.New("Route must be created via RestoreRoute constructor")

// Route is a named transport lane with a capacity and an availability flag.
type Route struct {
	id        int
	name      string
	capacity  int
	available bool

	isConstructed bool
}

// RestoreRoute reconstructs a route from persistence.
func RestoreRoute(id int, name string, capacity int, available bool) (*Route, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if capacity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("capacity",
			fmt.Errorf("%d is not greater than 0", capacity))
	}

	return &Route{
		id:            id,
		name:          name,
		capacity:      capacity,
		available:     available,
		isConstructed: true,
	}, nil
}

// Validate ensures the Route was created through RestoreRoute.
func (r *Route) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// ID returns the route identifier.
func (r *Route) ID() int { return r.id }

// Name returns the lane name.
func (r *Route) Name() string { return r.name }

// Capacity returns the lane capacity.
func (r *Route) Capacity() int { return r.capacity }

// IsAvailable reports whether the route can take new shipments.
func (r *Route) IsAvailable() bool { return r.available }
