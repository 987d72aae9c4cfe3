package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending ──> Processing ──> Shipping ──> Delivered
//	    │            │             │
//	    └────────────┴─────────────┴──────> Cancelled
//
// Pending is the only legal initial status. Delivered and Cancelled are
// terminal. Beyond input validation, transitions are not enforced server-side
// for direct status updates; only route assignment is gated on Pending.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every new shipment, waiting for a
	// route and carrier assignment.
	Pending

	// Processing indicates a route and carrier have been assigned.
	Processing

	// Shipping indicates the parcel is in transit.
	Shipping

	// Delivered indicates the parcel reached its destination. Terminal.
	Delivered

	// Cancelled indicates the shipment was aborted. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Shipping:   "SHIPPING",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "PENDING",
		Processing: "PROCESSING",
		Shipping:   "SHIPPING",
		Delivered:  "DELIVERED",
		Cancelled:  "CANCELLED",
	}
}

// ParseStatus converts a persisted or user-supplied string into a Status.
// Returns an error for anything outside the five valid states.
func ParseStatus(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is one of the five valid states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, or "UNKNOWN" for invalid
// values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further lifecycle transitions are expected.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateAssign checks that a route/carrier assignment is allowed from the
// current status. Shipments may only acquire an assignment while Pending.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign a route", s.String()))
	}
	return nil
}
