// Package services contains stateless domain services that operate across
// aggregates without owning state of their own.
package services

// CapacityChecker decides whether a carrier's vehicle can take a shipment.
// It is pure and performs no I/O: the check runs strictly before the
// assignment transaction, on values already fetched, never inside it.
type CapacityChecker struct{}

// NewCapacityChecker creates a CapacityChecker.
func NewCapacityChecker() CapacityChecker {
	return CapacityChecker{}
}

// CanAccommodate reports whether a shipment of the given weight fits the
// carrier's vehicle capacity. True iff shipmentWeight <= carrierCapacity.
func (CapacityChecker) CanAccommodate(shipmentWeight, carrierCapacity float64) bool {
	return shipmentWeight <= carrierCapacity
}
