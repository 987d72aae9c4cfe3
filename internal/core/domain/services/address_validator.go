package services

import (
	"context"
	"regexp"

	"shipping/internal/core/domain/model/shipment"
)

var phoneFormat = regexp.MustCompile(`^\+?[\d\s-]{7,15}$`)

// StandardAddressValidator is the default implementation of the address
// validation collaborator. On top of the structural check the shipment
// entity always applies, it rejects recipient phone numbers that do not look
// dialable. A richer implementation could call out to a postal service; the
// port keeps that pluggable.
type StandardAddressValidator struct{}

// NewStandardAddressValidator creates a StandardAddressValidator.
func NewStandardAddressValidator() StandardAddressValidator {
	return StandardAddressValidator{}
}

// Validate reports whether the address is deliverable. Never returns an
// error; the signature carries one for implementations that do remote
// lookups.
func (StandardAddressValidator) Validate(_ context.Context, address shipment.Address) (bool, error) {
	if !address.IsValid() {
		return false, nil
	}
	if !phoneFormat.MatchString(address.RecipientPhone) {
		return false, nil
	}
	return true, nil
}
