// Package carrier contains the carrier (transporter) entity: a vehicle and
// operator with finite capacity and a boolean availability flag.
package carrier

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
)

// ErrCarrierIsNotConstructed is returned when a Carrier instance was not
// created through NewCarrier or RestoreCarrier.
var ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

// Carrier is a vehicle/operator resource. The availability flag is a
// mutual-exclusion bit: a carrier marked unavailable must never be assigned
// to a new shipment, which protects against double-booking.
type Carrier struct {
	id              int
	name            string
	vehicleCapacity float64
	available       bool

	isConstructed bool
}

// NewCarrier creates a carrier for registration. New carriers start
// available; the id is zero until assigned by persistence.
func NewCarrier(name string, vehicleCapacity float64) (*Carrier, error) {
	c := &Carrier{
		available:     true,
		isConstructed: true,
	}
	if err := errors.Join(
		c.setName(name),
		c.setVehicleCapacity(vehicleCapacity),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCarrier reconstructs a carrier from persistence.
func RestoreCarrier(id int, name string, vehicleCapacity float64, available bool) (*Carrier, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("id")
	}

	c := &Carrier{
		available:     available,
		isConstructed: true,
	}
	if err := errors.Join(
		c.setName(name),
		c.setVehicleCapacity(vehicleCapacity),
	); err != nil {
		return nil, err
	}

	c.id = id
	return c, nil
}

// Validate ensures the Carrier was created through a constructor.
func (c *Carrier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCarrierIsNotConstructed
	}
	return nil
}

// ID returns the carrier identifier.
func (c *Carrier) ID() int { return c.id }

// Name returns the operator name.
func (c *Carrier) Name() string { return c.name }

// VehicleCapacity returns the vehicle capacity in the same unit as package
// weight.
func (c *Carrier) VehicleCapacity() float64 { return c.vehicleCapacity }

// IsAvailable reports whether the carrier is free for a new assignment.
func (c *Carrier) IsAvailable() bool { return c.available }

func (c *Carrier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Carrier) setVehicleCapacity(vehicleCapacity float64) error {
	if vehicleCapacity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("vehicleCapacity",
			fmt.Errorf("%v is not greater than 0", vehicleCapacity))
	}
	c.vehicleCapacity = vehicleCapacity
	return nil
}
