package commands

import (
	"errors"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/pkg/guard"
)

var ErrAddCarrierCommandIsNotConstructed = errors.New(
	"AddCarrierCommand must be created via NewAddCarrierCommand constructor",
)

// AddCarrierCommand represents an administrative request to register a new
// carrier in the fleet.
type AddCarrierCommand struct { //nolint:recvcheck //using for validation
	name            string
	vehicleCapacity float64
	requestorID     int

	guard guard.ConstructorGuard
}

// NewAddCarrierCommand creates a command to register a carrier. Name and
// vehicle capacity are validated by the carrier entity rules.
func NewAddCarrierCommand(name string, vehicleCapacity float64, requestorID int) (AddCarrierCommand, error) {
	cmd := AddCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCarrier(name, vehicleCapacity),
		cmd.setRequestorID(requestorID),
	); err != nil {
		return AddCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCarrierCommand) Validate() error {
	return c.guard.Validate(ErrAddCarrierCommandIsNotConstructed)
}

// Name returns the carrier name.
func (c AddCarrierCommand) Name() string {
	return c.name
}

// VehicleCapacity returns the carrier's vehicle capacity in kilograms.
func (c AddCarrierCommand) VehicleCapacity() float64 {
	return c.vehicleCapacity
}

// RequestorID returns the id of the user registering the carrier.
func (c AddCarrierCommand) RequestorID() int {
	return c.requestorID
}

func (c *AddCarrierCommand) setCarrier(name string, vehicleCapacity float64) error {
	if _, err := carrier.NewCarrier(name, vehicleCapacity); err != nil {
		return err
	}
	c.name = name
	c.vehicleCapacity = vehicleCapacity
	return nil
}

func (c *AddCarrierCommand) setRequestorID(requestorID int) error {
	if requestorID <= 0 {
		return ErrUserIDIsInvalid
	}
	c.requestorID = requestorID
	return nil
}
