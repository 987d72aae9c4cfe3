package commands

import (
	"errors"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand represents a request to move a shipment to a
// new lifecycle status. Operator-driven: transitions beyond status validity
// are not enforced here.
type UpdateShipmentStatusCommand struct { //nolint:recvcheck //using for validation
	shipmentID int
	status     shipment.Status

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand creates a status-update command. The
// shipment id must be positive and the status one of the five valid states.
func NewUpdateShipmentStatusCommand(shipmentID int, status shipment.Status) (UpdateShipmentStatusCommand, error) {
	cmd := UpdateShipmentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the shipment to update.
func (c UpdateShipmentStatusCommand) ShipmentID() int {
	return c.shipmentID
}

// Status returns the target status.
func (c UpdateShipmentStatusCommand) Status() shipment.Status {
	return c.status
}

func (c *UpdateShipmentStatusCommand) setShipmentID(shipmentID int) error {
	if shipmentID <= 0 {
		return ErrShipmentIDIsInvalid
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentStatusCommand) setStatus(status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}
