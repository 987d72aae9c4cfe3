package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand represents an administrative request to remove a
// shipment record.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID  int
	requestorID int

	guard guard.ConstructorGuard
}

// NewDeleteShipmentCommand creates a delete command. Both the shipment id and
// the id of the user requesting the deletion must be positive.
func NewDeleteShipmentCommand(shipmentID, requestorID int) (DeleteShipmentCommand, error) {
	cmd := DeleteShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setRequestorID(requestorID),
	); err != nil {
		return DeleteShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment to delete.
func (c DeleteShipmentCommand) ShipmentID() int {
	return c.shipmentID
}

// RequestorID returns the id of the user requesting the deletion.
func (c DeleteShipmentCommand) RequestorID() int {
	return c.requestorID
}

func (c *DeleteShipmentCommand) setShipmentID(shipmentID int) error {
	if shipmentID <= 0 {
		return ErrShipmentIDIsInvalid
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *DeleteShipmentCommand) setRequestorID(requestorID int) error {
	if requestorID <= 0 {
		return ErrUserIDIsInvalid
	}
	c.requestorID = requestorID
	return nil
}
