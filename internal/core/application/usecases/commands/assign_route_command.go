package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var (
	ErrAssignRouteCommandIsNotConstructed = errors.New(
		"AssignRouteCommand must be created via NewAssignRouteCommand constructor",
	)
	ErrShipmentIDIsInvalid = errors.New("shipment id must be greater than 0")
	ErrRouteIDIsInvalid    = errors.New("route id must be greater than 0")
	ErrCarrierIDIsInvalid  = errors.New("carrier id must be greater than 0")
)

// AssignRouteCommand represents a request to assign a route and carrier to a
// pending shipment.
type AssignRouteCommand struct { //nolint:recvcheck //using for validation
	shipmentID int
	routeID    int
	carrierID  int

	guard guard.ConstructorGuard
}

// NewAssignRouteCommand creates a command to assign a route and carrier.
// All three ids must be positive.
func NewAssignRouteCommand(shipmentID, routeID, carrierID int) (AssignRouteCommand, error) {
	cmd := AssignRouteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setRouteID(routeID),
		cmd.setCarrierID(carrierID),
	); err != nil {
		return AssignRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRouteCommand) Validate() error {
	return c.guard.Validate(ErrAssignRouteCommandIsNotConstructed)
}

// ShipmentID returns the shipment to assign.
func (c AssignRouteCommand) ShipmentID() int {
	return c.shipmentID
}

// RouteID returns the requested route.
func (c AssignRouteCommand) RouteID() int {
	return c.routeID
}

// CarrierID returns the requested carrier.
func (c AssignRouteCommand) CarrierID() int {
	return c.carrierID
}

func (c *AssignRouteCommand) setShipmentID(shipmentID int) error {
	if shipmentID <= 0 {
		return ErrShipmentIDIsInvalid
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AssignRouteCommand) setRouteID(routeID int) error {
	if routeID <= 0 {
		return ErrRouteIDIsInvalid
	}
	c.routeID = routeID
	return nil
}

func (c *AssignRouteCommand) setCarrierID(carrierID int) error {
	if carrierID <= 0 {
		return ErrCarrierIDIsInvalid
	}
	c.carrierID = carrierID
	return nil
}
