package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrUserIDIsInvalid = errors.New("user id must be greater than 0")
)

// CreateShipmentCommand represents a request to register a new shipment for
// a user: the parcel details plus origin and destination addresses. Deeper
// address validation is the handler's job; the command only guarantees
// structural minimums.
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	userID             int
	packageInfo        shipment.PackageInfo
	exitAddress        shipment.Address
	destinationAddress shipment.Address

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a shipment.
// Validates the owning user id and the package measurements.
func NewCreateShipmentCommand(
	userID int,
	packageInfo shipment.PackageInfo,
	exitAddress, destinationAddress shipment.Address,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setPackageInfo(packageInfo),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	cmd.exitAddress = exitAddress
	cmd.destinationAddress = destinationAddress
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// UserID returns the owning user's id.
func (c CreateShipmentCommand) UserID() int {
	return c.userID
}

// PackageInfo returns the parcel details.
func (c CreateShipmentCommand) PackageInfo() shipment.PackageInfo {
	return c.packageInfo
}

// ExitAddress returns the origin address.
func (c CreateShipmentCommand) ExitAddress() shipment.Address {
	return c.exitAddress
}

// DestinationAddress returns the delivery address.
func (c CreateShipmentCommand) DestinationAddress() shipment.Address {
	return c.destinationAddress
}

func (c *CreateShipmentCommand) setUserID(userID int) error {
	if userID <= 0 {
		return ErrUserIDIsInvalid
	}
	c.userID = userID
	return nil
}

func (c *CreateShipmentCommand) setPackageInfo(packageInfo shipment.PackageInfo) error {
	if err := packageInfo.Validate(); err != nil {
		return fmt.Errorf("package info: %w", err)
	}
	c.packageInfo = packageInfo
	return nil
}
