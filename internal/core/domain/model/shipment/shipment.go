// Package shipment contains the shipment aggregate: the parcel movement
// record with its package details, origin and destination addresses, lifecycle
// status, tracking number, and route/carrier assignment.
package shipment

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"shipping/internal/pkg/errs"
)

// RatePerKg is the flat shipping rate in currency units per chargeable
// kilogram. The value is part of the pricing contract and must not drift.
const RatePerKg = 2.5

// trackingPrefix is the fixed two-letter prefix of every tracking number.
const trackingPrefix = "CO"

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment is the aggregate root for one parcel movement.
//
// Invariants:
//   - The destination address passes validation before a shipment exists.
//   - Status is always one of the five valid states; Pending is the only
//     legal initial status.
//   - A route/carrier assignment may only be acquired from Pending,
//     transitioning the shipment to Processing.
type Shipment struct {
	id                 int
	userID             int
	packageInfo        PackageInfo
	exitAddress        Address
	destinationAddress Address
	status             Status
	trackingNumber     string
	estimatedDelivery  time.Time
	routeID            *int
	carrierID          *int
	createdAt          time.Time
	updatedAt          time.Time

	isConstructed bool
}

// NewShipment creates a shipment for the creation use case. The id is zero
// until assigned by persistence, the status defaults to Pending, and the
// destination address must be structurally valid.
func NewShipment(userID int, packageInfo PackageInfo, exitAddress, destinationAddress Address) (*Shipment, error) {
	s := &Shipment{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setUserID(userID),
		s.setPackageInfo(packageInfo),
		s.setDestinationAddress(destinationAddress),
	); err != nil {
		return nil, err
	}

	s.exitAddress = exitAddress
	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence. Unlike
// NewShipment it accepts any valid status and an existing id, but still
// refuses rows whose destination no longer decodes to a valid address.
func RestoreShipment(
	id int,
	userID int,
	packageInfo PackageInfo,
	exitAddress, destinationAddress Address,
	status Status,
	trackingNumber string,
	estimatedDelivery time.Time,
	routeID, carrierID *int,
	createdAt, updatedAt time.Time,
) (*Shipment, error) {
	if id <= 0 {
		return nil, errs.NewValueIsInvalidError("id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	s := &Shipment{
		status:        status,
		isConstructed: true,
	}
	if err := errors.Join(
		s.setUserID(userID),
		s.setPackageInfo(packageInfo),
		s.setDestinationAddress(destinationAddress),
	); err != nil {
		return nil, err
	}

	s.id = id
	s.exitAddress = exitAddress
	s.trackingNumber = trackingNumber
	s.estimatedDelivery = estimatedDelivery
	s.routeID = routeID
	s.carrierID = carrierID
	s.createdAt = createdAt
	s.updatedAt = updatedAt
	return s, nil
}

// Validate ensures the Shipment was constructed through NewShipment or
// RestoreShipment, not by direct struct initialization.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the persistence-assigned identifier (zero before creation).
func (s *Shipment) ID() int { return s.id }

// UserID returns the owning user's identifier.
func (s *Shipment) UserID() int { return s.userID }

// PackageInfo returns the parcel details.
func (s *Shipment) PackageInfo() PackageInfo { return s.packageInfo }

// ExitAddress returns the origin address.
func (s *Shipment) ExitAddress() Address { return s.exitAddress }

// DestinationAddress returns the delivery address.
func (s *Shipment) DestinationAddress() Address { return s.destinationAddress }

// Status returns the current lifecycle state.
func (s *Shipment) Status() Status { return s.status }

// TrackingNumber returns the human-facing tracking identifier
// (empty until generated).
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }

// EstimatedDeliveryDate returns the promised delivery date.
func (s *Shipment) EstimatedDeliveryDate() time.Time { return s.estimatedDelivery }

// RouteID returns the assigned route id, nil when unassigned.
func (s *Shipment) RouteID() *int { return s.routeID }

// CarrierID returns the assigned carrier id, nil when unassigned.
func (s *Shipment) CarrierID() *int { return s.carrierID }

// CreatedAt returns the row creation timestamp.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last modification timestamp.
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }

// ShippingCost computes the price of the shipment: the chargeable weight
// (max of actual and volumetric weight, divisor 5000) times RatePerKg.
func (s *Shipment) ShippingCost() float64 {
	return s.packageInfo.ChargeableWeight() * RatePerKg
}

// HasValidDestination reports whether the destination address passes
// structural validation. Applied again before persistence as defense in
// depth on top of the external address validation.
func (s *Shipment) HasValidDestination() bool {
	return s.destinationAddress.IsValid()
}

// GenerateTrackingNumber assigns and returns a tracking number: the fixed
// prefix, the last 8 digits of the current epoch-millisecond timestamp, and
// a 4-digit zero-padded random number. Collisions are possible and accepted;
// uniqueness is not re-checked by callers.
func (s *Shipment) GenerateTrackingNumber() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	s.trackingNumber = fmt.Sprintf("%s%s%04d", trackingPrefix, millis, rand.Intn(10000))
	return s.trackingNumber
}

// ScheduleDelivery sets the estimated delivery date. The creation use case
// computes it as creation time plus three days.
func (s *Shipment) ScheduleDelivery(estimatedDelivery time.Time) {
	s.estimatedDelivery = estimatedDelivery
}

func (s *Shipment) setUserID(userID int) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userId",
			fmt.Errorf("%d is not greater than 0", userID))
	}
	s.userID = userID
	return nil
}

func (s *Shipment) setPackageInfo(packageInfo PackageInfo) error {
	if err := packageInfo.Validate(); err != nil {
		return err
	}
	s.packageInfo = packageInfo
	return nil
}

func (s *Shipment) setDestinationAddress(destination Address) error {
	if !destination.IsValid() {
		return errs.NewValueIsInvalidError("destinationAddress")
	}
	s.destinationAddress = destination
	return nil
}
