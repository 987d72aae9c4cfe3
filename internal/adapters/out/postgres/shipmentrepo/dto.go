// Package shipmentrepo implements the shipment repository on GORM. Package
// measurements and addresses are stored as JSON documents; rows are
// re-validated through the domain constructor on every read.
package shipmentrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The package and address documents are serialized JSON so their
// shape can evolve without schema migrations.
type ShipmentDTO struct {
	ID                    int    `gorm:"primaryKey;autoIncrement"`
	UserID                int    `gorm:"index;not null"`
	PackageInfo           []byte `gorm:"type:jsonb;not null"`
	ExitAddress           []byte `gorm:"type:jsonb;not null"`
	DestinationAddress    []byte `gorm:"type:jsonb;not null"`
	Status                string `gorm:"type:varchar(20);index;not null"`
	TrackingNumber        string `gorm:"type:varchar(20);index"`
	EstimatedDeliveryDate time.Time
	RouteID               *int `gorm:"index"`
	CarrierID             *int `gorm:"index"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) (ShipmentDTO, error) {
	packageInfo, err := json.Marshal(aggregate.PackageInfo())
	if err != nil {
		return ShipmentDTO{}, fmt.Errorf("encode package info: %w", err)
	}
	exitAddress, err := json.Marshal(aggregate.ExitAddress())
	if err != nil {
		return ShipmentDTO{}, fmt.Errorf("encode exit address: %w", err)
	}
	destinationAddress, err := json.Marshal(aggregate.DestinationAddress())
	if err != nil {
		return ShipmentDTO{}, fmt.Errorf("encode destination address: %w", err)
	}

	return ShipmentDTO{
		ID:                    aggregate.ID(),
		UserID:                aggregate.UserID(),
		PackageInfo:           packageInfo,
		ExitAddress:           exitAddress,
		DestinationAddress:    destinationAddress,
		Status:                aggregate.Status().String(),
		TrackingNumber:        aggregate.TrackingNumber(),
		EstimatedDeliveryDate: aggregate.EstimatedDeliveryDate(),
		RouteID:               aggregate.RouteID(),
		CarrierID:             aggregate.CarrierID(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database row to a shipment aggregate. Decoding runs the
// same validation as creation, so a row whose documents no longer parse or
// validate surfaces as an error instead of a half-built entity.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	var packageInfo shipment.PackageInfo
	if err := json.Unmarshal(dto.PackageInfo, &packageInfo); err != nil {
		return nil, fmt.Errorf("decode package info: %w", err)
	}

	var exitAddress shipment.Address
	if err := json.Unmarshal(dto.ExitAddress, &exitAddress); err != nil {
		return nil, fmt.Errorf("decode exit address: %w", err)
	}

	var destinationAddress shipment.Address
	if err := json.Unmarshal(dto.DestinationAddress, &destinationAddress); err != nil {
		return nil, fmt.Errorf("decode destination address: %w", err)
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		dto.ID,
		dto.UserID,
		packageInfo,
		exitAddress,
		destinationAddress,
		status,
		dto.TrackingNumber,
		dto.EstimatedDeliveryDate,
		dto.RouteID,
		dto.CarrierID,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
