// Package routerepo implements the route/carrier repository on GORM,
// including the transactional carrier claim used by route assignment.
package routerepo

import (
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/route"
)

// RouteDTO represents the database structure for routes.
type RouteDTO struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null"`
	Capacity  int    `gorm:"not null"`
	Available bool   `gorm:"not null;default:true"`
}

// TableName specifies the database table name for route entities.
func (RouteDTO) TableName() string {
	return "routes"
}

// CarrierDTO represents the database structure for carriers. Available is the
// double-booking mutex toggled by assignment and release.
type CarrierDTO struct {
	ID              int     `gorm:"primaryKey;autoIncrement"`
	Name            string  `gorm:"not null"`
	VehicleCapacity float64 `gorm:"not null"`
	Available       bool    `gorm:"not null;default:true"`
}

// TableName specifies the database table name for carrier entities.
func (CarrierDTO) TableName() string {
	return "carriers"
}

// toRouteDomain converts a route row to its domain entity.
func toRouteDomain(dto RouteDTO) (*route.Route, error) {
	return route.RestoreRoute(dto.ID, dto.Name, dto.Capacity, dto.Available)
}

// fromCarrierDomain converts a carrier entity to its database representation.
func fromCarrierDomain(aggregate *carrier.Carrier) CarrierDTO {
	return CarrierDTO{
		ID:              aggregate.ID(),
		Name:            aggregate.Name(),
		VehicleCapacity: aggregate.VehicleCapacity(),
		Available:       aggregate.IsAvailable(),
	}
}

// toCarrierDomain converts a carrier row to its domain entity.
func toCarrierDomain(dto CarrierDTO) (*carrier.Carrier, error) {
	return carrier.RestoreCarrier(dto.ID, dto.Name, dto.VehicleCapacity, dto.Available)
}
