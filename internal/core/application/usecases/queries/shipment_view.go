// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries run raw SQL against the database and return read models; they never
// go through the repositories or the unit of work.
package queries

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/shipment"
)

// ShipmentView is the read model for a shipment row joined with its route and
// carrier names. Cost is recomputed from the stored package measurements so
// the listing always reflects the current pricing contract.
type ShipmentView struct {
	ID                    int                  `json:"id"`
	UserID                int                  `json:"userId"`
	PackageInfo           shipment.PackageInfo `json:"packageInfo"`
	ExitAddress           shipment.Address     `json:"exitAddress"`
	DestinationAddress    shipment.Address     `json:"destinationAddress"`
	Status                string               `json:"status"`
	TrackingNumber        string               `json:"trackingNumber"`
	EstimatedDeliveryDate time.Time            `json:"estimatedDeliveryDate"`
	RouteID               *int                 `json:"routeId"`
	CarrierID             *int                 `json:"carrierId"`
	RouteName             string               `json:"routeName,omitempty"`
	CarrierName           string               `json:"carrierName,omitempty"`
	Cost                  float64              `json:"cost"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// shipmentViewColumns is the select list every joined shipment read uses;
// scanShipmentView expects exactly this order.
const shipmentViewColumns = `
	s.id,
	s.user_id,
	s.package_info,
	s.exit_address,
	s.destination_address,
	s.status,
	s.tracking_number,
	s.estimated_delivery_date,
	s.route_id,
	s.carrier_id,
	s.created_at,
	s.updated_at,
	r.name AS route,
	c.name AS carrier`

// scanShipmentView scans one joined shipment row, decodes the JSON columns,
// and rebuilds the domain entity so stored rows are re-validated on read and
// the cost comes from the entity's pricing rule.
func scanShipmentView(rows *sql.Rows) (ShipmentView, error) {
	var (
		view                         ShipmentView
		packageInfoRaw               []byte
		exitAddressRaw               []byte
		destinationAddressRaw        []byte
		statusRaw                    string
		routeID, carrierID           sql.NullInt64
		routeName, carrierName       sql.NullString
		estimatedDelivery, createdAt time.Time
		updatedAt                    time.Time
	)

	if err := rows.Scan(
		&view.ID,
		&view.UserID,
		&packageInfoRaw,
		&exitAddressRaw,
		&destinationAddressRaw,
		&statusRaw,
		&view.TrackingNumber,
		&estimatedDelivery,
		&routeID,
		&carrierID,
		&createdAt,
		&updatedAt,
		&routeName,
		&carrierName,
	); err != nil {
		return ShipmentView{}, err
	}

	if err := json.Unmarshal(packageInfoRaw, &view.PackageInfo); err != nil {
		return ShipmentView{}, fmt.Errorf("decode package info: %w", err)
	}
	if err := json.Unmarshal(exitAddressRaw, &view.ExitAddress); err != nil {
		return ShipmentView{}, fmt.Errorf("decode exit address: %w", err)
	}
	if err := json.Unmarshal(destinationAddressRaw, &view.DestinationAddress); err != nil {
		return ShipmentView{}, fmt.Errorf("decode destination address: %w", err)
	}

	status, err := shipment.ParseStatus(statusRaw)
	if err != nil {
		return ShipmentView{}, err
	}

	if routeID.Valid {
		id := int(routeID.Int64)
		view.RouteID = &id
	}
	if carrierID.Valid {
		id := int(carrierID.Int64)
		view.CarrierID = &id
	}
	view.RouteName = routeName.String
	view.CarrierName = carrierName.String

	aggregate, err := shipment.RestoreShipment(
		view.ID,
		view.UserID,
		view.PackageInfo,
		view.ExitAddress,
		view.DestinationAddress,
		status,
		view.TrackingNumber,
		estimatedDelivery,
		view.RouteID,
		view.CarrierID,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return ShipmentView{}, fmt.Errorf("restore shipment %d: %w", view.ID, err)
	}

	view.Status = aggregate.Status().String()
	view.EstimatedDeliveryDate = aggregate.EstimatedDeliveryDate()
	view.Cost = aggregate.ShippingCost()
	view.CreatedAt = aggregate.CreatedAt()
	view.UpdatedAt = aggregate.UpdatedAt()
	return view, nil
}
