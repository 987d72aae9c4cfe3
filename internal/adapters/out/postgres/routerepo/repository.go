package routerepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/pkg/errs"
)

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

// NewGormRouteRepository creates a new GORM route/carrier repository bound to
// the given connection or transaction.
func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

// FindAvailableRoutes retrieves routes whose availability flag is set, lowest
// id first.
func (r *GormRouteRepository) FindAvailableRoutes(ctx context.Context) ([]*route.Route, error) {
	var dtos []RouteDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "available = ?", true).Error; err != nil {
		return nil, err
	}

	routes := make([]*route.Route, 0, len(dtos))
	for _, dto := range dtos {
		entity, err := toRouteDomain(dto)
		if err != nil {
			return nil, err
		}
		routes = append(routes, entity)
	}

	return routes, nil
}

// FindCarrierByID retrieves a carrier only while it is available. An
// unavailable carrier is reported exactly like a missing one so callers
// cannot distinguish "claimed" from "never existed".
func (r *GormRouteRepository) FindCarrierByID(ctx context.Context, id int) (*carrier.Carrier, error) {
	var dto CarrierDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND available = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier", id)
		}
		return nil, err
	}

	return toCarrierDomain(dto)
}

// AssignRouteToShipment links the route and carrier to the shipment and
// claims the carrier. The carrier row is locked first so concurrent claims
// serialize; both updates are guarded by affected-row counts, and a false
// return tells the caller to roll back the surrounding transaction.
func (r *GormRouteRepository) AssignRouteToShipment(ctx context.Context, shipmentID, routeID, carrierID int) (bool, error) {
	var lockedID int
	row := r.db.WithContext(ctx).Raw(
		`SELECT id FROM carriers WHERE id = ? AND available = true FOR UPDATE`, carrierID,
	).Row()
	if err := row.Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	res := r.db.WithContext(ctx).Exec(
		`UPDATE shipments SET route_id = ?, carrier_id = ?, updated_at = ? WHERE id = ?`,
		routeID, carrierID, time.Now(), shipmentID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	res = r.db.WithContext(ctx).Exec(
		`UPDATE carriers SET available = false WHERE id = ? AND available = true`, carrierID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	return true, nil
}

// AddCarrier inserts a new carrier row and returns the entity rebuilt with
// its assigned id.
func (r *GormRouteRepository) AddCarrier(ctx context.Context, aggregate *carrier.Carrier) (*carrier.Carrier, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto := fromCarrierDomain(aggregate)
	dto.ID = 0

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	return toCarrierDomain(dto)
}
