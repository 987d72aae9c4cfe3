package shipmentrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GORM shipment repository bound to
// the given connection or transaction.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add inserts a new shipment row and returns the aggregate rebuilt with its
// assigned id and timestamps.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) (*shipment.Shipment, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return nil, err
	}
	dto.ID = 0

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetByID retrieves a shipment by id.
func (r *GormShipmentRepository) GetByID(ctx context.Context, id int) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByTrackingNumber retrieves a shipment by its tracking number.
func (r *GormShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", trackingNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus sets the status and refreshes updated_at, then releases the
// assigned carrier if any. Runs on the bound handle; callers provide the
// transaction so both changes commit or roll back together. Returns false
// without error when the shipment row does not exist, in which case nothing
// is touched.
func (r *GormShipmentRepository) UpdateStatus(ctx context.Context, id int, status shipment.Status) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}

	res := r.db.WithContext(ctx).Exec(
		`UPDATE shipments SET status = ?, updated_at = ? WHERE id = ?`,
		status.String(), time.Now(), id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	// lock the shipment row so a concurrent assignment cannot slip a carrier
	// in between the read and the release
	var carrierID sql.NullInt64
	row := r.db.WithContext(ctx).Raw(
		`SELECT carrier_id FROM shipments WHERE id = ? FOR UPDATE`, id,
	).Row()
	if err := row.Scan(&carrierID); err != nil {
		return false, err
	}

	if carrierID.Valid {
		if err := r.db.WithContext(ctx).Exec(
			`UPDATE carriers SET available = true WHERE id = ?`, carrierID.Int64,
		).Error; err != nil {
			return false, err
		}
	}

	return true, nil
}

// Delete removes a shipment row. Returns false when no row matched.
func (r *GormShipmentRepository) Delete(ctx context.Context, id int) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindAll lists every shipment, oldest first.
func (r *GormShipmentRepository) FindAll(ctx context.Context) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, aggregate)
	}

	return shipments, nil
}
