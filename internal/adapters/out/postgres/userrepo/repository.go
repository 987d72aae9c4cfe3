// Package userrepo implements the user lookup collaborator on GORM. Account
// management lives elsewhere; this adapter only reads the rows it needs for
// ownership, notification, and role checks.
package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// UserDTO represents the database structure for user rows.
type UserDTO struct {
	ID    int    `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null;uniqueIndex"`
	Role  string `gorm:"not null;default:user"`
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID retrieves a user by id.
func (r *GormUserRepository) GetByID(ctx context.Context, id int) (*ports.User, error) {
	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id)
		}
		return nil, err
	}

	return &ports.User{
		ID:    dto.ID,
		Email: dto.Email,
		Role:  dto.Role,
	}, nil
}
