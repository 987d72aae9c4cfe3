package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllCarriersQueryHandler retrieves all carriers as label/value options.
type GetAllCarriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCarriersQueryHandler creates a handler for carrier listings.
func NewGetAllCarriersQueryHandler(db *gorm.DB) GetAllCarriersQueryHandler {
	return GetAllCarriersQueryHandler{db: db}
}

// Handle executes the query to retrieve all carriers, sorted by name.
func (h GetAllCarriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCarriersQuery,
) ([]Option, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	options := make([]Option, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name
		FROM carriers
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var option Option
		if err = rows.Scan(&option.Value, &option.Label); err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return options, nil
}
