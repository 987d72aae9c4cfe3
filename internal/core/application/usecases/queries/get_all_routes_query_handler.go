package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllRoutesQueryHandler retrieves all routes as label/value options.
type GetAllRoutesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllRoutesQueryHandler creates a handler for route listings.
func NewGetAllRoutesQueryHandler(db *gorm.DB) GetAllRoutesQueryHandler {
	return GetAllRoutesQueryHandler{db: db}
}

// Handle executes the query to retrieve all routes, sorted by name.
func (h GetAllRoutesQueryHandler) Handle(
	ctx context.Context,
	query GetAllRoutesQuery,
) ([]Option, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	options := make([]Option, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name
		FROM routes
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
