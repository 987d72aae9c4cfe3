package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"shipping/internal/core/application/result"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// GetShipmentsByUserQueryHandler lists shipments for one caller. Regular
// users see only their own rows; administrators see everything. Filters and
// pagination are translated into one SQL statement with routes and carriers
// joined in for their display names.
type GetShipmentsByUserQueryHandler struct {
	db     *gorm.DB
	users  ports.UserRepository
	logger *slog.Logger
}

// NewGetShipmentsByUserQueryHandler creates a handler for shipment listings.
func NewGetShipmentsByUserQueryHandler(
	db *gorm.DB,
	users ports.UserRepository,
	logger *slog.Logger,
) GetShipmentsByUserQueryHandler {
	return GetShipmentsByUserQueryHandler{
		db:     db,
		users:  users,
		logger: logger.With("component", "get_shipments_handler"),
	}
}

// Handle executes the listing query.
func (h GetShipmentsByUserQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsByUserQuery,
) result.Result[[]ShipmentView] {
	if err := query.Validate(); err != nil {
		return result.BadRequest[[]ShipmentView](err.Error())
	}

	caller, err := h.users.GetByID(ctx, query.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.NotFound[[]ShipmentView]("user not found")
	}
	if err != nil {
		return h.internal(ctx, "user lookup failed", err)
	}

	sql, args := buildListingSQL(caller, query.Filter())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return h.internal(ctx, "shipment listing failed", err)
	}
	defer rows.Close()

	views := make([]ShipmentView, 0)
	for rows.Next() {
		view, scanErr := scanShipmentView(rows)
		if scanErr != nil {
			return h.internal(ctx, "shipment row decoding failed", scanErr)
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return h.internal(ctx, "shipment listing failed", err)
	}

	return result.Ok(views)
}

// buildListingSQL assembles the filtered, paginated select. Conditions are
// appended in a fixed order so the statement text is stable for a given
// filter shape.
func buildListingSQL(caller *ports.User, filter Filter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(shipmentViewColumns)
	b.WriteString(`
	FROM shipments s
	LEFT JOIN routes r ON s.route_id = r.id
	LEFT JOIN carriers c ON s.carrier_id = c.id
	WHERE 1=1`)

	args := make([]any, 0, 8)

	if !caller.IsAdmin() {
		b.WriteString(" AND s.user_id = ?")
		args = append(args, caller.ID)
	}
	if filter.Search != "" {
		b.WriteString(" AND s.tracking_number = ?")
		args = append(args, filter.Search)
	}
	if filter.Status != shipment.Unknown {
		b.WriteString(" AND s.status = ?")
		args = append(args, filter.Status.String())
	}
	if filter.RouteID > 0 {
		b.WriteString(" AND s.route_id = ?")
		args = append(args, filter.RouteID)
	}
	if filter.CarrierID > 0 {
		b.WriteString(" AND s.carrier_id = ?")
		args = append(args, filter.CarrierID)
	}

	switch {
	case !filter.StartDate.IsZero() && !filter.EndDate.IsZero():
		b.WriteString(" AND s.estimated_delivery_date BETWEEN ? AND ?")
		args = append(args, filter.StartDate, filter.EndDate)
	case !filter.StartDate.IsZero():
		b.WriteString(" AND s.estimated_delivery_date >= ?")
		args = append(args, filter.StartDate)
	case !filter.EndDate.IsZero():
		b.WriteString(" AND s.estimated_delivery_date <= ?")
		args = append(args, filter.EndDate)
	}

	b.WriteString(fmt.Sprintf(" ORDER BY s.id LIMIT %d OFFSET %d",
		filter.PageSize, (filter.Page-1)*filter.PageSize))
	return b.String(), args
}

func (h GetShipmentsByUserQueryHandler) internal(
	ctx context.Context,
	msg string,
	err error,
) result.Result[[]ShipmentView] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[[]ShipmentView]("could not process shipping request")
}
