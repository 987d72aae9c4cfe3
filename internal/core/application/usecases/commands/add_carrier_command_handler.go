package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/application/result"
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// AddCarrierResponse is the payload returned on successful registration.
type AddCarrierResponse struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	VehicleCapacity float64 `json:"vehicleCapacity"`
	Available       bool    `json:"available"`
}

// AddCarrierCommandHandler registers a new carrier in the fleet. Restricted
// to administrators.
type AddCarrierCommandHandler struct {
	uowFactory RouteUoWFactory
	users      ports.UserRepository
	logger     *slog.Logger
}

// NewAddCarrierCommandHandler creates a handler for carrier registration.
func NewAddCarrierCommandHandler(
	uowFactory RouteUoWFactory,
	users ports.UserRepository,
	logger *slog.Logger,
) AddCarrierCommandHandler {
	return AddCarrierCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		logger:     logger.With("component", "add_carrier_handler"),
	}
}

// Handle processes the add-carrier command.
func (h AddCarrierCommandHandler) Handle(
	ctx context.Context,
	cmd AddCarrierCommand,
) result.Result[AddCarrierResponse] {
	if err := cmd.Validate(); err != nil {
		return result.BadRequest[AddCarrierResponse](err.Error())
	}

	requestor, err := h.users.GetByID(ctx, cmd.RequestorID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.NotFound[AddCarrierResponse]("user not found")
	}
	if err != nil {
		return h.internal(ctx, "user lookup failed", err)
	}

	if !requestor.IsAdmin() {
		return result.Fail[AddCarrierResponse]("only administrators can register carriers", 403)
	}

	aggregate, err := carrier.NewCarrier(cmd.Name(), cmd.VehicleCapacity())
	if err != nil {
		return result.BadRequest[AddCarrierResponse](err.Error())
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return h.internal(ctx, "transaction begin failed", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	created, err := uow.RouteRepository().AddCarrier(ctx, aggregate)
	if err != nil {
		return h.internal(ctx, "carrier persistence failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.internal(ctx, "transaction commit failed", err)
	}

	return result.OkWithMessage(AddCarrierResponse{
		ID:              created.ID(),
		Name:            created.Name(),
		VehicleCapacity: created.VehicleCapacity(),
		Available:       created.IsAvailable(),
	}, "carrier registered")
}

func (h AddCarrierCommandHandler) internal(
	ctx context.Context,
	msg string,
	err error,
) result.Result[AddCarrierResponse] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[AddCarrierResponse]("could not process shipping request")
}
