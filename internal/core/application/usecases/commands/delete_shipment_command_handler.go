package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/application/result"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// DeleteShipmentCommandHandler removes a shipment record. Restricted to
// administrators; regular users keep their history immutable.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	users      ports.UserRepository
	logger     *slog.Logger
}

// NewDeleteShipmentCommandHandler creates a handler for shipment deletion.
func NewDeleteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	users ports.UserRepository,
	logger *slog.Logger,
) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		logger:     logger.With("component", "delete_shipment_handler"),
	}
}

// Handle processes the delete-shipment command.
func (h DeleteShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd DeleteShipmentCommand,
) result.Result[bool] {
	if err := cmd.Validate(); err != nil {
		return result.BadRequest[bool](err.Error())
	}

	requestor, err := h.users.GetByID(ctx, cmd.RequestorID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.NotFound[bool]("user not found")
	}
	if err != nil {
		return h.internal(ctx, "user lookup failed", err)
	}

	if !requestor.IsAdmin() {
		return result.Fail[bool]("only administrators can delete shipments", 403)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return h.internal(ctx, "transaction begin failed", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.ShipmentRepository().Delete(ctx, cmd.ShipmentID())
	if err != nil {
		return h.internal(ctx, "shipment deletion failed", err)
	}
	if !deleted {
		return result.NotFound[bool]("shipment not found")
	}

	if err = uow.Commit(ctx); err != nil {
		return h.internal(ctx, "transaction commit failed", err)
	}

	return result.OkWithMessage(true, "shipment deleted")
}

func (h DeleteShipmentCommandHandler) internal(ctx context.Context, msg string, err error) result.Result[bool] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[bool]("could not process shipping request")
}
