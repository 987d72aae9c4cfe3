package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/application/result"
	"shipping/internal/core/ports"
)

// EventStatusUpdated is broadcast after a shipment changes status.
const EventStatusUpdated = "shipment.status_updated"

// UpdateShipmentStatusCommandHandler applies a status change through the
// shipment store. The store runs the update and the carrier release as one
// transaction; a false return means the shipment row did not exist.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

// NewUpdateShipmentStatusCommandHandler creates a handler for status updates.
func NewUpdateShipmentStatusCommandHandler(
	uowFactory ShipmentUoWFactory,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory:  uowFactory,
		broadcaster: broadcaster,
		logger:      logger.With("component", "update_status_handler"),
	}
}

// Handle processes the update-status command.
func (h UpdateShipmentStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateShipmentStatusCommand,
) result.Result[bool] {
	if err := cmd.Validate(); err != nil {
		return result.BadRequest[bool](err.Error())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return h.internal(ctx, "transaction begin failed", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	updated, err := uow.ShipmentRepository().UpdateStatus(ctx, cmd.ShipmentID(), cmd.Status())
	if err != nil {
		return h.internal(ctx, "status update failed", err)
	}
	if !updated {
		return result.NotFound[bool]("shipment not found")
	}

	if err = uow.Commit(ctx); err != nil {
		return h.internal(ctx, "transaction commit failed", err)
	}

	if err = h.broadcaster.Emit(ctx, EventStatusUpdated, map[string]any{
		"shipmentId": cmd.ShipmentID(),
		"status":     cmd.Status().String(),
	}); err != nil {
		h.logger.WarnContext(ctx, "status broadcast failed", "error", err)
	}

	return result.OkWithMessage(true, "shipment status updated")
}

func (h UpdateShipmentStatusCommandHandler) internal(
	ctx context.Context,
	msg string,
	err error,
) result.Result[bool] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[bool]("could not process shipping request")
}
