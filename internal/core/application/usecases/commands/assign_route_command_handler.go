package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/application/result"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// EventRouteAssigned is broadcast after a route and carrier are assigned.
const EventRouteAssigned = "shipment.assigned"

// AssignRouteCommandHandler orchestrates the route-assignment use case. The
// capacity gate runs on already-fetched values strictly before the
// assignment transaction. The transaction itself (shipment link + carrier
// availability clear, both conditional on affected rows) is the
// serialization point for concurrent claims on the same carrier: exactly one
// caller wins, the rest get a conflict result.
type AssignRouteCommandHandler struct {
	uowFactory  UoWFactory
	capacity    services.CapacityChecker
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

// NewAssignRouteCommandHandler creates a handler for route assignment.
func NewAssignRouteCommandHandler(
	uowFactory UoWFactory,
	capacity services.CapacityChecker,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) AssignRouteCommandHandler {
	return AssignRouteCommandHandler{
		uowFactory:  uowFactory,
		capacity:    capacity,
		broadcaster: broadcaster,
		logger:      logger.With("component", "assign_route_handler"),
	}
}

// Handle processes the assign-route command.
func (h AssignRouteCommandHandler) Handle(
	ctx context.Context,
	cmd AssignRouteCommand,
) result.Result[bool] {
	if err := cmd.Validate(); err != nil {
		return result.BadRequest[bool](err.Error())
	}

	uow := h.uowFactory.Create()
	shipmentRepo := uow.ShipmentRepository()
	routeRepo := uow.RouteRepository()

	aggregate, err := shipmentRepo.GetByID(ctx, cmd.ShipmentID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.NotFound[bool]("shipment not found")
	}
	if err != nil {
		return h.internal(ctx, "shipment lookup failed", err)
	}

	if aggregate.Status() != shipment.Pending {
		return result.BadRequest[bool]("shipment is not pending assignment")
	}

	assignee, err := routeRepo.FindCarrierByID(ctx, cmd.CarrierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.NotFound[bool]("carrier is not available")
	}
	if err != nil {
		return h.internal(ctx, "carrier lookup failed", err)
	}

	if !h.capacity.CanAccommodate(aggregate.PackageInfo().Weight, assignee.VehicleCapacity()) {
		return result.BadRequest[bool]("package exceeds the carrier capacity")
	}

	routes, err := routeRepo.FindAvailableRoutes(ctx)
	if err != nil {
		return h.internal(ctx, "route lookup failed", err)
	}
	if len(routes) == 0 {
		return result.NotFound[bool]("no available route found")
	}

	if err = uow.Begin(ctx); err != nil {
		return h.internal(ctx, "transaction begin failed", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assigned, err := uow.RouteRepository().AssignRouteToShipment(
		ctx, cmd.ShipmentID(), cmd.RouteID(), cmd.CarrierID())
	if err != nil {
		return h.internal(ctx, "assignment transaction failed", err)
	}
	if !assigned {
		return result.BadRequest[bool]("could not assign route to shipment")
	}

	if err = uow.Commit(ctx); err != nil {
		return h.internal(ctx, "transaction commit failed", err)
	}

	// separate transaction, mirroring the status-update store contract
	statusUoW := h.uowFactory.Create()
	if err = statusUoW.Begin(ctx); err != nil {
		return h.internal(ctx, "status transaction begin failed", err)
	}
	defer func() {
		_ = statusUoW.Rollback(ctx)
	}()

	if _, err = statusUoW.ShipmentRepository().UpdateStatus(
		ctx, cmd.ShipmentID(), shipment.Processing); err != nil {
		return h.internal(ctx, "status update failed", err)
	}
	if err = statusUoW.Commit(ctx); err != nil {
		return h.internal(ctx, "status transaction commit failed", err)
	}

	if err = h.broadcaster.Emit(ctx, EventRouteAssigned, map[string]any{
		"shipmentId": cmd.ShipmentID(),
		"routeId":    cmd.RouteID(),
		"carrierId":  cmd.CarrierID(),
	}); err != nil {
		h.logger.WarnContext(ctx, "assignment broadcast failed", "error", err)
	}

	return result.Ok(true)
}

func (h AssignRouteCommandHandler) internal(ctx context.Context, msg string, err error) result.Result[bool] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[bool]("could not process shipping request")
}
