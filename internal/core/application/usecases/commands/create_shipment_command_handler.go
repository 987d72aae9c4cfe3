package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/application/result"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// deliveryEstimate is added to the creation time to produce the estimated
// delivery date.
const deliveryEstimate = 3 * 24 * time.Hour

// EventShipmentCreated is broadcast after a shipment is persisted.
const EventShipmentCreated = "shipment.created"

// CreateShipmentResponse is the payload returned on successful creation.
type CreateShipmentResponse struct {
	ID                    int       `json:"id"`
	TrackingNumber        string    `json:"trackingNumber"`
	Status                string    `json:"status"`
	EstimatedDeliveryDate time.Time `json:"estimatedDeliveryDate"`
	Cost                  float64   `json:"cost"`
}

// CreateShipmentCommandHandler orchestrates shipment creation: owner lookup,
// address validation, entity construction, cost and tracking-number
// derivation, transactional persistence, then best-effort notification and
// broadcast. Business failures come back inside the result envelope; only
// the envelope's generic 500 represents unexpected errors, which are logged
// here and never surfaced verbatim.
type CreateShipmentCommandHandler struct {
	uowFactory       ShipmentUoWFactory
	users            ports.UserRepository
	addressValidator ports.AddressValidator
	notifier         ports.Notifier
	broadcaster      ports.Broadcaster
	logger           *slog.Logger
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	users ports.UserRepository,
	addressValidator ports.AddressValidator,
	notifier ports.Notifier,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory:       uowFactory,
		users:            users,
		addressValidator: addressValidator,
		notifier:         notifier,
		broadcaster:      broadcaster,
		logger:           logger.With("component", "create_shipment_handler"),
	}
}

// Handle processes the create-shipment command.
func (h CreateShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateShipmentCommand,
) result.Result[CreateShipmentResponse] {
	if err := cmd.Validate(); err != nil {
		return result.BadRequest[CreateShipmentResponse](err.Error())
	}

	user, err := h.users.GetByID(ctx, cmd.UserID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return result.NotFound[CreateShipmentResponse]("user not found")
	}
	if err != nil {
		return h.internal(ctx, "user lookup failed", err)
	}

	valid, err := h.addressValidator.Validate(ctx, cmd.DestinationAddress())
	if err != nil {
		return h.internal(ctx, "address validation failed", err)
	}
	if !valid {
		return result.BadRequest[CreateShipmentResponse]("destination address is not valid")
	}

	aggregate, err := shipment.NewShipment(
		cmd.UserID(),
		cmd.PackageInfo(),
		cmd.ExitAddress(),
		cmd.DestinationAddress(),
	)
	if err != nil {
		// defense in depth: the entity re-applies the address invariant
		return result.BadRequest[CreateShipmentResponse]("destination address is incomplete or invalid")
	}

	trackingNumber := aggregate.GenerateTrackingNumber()
	cost := aggregate.ShippingCost()
	estimatedDelivery := time.Now().Add(deliveryEstimate)
	aggregate.ScheduleDelivery(estimatedDelivery)

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return h.internal(ctx, "transaction begin failed", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	created, err := uow.ShipmentRepository().Add(ctx, aggregate)
	if err != nil {
		return h.internal(ctx, "shipment persistence failed", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return h.internal(ctx, "transaction commit failed", err)
	}

	// outbound calls stay strictly after the commit; neither may fail the
	// use case
	if err = h.notifier.SendEmail(ctx, ports.Email{
		To:      user.Email,
		Subject: "Shipping order created",
		Content: fmt.Sprintf("Your shipping order was created. Tracking number: %s", trackingNumber),
	}); err != nil {
		h.logger.WarnContext(ctx, "creation notification failed", "error", err)
	}

	if err = h.broadcaster.Emit(ctx, EventShipmentCreated, map[string]any{
		"id":             created.ID(),
		"trackingNumber": trackingNumber,
	}); err != nil {
		h.logger.WarnContext(ctx, "creation broadcast failed", "error", err)
	}

	return result.OkWithMessage(CreateShipmentResponse{
		ID:                    created.ID(),
		TrackingNumber:        trackingNumber,
		Status:                shipment.Pending.String(),
		EstimatedDeliveryDate: estimatedDelivery,
		Cost:                  cost,
	}, "shipping order created")
}

func (h CreateShipmentCommandHandler) internal(
	ctx context.Context,
	msg string,
	err error,
) result.Result[CreateShipmentResponse] {
	h.logger.ErrorContext(ctx, msg, "error", err)
	return result.Internal[CreateShipmentResponse]("could not process shipping request")
}
