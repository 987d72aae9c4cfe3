package commands_test

import (
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

func restoredShipment(t *testing.T, id int) *shipment.Shipment {
	t.Helper()
	now := time.Now()
	s, err := shipment.RestoreShipment(
		id, 42, testPackage(), testAddress(), testAddress(),
		shipment.Pending, "CO123456780001", now.Add(72*time.Hour), nil, nil, now, now,
	)
	require.NoError(t, err)
	return s
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateShipmentCommand(42, testPackage(), testAddress(), testAddress())
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetByID", ctx, 42).Return(&ports.User{ID: 42, Email: "laura@example.com", Role: "user"}, nil).Once()

	validator := new(MockAddressValidator)
	validator.On("Validate", ctx, testAddress()).Return(true, nil).Once()

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(restoredShipment(t, 10), nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(errors.New("no active transaction")).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("SendEmail", ctx, mock.MatchedBy(func(email ports.Email) bool {
		return email.To == "laura@example.com" && email.Subject == "Shipping order created"
	})).Return(nil).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Emit", ctx, commands.EventShipmentCreated, mock.Anything).Return(nil).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, users, validator, notifier, broadcaster, testLogger())
	res := h.Handle(ctx, cmd)

	assert.False(t, res.IsError)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, 10, res.Data.ID)
	assert.Regexp(t, regexp.MustCompile(`^CO\d{12}$`), res.Data.TrackingNumber)
	assert.Equal(t, "PENDING", res.Data.Status)
	assert.InDelta(t, 5.0, res.Data.Cost, 1e-9)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), res.Data.EstimatedDeliveryDate, time.Minute)

	users.AssertExpectations(t)
	validator.AssertExpectations(t)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	var cmd commands.CreateShipmentCommand // not constructed properly

	h := commands.NewCreateShipmentCommandHandler(
		new(MockShipmentUoWFactory), new(MockUserRepository), new(MockAddressValidator),
		new(MockNotifier), new(MockBroadcaster), testLogger())
	res := h.Handle(t.Context(), cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreateShipmentCommandHandler_Handle_UserNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(42, testPackage(), testAddress(), testAddress())

	users := new(MockUserRepository)
	users.On("GetByID", ctx, 42).Return(nil, errs.NewObjectNotFoundError("user", 42)).Once()

	h := commands.NewCreateShipmentCommandHandler(
		new(MockShipmentUoWFactory), users, new(MockAddressValidator),
		new(MockNotifier), new(MockBroadcaster), testLogger())
	res := h.Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "user not found", res.Message)
}

func TestCreateShipmentCommandHandler_Handle_InvalidDestination(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(42, testPackage(), testAddress(), testAddress())

	users := new(MockUserRepository)
	users.On("GetByID", ctx, 42).Return(&ports.User{ID: 42, Email: "laura@example.com"}, nil).Once()

	validator := new(MockAddressValidator)
	validator.On("Validate", ctx, testAddress()).Return(false, nil).Once()

	h := commands.NewCreateShipmentCommandHandler(
		new(MockShipmentUoWFactory), users, validator,
		new(MockNotifier), new(MockBroadcaster), testLogger())
	res := h.Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "destination address is not valid", res.Message)
}

func TestCreateShipmentCommandHandler_Handle_ValidatorError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(42, testPackage(), testAddress(), testAddress())

	users := new(MockUserRepository)
	users.On("GetByID", ctx, 42).Return(&ports.User{ID: 42, Email: "laura@example.com"}, nil).Once()

	validator := new(MockAddressValidator)
	validator.On("Validate", ctx, testAddress()).Return(false, errors.New("validation service down")).Once()

	h := commands.NewCreateShipmentCommandHandler(
		new(MockShipmentUoWFactory), users, validator,
		new(MockNotifier), new(MockBroadcaster), testLogger())
	res := h.Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "could not process shipping request", res.Message)
}

func TestCreateShipmentCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(42, testPackage(), testAddress(), testAddress())

	users := new(MockUserRepository)
	users.On("GetByID", ctx, 42).Return(&ports.User{ID: 42, Email: "laura@example.com"}, nil).Once()

	validator := new(MockAddressValidator)
	validator.On("Validate", ctx, testAddress()).Return(true, nil).Once()

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(
		factory, users, validator, new(MockNotifier), new(MockBroadcaster), testLogger())
	res := h.Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewCreateShipmentCommand(42, testPackage(), testAddress(), testAddress())

	users := new(MockUserRepository)
	users.On("GetByID", ctx, 42).Return(&ports.User{ID: 42, Email: "laura@example.com"}, nil).Once()

	validator := new(MockAddressValidator)
	validator.On("Validate", ctx, testAddress()).Return(true, nil).Once()

	repo := new(MockShipmentRepository)
	repo.On("Add", mock.Anything, mock.Anything).Return(restoredShipment(t, 11), nil).Once()

	uow := new(MockShipmentUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(errors.New("no active transaction")).Once()

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("SendEmail", ctx, mock.Anything).Return(errors.New("queue unreachable")).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Emit", ctx, commands.EventShipmentCreated, mock.Anything).Return(errors.New("broker down")).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, users, validator, notifier, broadcaster, testLogger())
	res := h.Handle(ctx, cmd)

	assert.False(t, res.IsError)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	notifier.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}
