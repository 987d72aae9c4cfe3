package commands_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/carrier"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/pkg/errs"
)

func shipmentInStatus(t *testing.T, id int, status shipment.Status) *shipment.Shipment {
	t.Helper()
	now := time.Now()
	s, err := shipment.RestoreShipment(
		id, 42, testPackage(), testAddress(), testAddress(),
		status, "CO123456780001", now.Add(72*time.Hour), nil, nil, now, now,
	)
	require.NoError(t, err)
	return s
}

func availableCarrier(t *testing.T, id int, capacity float64) *carrier.Carrier {
	t.Helper()
	c, err := carrier.RestoreCarrier(id, "Transportes Andinos", capacity, true)
	require.NoError(t, err)
	return c
}

func availableRoutes(t *testing.T) []*route.Route {
	t.Helper()
	r, err := route.RestoreRoute(3, "Bogota - Medellin", 120, true)
	require.NoError(t, err)
	return []*route.Route{r}
}

func newAssignHandler(factory *MockUoWFactory, broadcaster *MockBroadcaster) commands.AssignRouteCommandHandler {
	return commands.NewAssignRouteCommandHandler(
		factory, services.NewCapacityChecker(), broadcaster, testLogger())
}

func TestAssignRouteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAssignRouteCommand(15, 3, 7)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 15).Return(shipmentInStatus(t, 15, shipment.Pending), nil).Once()

	routeRepo := new(MockRouteRepository)
	routeRepo.On("FindCarrierByID", ctx, 7).Return(availableCarrier(t, 7, 450), nil).Once()
	routeRepo.On("FindAvailableRoutes", ctx).Return(availableRoutes(t), nil).Once()
	routeRepo.On("AssignRouteToShipment", ctx, 15, 3, 7).Return(true, nil).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(routeRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(errors.New("no active transaction")).Once()

	statusRepo := new(MockShipmentRepository)
	statusRepo.On("UpdateStatus", ctx, 15, shipment.Processing).Return(true, nil).Once()

	statusUoW := new(MockUoW)
	statusUoW.On("Begin", ctx).Return(nil).Once()
	statusUoW.On("ShipmentRepository").Return(statusRepo)
	statusUoW.On("Commit", ctx).Return(nil).Once()
	statusUoW.On("Rollback", ctx).Return(errors.New("no active transaction")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(statusUoW).Once()

	broadcaster := new(MockBroadcaster)
	broadcaster.On("Emit", ctx, commands.EventRouteAssigned, mock.Anything).Return(nil).Once()

	res := newAssignHandler(factory, broadcaster).Handle(ctx, cmd)

	assert.False(t, res.IsError)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Data)

	shipmentRepo.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
	statusRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	statusUoW.AssertExpectations(t)
	broadcaster.AssertExpectations(t)
}

func TestAssignRouteCommandHandler_Handle_ShipmentNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignRouteCommand(99, 3, 7)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 99).Return(nil, errs.NewObjectNotFoundError("shipment", 99)).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(new(MockRouteRepository))

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res := newAssignHandler(factory, new(MockBroadcaster)).Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "shipment not found", res.Message)
}

func TestAssignRouteCommandHandler_Handle_ShipmentNotPending(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignRouteCommand(15, 3, 7)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 15).Return(shipmentInStatus(t, 15, shipment.Shipping), nil).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(new(MockRouteRepository))

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res := newAssignHandler(factory, new(MockBroadcaster)).Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "shipment is not pending assignment", res.Message)
}

func TestAssignRouteCommandHandler_Handle_CarrierNotAvailable(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignRouteCommand(15, 3, 7)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 15).Return(shipmentInStatus(t, 15, shipment.Pending), nil).Once()

	routeRepo := new(MockRouteRepository)
	routeRepo.On("FindCarrierByID", ctx, 7).Return(nil, errs.NewObjectNotFoundError("carrier", 7)).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(routeRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res := newAssignHandler(factory, new(MockBroadcaster)).Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "carrier is not available", res.Message)
}

func TestAssignRouteCommandHandler_Handle_PackageExceedsCapacity(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignRouteCommand(15, 3, 7)

	heavy := testPackage()
	heavy.Weight = 500
	now := time.Now()
	s, err := shipment.RestoreShipment(
		15, 42, heavy, testAddress(), testAddress(),
		shipment.Pending, "CO123456780001", now.Add(72*time.Hour), nil, nil, now, now,
	)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 15).Return(s, nil).Once()

	routeRepo := new(MockRouteRepository)
	routeRepo.On("FindCarrierByID", ctx, 7).Return(availableCarrier(t, 7, 400), nil).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(routeRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res := newAssignHandler(factory, new(MockBroadcaster)).Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "package exceeds the carrier capacity", res.Message)
}

func TestAssignRouteCommandHandler_Handle_NoAvailableRoute(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignRouteCommand(15, 3, 7)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 15).Return(shipmentInStatus(t, 15, shipment.Pending), nil).Once()

	routeRepo := new(MockRouteRepository)
	routeRepo.On("FindCarrierByID", ctx, 7).Return(availableCarrier(t, 7, 450), nil).Once()
	routeRepo.On("FindAvailableRoutes", ctx).Return([]*route.Route{}, nil).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(routeRepo)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res := newAssignHandler(factory, new(MockBroadcaster)).Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "no available route found", res.Message)
}

func TestAssignRouteCommandHandler_Handle_CarrierAlreadyClaimed(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewAssignRouteCommand(15, 3, 7)

	shipmentRepo := new(MockShipmentRepository)
	shipmentRepo.On("GetByID", ctx, 15).Return(shipmentInStatus(t, 15, shipment.Pending), nil).Once()

	routeRepo := new(MockRouteRepository)
	routeRepo.On("FindCarrierByID", ctx, 7).Return(availableCarrier(t, 7, 450), nil).Once()
	routeRepo.On("FindAvailableRoutes", ctx).Return(availableRoutes(t), nil).Once()
	routeRepo.On("AssignRouteToShipment", ctx, 15, 3, 7).Return(false, nil).Once()

	uow := new(MockUoW)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("RouteRepository").Return(routeRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	res := newAssignHandler(factory, new(MockBroadcaster)).Handle(ctx, cmd)

	assert.True(t, res.IsError)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "could not assign route to shipment", res.Message)
	uow.AssertExpectations(t)
}
