// Package http exposes the shipping use cases over REST. Handlers translate
// requests into commands and queries and render the uniform result envelope;
// the envelope's status code becomes the HTTP status. Authentication happens
// upstream: the caller's identity arrives as the X-User-ID header.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shipping/internal/core/application/result"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/shipment"
)

// userIDHeader carries the authenticated caller's id, set by the gateway.
const userIDHeader = "X-User-ID"

// Server wires the HTTP routes to the command and query handlers.
type Server struct {
	createShipmentHandler commands.CreateShipmentCommandHandler
	assignRouteHandler    commands.AssignRouteCommandHandler
	updateStatusHandler   commands.UpdateShipmentStatusCommandHandler
	deleteShipmentHandler commands.DeleteShipmentCommandHandler
	addCarrierHandler     commands.AddCarrierCommandHandler

	getShipmentsHandler       queries.GetShipmentsByUserQueryHandler
	trackingHandler           queries.GetShipmentByTrackingQueryHandler
	getAllRoutesHandler       queries.GetAllRoutesQueryHandler
	getAllCarriersHandler     queries.GetAllCarriersQueryHandler
	carrierPerformanceHandler queries.CarrierPerformanceQueryHandler
	routePerformanceHandler   queries.RoutePerformanceQueryHandler
	monthlyPerformanceHandler queries.MonthlyPerformanceQueryHandler
}

// NewServer creates the HTTP server facade over the application handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	assignRouteHandler commands.AssignRouteCommandHandler,
	updateStatusHandler commands.UpdateShipmentStatusCommandHandler,
	deleteShipmentHandler commands.DeleteShipmentCommandHandler,
	addCarrierHandler commands.AddCarrierCommandHandler,
	getShipmentsHandler queries.GetShipmentsByUserQueryHandler,
	trackingHandler queries.GetShipmentByTrackingQueryHandler,
	getAllRoutesHandler queries.GetAllRoutesQueryHandler,
	getAllCarriersHandler queries.GetAllCarriersQueryHandler,
	carrierPerformanceHandler queries.CarrierPerformanceQueryHandler,
	routePerformanceHandler queries.RoutePerformanceQueryHandler,
	monthlyPerformanceHandler queries.MonthlyPerformanceQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:     createShipmentHandler,
		assignRouteHandler:        assignRouteHandler,
		updateStatusHandler:       updateStatusHandler,
		deleteShipmentHandler:     deleteShipmentHandler,
		addCarrierHandler:         addCarrierHandler,
		getShipmentsHandler:       getShipmentsHandler,
		trackingHandler:           trackingHandler,
		getAllRoutesHandler:       getAllRoutesHandler,
		getAllCarriersHandler:     getAllCarriersHandler,
		carrierPerformanceHandler: carrierPerformanceHandler,
		routePerformanceHandler:   routePerformanceHandler,
		monthlyPerformanceHandler: monthlyPerformanceHandler,
	}
}

// RegisterRoutes attaches all routes and the metrics middleware to the echo
// instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(Instrument())

	api := e.Group("/api/v1")
	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetShipments)
	api.GET("/shipments/track", s.TrackShipment)
	api.PATCH("/shipments/status", s.UpdateShipmentStatus)
	api.POST("/shipments/assign", s.AssignRoute)
	api.DELETE("/shipments/:id", s.DeleteShipment)
	api.GET("/routes", s.GetRoutes)
	api.GET("/carriers", s.GetCarriers)
	api.POST("/carriers", s.CreateCarrier)
	api.GET("/metrics/carriers", s.CarrierMetrics)
	api.GET("/metrics/routes", s.RouteMetrics)
	api.GET("/metrics/monthly", s.MonthlyMetrics)

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// respond renders the result envelope; its status code is the HTTP status.
func respond[T any](ctx echo.Context, res result.Result[T]) error {
	return ctx.JSON(res.StatusCode, res)
}

// callerID extracts the authenticated user's id from the request headers.
func callerID(ctx echo.Context) (int, bool) {
	id, err := strconv.Atoi(ctx.Request().Header.Get(userIDHeader))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

type createShipmentRequest struct {
	PackageInfo        shipment.PackageInfo `json:"packageInfo"`
	ExitAddress        shipment.Address     `json:"exitAddress"`
	DestinationAddress shipment.Address     `json:"destinationAddress"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	userID, ok := callerID(ctx)
	if !ok {
		return respond(ctx, result.BadRequest[commands.CreateShipmentResponse]("missing or invalid user id"))
	}

	var req createShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return respond(ctx, result.BadRequest[commands.CreateShipmentResponse]("invalid request body"))
	}

	cmd, err := commands.NewCreateShipmentCommand(userID, req.PackageInfo, req.ExitAddress, req.DestinationAddress)
	if err != nil {
		return respond(ctx, result.BadRequest[commands.CreateShipmentResponse](err.Error()))
	}

	return respond(ctx, s.createShipmentHandler.Handle(ctx.Request().Context(), cmd))
}

// GetShipments handles GET /api/v1/shipments with optional filters.
func (s *Server) GetShipments(ctx echo.Context) error {
	userID, ok := callerID(ctx)
	if !ok {
		return respond(ctx, result.BadRequest[[]queries.ShipmentView]("missing or invalid user id"))
	}

	filter := queries.Filter{
		Search: ctx.QueryParam("search"),
	}

	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := shipment.ParseStatus(raw)
		if err != nil {
			return respond(ctx, result.BadRequest[[]queries.ShipmentView](err.Error()))
		}
		filter.Status = status
	}
	if raw := ctx.QueryParam("routeId"); raw != "" {
		filter.RouteID, _ = strconv.Atoi(raw)
	}
	if raw := ctx.QueryParam("carrierId"); raw != "" {
		filter.CarrierID, _ = strconv.Atoi(raw)
	}
	if raw := ctx.QueryParam("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respond(ctx, result.BadRequest[[]queries.ShipmentView]("invalid start date"))
		}
		filter.StartDate = t
	}
	if raw := ctx.QueryParam("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return respond(ctx, result.BadRequest[[]queries.ShipmentView]("invalid end date"))
		}
		filter.EndDate = t
	}
	if raw := ctx.QueryParam("page"); raw != "" {
		filter.Page, _ = strconv.Atoi(raw)
	}
	if raw := ctx.QueryParam("pageSize"); raw != "" {
		filter.PageSize, _ = strconv.Atoi(raw)
	}

	query, err := queries.NewGetShipmentsByUserQuery(userID, filter)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.ShipmentView](err.Error()))
	}

	return respond(ctx, s.getShipmentsHandler.Handle(ctx.Request().Context(), query))
}

// TrackShipment handles GET /api/v1/shipments/track.
func (s *Server) TrackShipment(ctx echo.Context) error {
	query, err := queries.NewGetShipmentByTrackingQuery(ctx.QueryParam("trackingNumber"))
	if err != nil {
		return respond(ctx, result.BadRequest[queries.ShipmentView](err.Error()))
	}

	return respond(ctx, s.trackingHandler.Handle(ctx.Request().Context(), query))
}

type updateStatusRequest struct {
	ShipmentID int    `json:"shipmentId"`
	Status     string `json:"status"`
}

// UpdateShipmentStatus handles PATCH /api/v1/shipments/status.
func (s *Server) UpdateShipmentStatus(ctx echo.Context) error {
	var req updateStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return respond(ctx, result.BadRequest[bool]("invalid request body"))
	}

	status, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return respond(ctx, result.BadRequest[bool](err.Error()))
	}

	cmd, err := commands.NewUpdateShipmentStatusCommand(req.ShipmentID, status)
	if err != nil {
		return respond(ctx, result.BadRequest[bool](err.Error()))
	}

	return respond(ctx, s.updateStatusHandler.Handle(ctx.Request().Context(), cmd))
}

type assignRouteRequest struct {
	ShipmentID int `json:"shipmentId"`
	RouteID    int `json:"routeId"`
	CarrierID  int `json:"carrierId"`
}

// AssignRoute handles POST /api/v1/shipments/assign.
func (s *Server) AssignRoute(ctx echo.Context) error {
	var req assignRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return respond(ctx, result.BadRequest[bool]("invalid request body"))
	}

	cmd, err := commands.NewAssignRouteCommand(req.ShipmentID, req.RouteID, req.CarrierID)
	if err != nil {
		return respond(ctx, result.BadRequest[bool](err.Error()))
	}

	return respond(ctx, s.assignRouteHandler.Handle(ctx.Request().Context(), cmd))
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	userID, ok := callerID(ctx)
	if !ok {
		return respond(ctx, result.BadRequest[bool]("missing or invalid user id"))
	}

	shipmentID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return respond(ctx, result.BadRequest[bool]("invalid shipment id"))
	}

	cmd, err := commands.NewDeleteShipmentCommand(shipmentID, userID)
	if err != nil {
		return respond(ctx, result.BadRequest[bool](err.Error()))
	}

	return respond(ctx, s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd))
}

type createCarrierRequest struct {
	Name            string  `json:"name"`
	VehicleCapacity float64 `json:"vehicleCapacity"`
}

// CreateCarrier handles POST /api/v1/carriers.
func (s *Server) CreateCarrier(ctx echo.Context) error {
	userID, ok := callerID(ctx)
	if !ok {
		return respond(ctx, result.BadRequest[commands.AddCarrierResponse]("missing or invalid user id"))
	}

	var req createCarrierRequest
	if err := ctx.Bind(&req); err != nil {
		return respond(ctx, result.BadRequest[commands.AddCarrierResponse]("invalid request body"))
	}

	cmd, err := commands.NewAddCarrierCommand(req.Name, req.VehicleCapacity, userID)
	if err != nil {
		return respond(ctx, result.BadRequest[commands.AddCarrierResponse](err.Error()))
	}

	return respond(ctx, s.addCarrierHandler.Handle(ctx.Request().Context(), cmd))
}

// GetRoutes handles GET /api/v1/routes.
func (s *Server) GetRoutes(ctx echo.Context) error {
	options, err := s.getAllRoutesHandler.Handle(ctx.Request().Context(), queries.NewGetAllRoutesQuery())
	if err != nil {
		return respond(ctx, result.Internal[[]queries.Option]("could not retrieve routes"))
	}
	return respond(ctx, result.Ok(options))
}

// GetCarriers handles GET /api/v1/carriers.
func (s *Server) GetCarriers(ctx echo.Context) error {
	options, err := s.getAllCarriersHandler.Handle(ctx.Request().Context(), queries.NewGetAllCarriersQuery())
	if err != nil {
		return respond(ctx, result.Internal[[]queries.Option]("could not retrieve carriers"))
	}
	return respond(ctx, result.Ok(options))
}

// metricsWindow parses the startDate/endDate query params shared by the
// metrics routes.
func metricsWindow(ctx echo.Context) (time.Time, time.Time, error) {
	startDate, err := parseDate(ctx.QueryParam("startDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(ctx.QueryParam("endDate"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}

// CarrierMetrics handles GET /api/v1/metrics/carriers.
func (s *Server) CarrierMetrics(ctx echo.Context) error {
	startDate, endDate, err := metricsWindow(ctx)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.CarrierPerformance]("invalid reporting window"))
	}

	query, err := queries.NewCarrierPerformanceQuery(startDate, endDate)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.CarrierPerformance](err.Error()))
	}

	metrics, err := s.carrierPerformanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respond(ctx, result.Internal[[]queries.CarrierPerformance]("could not compute carrier metrics"))
	}
	return respond(ctx, result.Ok(metrics))
}

// RouteMetrics handles GET /api/v1/metrics/routes.
func (s *Server) RouteMetrics(ctx echo.Context) error {
	startDate, endDate, err := metricsWindow(ctx)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.RoutePerformance]("invalid reporting window"))
	}

	query, err := queries.NewRoutePerformanceQuery(startDate, endDate)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.RoutePerformance](err.Error()))
	}

	metrics, err := s.routePerformanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respond(ctx, result.Internal[[]queries.RoutePerformance]("could not compute route metrics"))
	}
	return respond(ctx, result.Ok(metrics))
}

// MonthlyMetrics handles GET /api/v1/metrics/monthly.
func (s *Server) MonthlyMetrics(ctx echo.Context) error {
	startDate, endDate, err := metricsWindow(ctx)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.MonthlyPerformance]("invalid reporting window"))
	}

	query, err := queries.NewMonthlyPerformanceQuery(startDate, endDate)
	if err != nil {
		return respond(ctx, result.BadRequest[[]queries.MonthlyPerformance](err.Error()))
	}

	metrics, err := s.monthlyPerformanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respond(ctx, result.Internal[[]queries.MonthlyPerformance]("could not compute monthly metrics"))
	}
	return respond(ctx, result.Ok(metrics))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
