package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/userrepo"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	users       ports.UserRepository
	notifier    ports.Notifier
	broadcaster ports.Broadcaster
	logger      *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	notifier ports.Notifier,
	broadcaster ports.Broadcaster,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		users:       userrepo.NewGormUserRepository(gormDB),
		notifier:    notifier,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(
		f, c.users, services.NewStandardAddressValidator(), c.notifier, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateAssignRouteCommandHandler() commands.AssignRouteCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignRouteCommandHandler(
		f, services.NewCapacityChecker(), c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateUpdateShipmentStatusCommandHandler() commands.UpdateShipmentStatusCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateShipmentStatusCommandHandler(f, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteShipmentCommandHandler(f, c.users, c.logger)
}

func (c *CompositionRoot) CreateAddCarrierCommandHandler() commands.AddCarrierCommandHandler {
	var f commands.RouteUoWFactory = FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCarrierCommandHandler(f, c.users, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentsByUserQueryHandler() queries.GetShipmentsByUserQueryHandler {
	return queries.NewGetShipmentsByUserQueryHandler(c.gormDB, c.users, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentByTrackingQueryHandler() queries.GetShipmentByTrackingQueryHandler {
	return queries.NewGetShipmentByTrackingQueryHandler(c.gormDB, c.logger)
}

func (c *CompositionRoot) CreateGetAllRoutesQueryHandler() queries.GetAllRoutesQueryHandler {
	return queries.NewGetAllRoutesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCarriersQueryHandler() queries.GetAllCarriersQueryHandler {
	return queries.NewGetAllCarriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCarrierPerformanceQueryHandler() queries.CarrierPerformanceQueryHandler {
	return queries.NewCarrierPerformanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRoutePerformanceQueryHandler() queries.RoutePerformanceQueryHandler {
	return queries.NewRoutePerformanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateMonthlyPerformanceQueryHandler() queries.MonthlyPerformanceQueryHandler {
	return queries.NewMonthlyPerformanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCarrierPerformanceQueryHandler(), c.logger)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
