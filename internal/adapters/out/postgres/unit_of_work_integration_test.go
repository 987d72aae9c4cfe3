package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgresadapter "shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/routerepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite provides integration tests for the
// GORM-based unit of work against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgresadapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{}, &routerepo.RouteDTO{}, &routerepo.CarrierDTO{}))

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, routes, carriers RESTART IDENTITY").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create_ReturnsIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.ShipmentRepository())
	suite.NotNil(uow1.RouteRepository())
	suite.NotNil(uow2.ShipmentRepository())
	suite.NotNil(uow2.RouteRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin should be a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitAndRollbackWithoutTransaction_ReturnError() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	added, err := uow.ShipmentRepository().Add(ctx, suite.createTestShipment())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := suite.factory.Create().ShipmentRepository().GetByID(ctx, added.ID())
	suite.Require().NoError(err)
	suite.Equal(added.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	added, err := uow.ShipmentRepository().Add(ctx, suite.createTestShipment())
	suite.Require().NoError(err)

	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().ShipmentRepository().GetByID(ctx, added.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoriesWithoutTransaction_AutoCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()

	added, err := uow.ShipmentRepository().Add(ctx, suite.createTestShipment())
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().ShipmentRepository().GetByID(ctx, added.ID())
	suite.Require().NoError(err)
	suite.Equal(added.ID(), retrieved.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentAndReleaseAcrossRepositories() {
	ctx := context.Background()

	suite.Require().NoError(suite.db.Exec(
		`INSERT INTO routes (id, name, capacity, available) VALUES (3, 'Bogota - Medellin', 120, true)`).Error)
	suite.Require().NoError(suite.db.Exec(
		`INSERT INTO carriers (id, name, vehicle_capacity, available) VALUES (7, 'Transportes Andinos', 450, true)`).Error)

	setupUow := suite.factory.Create()
	added, err := setupUow.ShipmentRepository().Add(ctx, suite.createTestShipment())
	suite.Require().NoError(err)

	// claim the carrier inside a transaction
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	assigned, err := uow.RouteRepository().AssignRouteToShipment(ctx, added.ID(), 3, 7)
	suite.Require().NoError(err)
	suite.True(assigned)

	suite.Require().NoError(uow.Commit(ctx))

	_, err = suite.factory.Create().RouteRepository().FindCarrierByID(ctx, 7)
	suite.ErrorIs(err, errs.ErrObjectNotFound, "claimed carrier should look missing to new assignments")

	// a status change releases the carrier again
	statusUow := suite.factory.Create()
	suite.Require().NoError(statusUow.Begin(ctx))

	updated, err := statusUow.ShipmentRepository().UpdateStatus(ctx, added.ID(), shipment.Delivered)
	suite.Require().NoError(err)
	suite.True(updated)

	suite.Require().NoError(statusUow.Commit(ctx))

	released, err := suite.factory.Create().RouteRepository().FindCarrierByID(ctx, 7)
	suite.Require().NoError(err)
	suite.True(released.IsAvailable())
}

// createTestShipment builds a pending shipment ready for persistence.
func (suite *UnitOfWorkIntegrationTestSuite) createTestShipment() *shipment.Shipment {
	aggregate, err := shipment.NewShipment(42, shipment.PackageInfo{
		Weight:      2,
		Height:      10,
		Width:       10,
		Length:      10,
		ProductType: "electronics",
	}, testAddress(), testAddress())
	suite.Require().NoError(err)
	aggregate.GenerateTrackingNumber()
	aggregate.ScheduleDelivery(time.Now().Add(72 * time.Hour))
	return aggregate
}

func testAddress() shipment.Address {
	return shipment.Address{
		Street:         "Calle 26 # 59-41",
		City:           "Bogota",
		State:          "Cundinamarca",
		PostalCode:     "110911",
		Country:        "Colombia",
		RecipientName:  "Laura Gomez",
		RecipientPhone: "+57 300 123 4567",
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
