package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shipping/cmd"
	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres/routerepo"
	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/postgres/userrepo"
	"shipping/internal/adapters/out/rabbitmq"
)

func main() {
	configs := getConfigs()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := mustOpenDB(configs, logger)

	notifier, err := rabbitmq.NewEmailQueueNotifier(configs.RabbitMQURL)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer notifier.Close()

	broadcaster := kafka.NewBroadcaster(configs.KafkaHost, configs.KafkaEventsTopic)
	defer broadcaster.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, broadcaster, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		RabbitMQURL:      goDotEnvVariable("RABBITMQ_URL"),
		KafkaHost:        goDotEnvVariable("KAFKA_HOST"),
		KafkaEventsTopic: goDotEnvVariable("KAFKA_EVENTS_TOPIC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = gormDB.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&routerepo.RouteDTO{},
		&routerepo.CarrierDTO{},
		&userrepo.UserDTO{},
	); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpin.NewServer(
		app.CreateCreateShipmentCommandHandler(),
		app.CreateAssignRouteCommandHandler(),
		app.CreateUpdateShipmentStatusCommandHandler(),
		app.CreateDeleteShipmentCommandHandler(),
		app.CreateAddCarrierCommandHandler(),
		app.CreateGetShipmentsByUserQueryHandler(),
		app.CreateGetShipmentByTrackingQueryHandler(),
		app.CreateGetAllRoutesQueryHandler(),
		app.CreateGetAllCarriersQueryHandler(),
		app.CreateCarrierPerformanceQueryHandler(),
		app.CreateRoutePerformanceQueryHandler(),
		app.CreateMonthlyPerformanceQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
