package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mashaweer/mashaweer/internal/pkg/config"
	"github.com/mashaweer/mashaweer/internal/pkg/database"
	"github.com/mashaweer/mashaweer/internal/pkg/health"
	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	"github.com/mashaweer/mashaweer/internal/pkg/middleware"
	nrpkg "github.com/mashaweer/mashaweer/internal/pkg/newrelic"
	"github.com/mashaweer/mashaweer/internal/pkg/server"
	"github.com/mashaweer/mashaweer/services/drivers/gateway"
	"github.com/mashaweer/mashaweer/services/drivers/handler"
	httpHandler "github.com/mashaweer/mashaweer/services/drivers/handler/http"
	wsHandler "github.com/mashaweer/mashaweer/services/drivers/handler/websocket"
	"github.com/mashaweer/mashaweer/services/drivers/repository"
	"github.com/mashaweer/mashaweer/services/drivers/usecase"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"go.uber.org/zap"
)

func main() {
	appName := "drivers-service"
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/drivers.env"
	}
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	// Wait for New Relic connection before proceeding
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		} else {
			log.Println("New Relic connection established")
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer postgresClient.Close()

	if configs.Database.AutoMigrate {
		if err := database.MigrateUp(configs.Database); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize event publisher
	publisher, stopPublisher, err := gateway.NewEventPublisher(configs)
	if err != nil {
		zapLogger.Fatal("Failed to connect to event broker",
			zap.String("broker", configs.Events.Broker),
			zap.Error(err))
	}

	// Initialize repositories
	driverRepo := repository.NewDriverRepo(configs, postgresClient.GetDB())
	cacheRepo := repository.NewCacheRepo(configs, redisClient)

	// Initialize gateways
	driverGW := gateway.NewEventGW(publisher)
	photoStorage := gateway.NewPhotoStorage(configs)
	otpGW, err := gateway.NewOTPGateway(configs, cacheRepo)
	if err != nil {
		zapLogger.Fatal("Failed to configure OTP provider", zap.Error(err))
	}

	geocoder := gateway.NewGeocoder(configs)
	if geocoder == nil {
		zapLogger.Info("Place search disabled, GEOCODING_TOKEN is not set")
	}

	// Initialize UseCase
	driverUC := usecase.NewDriverUC(driverRepo, cacheRepo, cacheRepo, driverGW, photoStorage, otpGW, geocoder, configs)

	// Handlers for HTTP
	driverHandler := httpHandler.NewDriverHandler(driverUC)
	registrationHandler := httpHandler.NewRegistrationHandler(driverUC)
	sessionHandler := httpHandler.NewSessionHandler(driverUC)

	// Handlers for WebSocket
	locationHandler := wsHandler.NewLocationHandler(driverUC)
	mapHandler := wsHandler.NewMapHandler(driverUC)

	Handler := handler.NewHandler(
		driverHandler,
		registrationHandler,
		sessionHandler,
		locationHandler,
		mapHandler,
		redisClient.GetClient(),
		configs,
	)

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Add middlewares
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	health.RegisterHealthEndpoints(e, appName, map[string]health.Pinger{
		"postgres": postgresClient,
		"redis":    redisClient,
	})

	// Register service routes
	Handler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger,
		configs.Server.Host,
		configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second,
	)
	srv.OnShutdown(func(context.Context) error {
		driverUC.CloseDevices()
		return nil
	})
	srv.OnShutdown(func(context.Context) error {
		stopPublisher()
		return nil
	})

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Failed to start server",
			zap.String("app", appName),
			zap.Error(err),
		)
	}
}
