package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"shopcart/internal/config"
	"shopcart/internal/database"
	"shopcart/internal/services"
	"shopcart/pkg/cloudinary"
	"shopcart/pkg/logger"
	"shopcart/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// auditQueue receives a copy of every shop event for logging.
const auditQueue = "shop_events"

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// --- Database ---
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	deps := appDeps{Config: cfg, DB: db, Log: zlog}

	// --- RabbitMQ (optional) ---
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			zlog.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		deps.Publisher = mqClient

		auditHandler := func(msg amqp.Delivery) error {
			zlog.Info("shop event",
				zap.String("routing_key", msg.RoutingKey),
				zap.ByteString("body", msg.Body))
			return nil
		}
		if err := mqClient.Consume(auditQueue, "#", auditHandler); err != nil {
			zlog.Warn("failed to start event consumer", zap.Error(err))
		}
	} else {
		zlog.Info("RABBITMQ_URL not set, domain events are disabled")
	}

	// --- Cloudinary (optional) ---
	if cfg.CloudinaryEnabled() {
		cld, err := cloudinary.NewClient(cloudinary.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
		})
		if err != nil {
			zlog.Fatal("failed to initialize Cloudinary client", zap.Error(err))
		}
		deps.Uploader = cld
	} else {
		zlog.Info("Cloudinary credentials not set, image upload is disabled")
	}

	app, err := newApp(deps)
	if err != nil {
		zlog.Fatal("failed to build app", zap.Error(err))
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("starting server", zap.String("addr", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("error during Fiber shutdown", zap.Error(err))
	}
	zlog.Info("server gracefully stopped")
}

var (
	_ services.EventPublisher = (*rabbitmq.Client)(nil)
	_ services.ImageUploader  = (*cloudinary.Client)(nil)
)
