package main

import (
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Thakshaka/inventory-order-management-system/internal/config"
	"github.com/Thakshaka/inventory-order-management-system/internal/events"
	"github.com/Thakshaka/inventory-order-management-system/internal/handlers"
	"github.com/Thakshaka/inventory-order-management-system/internal/messaging"
	"github.com/Thakshaka/inventory-order-management-system/internal/metrics"
	"github.com/Thakshaka/inventory-order-management-system/internal/service"
	"github.com/Thakshaka/inventory-order-management-system/internal/store"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info("starting inventory & order management service")

	catalogStore, orderStore, cleanup := initStores(cfg)
	defer cleanup()

	publisher, closePublisher := initPublisher(cfg)
	defer closePublisher()

	catalogService := service.NewCatalogService(catalogStore, publisher)
	orderService := service.NewOrderService(catalogStore, orderStore, publisher)

	app := setupFiberApp(cfg)
	handlers.RegisterRoutes(
		app,
		handlers.NewProductHandler(catalogService, cfg.DefaultPageLimit, cfg.MaxPageLimit),
		handlers.NewOrderHandler(orderService, cfg.DefaultPageLimit, cfg.MaxPageLimit),
		version,
	)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("shutdown error")
		}
	}()

	log.Infof("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server startup error")
	}
}

func setupLogger(cfg *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// initStores selects the Postgres store when a database is configured and
// the in-memory store otherwise.
func initStores(cfg *config.Config) (store.CatalogStore, store.OrderStore, func()) {
	if cfg.DatabaseURL == "" {
		log.Info("no database configured, using in-memory store")
		mem := store.NewMemoryStore()
		return mem, mem, func() {}
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("database open error")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("database ping error")
	}

	log.Info("database connection successful")
	pg := store.NewPostgresStore(db)
	return pg, pg, func() { db.Close() }
}

func initPublisher(cfg *config.Config) (events.Publisher, func()) {
	if !cfg.RabbitMQEnabled {
		return events.NopPublisher{}, func() {}
	}

	rabbitConfig := messaging.NewRabbitMQConfig()
	rabbitClient := messaging.NewRabbitMQClient(rabbitConfig)
	if err := rabbitClient.Connect(); err != nil {
		log.WithError(err).Fatal("RabbitMQ connection error")
	}

	return messaging.NewPublisher(rabbitClient), func() { rabbitClient.Close() }
}

func setupFiberApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(metrics.HTTPMiddleware())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} - ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
	}))

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		detail = e.Message
	}

	log.WithError(err).Error("request error")

	return c.Status(code).JSON(fiber.Map{"detail": detail})
}
