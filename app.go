package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/docs"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
	"gorm.io/gorm"
)

// App is the wired HTTP application together with the resources it owns.
type App struct {
	Fiber  *fiber.App
	Config *config.Config

	log    zerolog.Logger
	db     *gorm.DB
	events *rabbitmq.Client
}

// NewApp builds the storage, event publisher, services and handlers described
// by cfg and mounts them on a new Fiber app.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, log: log}

	// --- Storage ---
	var productRepo repositories.ProductRepository
	if cfg.DBDriver == config.DriverMemory {
		productRepo = repositories.NewMemoryProductRepository()
	} else {
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, err
		}
		a.db = db
		productRepo = repositories.NewGORMProductRepository(db)
	}

	// --- Events ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue}, log)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.events = client
		publisher = client
	}

	// --- Services and handlers ---
	productService := services.NewProductService(productRepo, publisher, log)
	productHandler := handlers.NewProductHandler(productService, log)
	healthHandler := handlers.NewHealthHandler(productService, cfg.AppName, cfg.AppVersion)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))

	healthHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app.Group(cfg.RoutePrefix))

	// --- API documentation ---
	if cfg.DocsEnabled {
		builder := docs.NewBuilder(docs.Info{
			Title:       cfg.AppName,
			Version:     cfg.AppVersion,
			Description: "Product catalogue API",
		})
		productHandler.Document(builder, cfg.RoutePrefix)
		healthHandler.Document(builder)

		doc, err := builder.Build()
		if err != nil {
			a.Close()
			return nil, err
		}
		docsHandler, err := handlers.NewDocsHandler(doc, cfg.StaticDir)
		if err != nil {
			a.Close()
			return nil, err
		}
		docsHandler.RegisterRoutes(app)
	}

	a.Fiber = app
	return a, nil
}

// StartEventAudit logs every product event arriving on the events queue.
// It is a no-op when event publishing is disabled.
func (a *App) StartEventAudit() error {
	if a.events == nil {
		return nil
	}
	return a.events.Consume(func(msg amqp.Delivery) error {
		var event services.ProductEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			return fmt.Errorf("failed to decode product event: %w", err)
		}
		a.log.Info().
			Str("event_id", event.ID).
			Str("event", event.Type).
			Uint("product_id", event.Product.ID).
			Time("occurred_at", event.OccurredAt).
			Msg("product event received")
		return nil
	})
}

// Close releases the message broker connection and the database pool.
func (a *App) Close() error {
	var errs []error
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// errorHandler renders errors that escape the handlers as JSON.
func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}
