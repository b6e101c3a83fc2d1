package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"userapi/internal/handlers"
	"userapi/internal/models"
	"userapi/internal/repositories"
	"userapi/internal/response"
	"userapi/internal/services"
	"userapi/pkg/rabbitmq"
)

// Config holds the server configuration, loaded from the environment.
type Config struct {
	AppPort     string `validate:"required"`
	StoreDriver string `validate:"oneof=memory sqlite postgres"`
	DatabaseDSN string
	RabbitMQURL string
}

// loadConfig reads the configuration from environment variables via Viper
// and checks it with validator.
func loadConfig() (Config, error) {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORE_DRIVER", "memory")
	viper.SetDefault("DATABASE_DSN", "file::memory:?cache=shared")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	cfg := Config{
		AppPort:     viper.GetString("APP_PORT"),
		StoreDriver: viper.GetString("STORE_DRIVER"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newRepository builds the user store selected by STORE_DRIVER. The default
// is the in-memory map store; sqlite and postgres go through GORM.
func newRepository(cfg Config) (repositories.UserRepository, error) {
	switch cfg.StoreDriver {
	case "memory":
		return repositories.NewMemoryUserRepository(), nil
	case "sqlite", "postgres":
		var dialector gorm.Dialector
		if cfg.StoreDriver == "sqlite" {
			dialector = sqlite.Open(cfg.DatabaseDSN)
		} else {
			dialector = postgres.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.StoreDriver, err)
		}
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return repositories.NewGORMUserRepository(db)
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// NewApp builds the Fiber application with all routes wired to the given
// repository and optional event publisher.
func NewApp(repo repositories.UserRepository, publisher services.EventPublisher) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.New().String() },
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	userService := services.NewUserService(repo, publisher)

	handlers.NewHomeHandler().RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app)

	// Unmatched routes get the standard 404 envelope.
	app.Use(func(c *fiber.Ctx) error {
		return response.Error(c, fiber.StatusNotFound, "Resource not found")
	})

	return app
}

// errorHandler converts errors that escape a handler, including panics
// surfaced by the recover middleware, into the standard envelope. Routine
// conditions (not found, validation, conflict) never reach this point.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	switch code {
	case fiber.StatusNotFound:
		return response.Error(c, code, "Resource not found")
	case fiber.StatusBadRequest:
		return response.Error(c, code, "Bad request")
	}
	log.Printf("Unhandled error: %v", err)
	return response.Error(c, fiber.StatusInternalServerError, "Internal server error")
}

// seedUsers populates an empty store with the three fixed example records.
// The next assigned identifier is then 4.
func seedUsers(repo repositories.UserRepository) {
	existing, err := repo.GetAll()
	if err != nil {
		log.Printf("Error checking store before seeding: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	users := []models.UserFields{
		{Name: "John Doe", Email: "john.doe@example.com", Age: 30, Position: "Software Developer"},
		{Name: "Jane Smith", Email: "jane.smith@example.com", Age: 28, Position: "Product Manager"},
		{Name: "Mike Johnson", Email: "mike.johnson@example.com", Age: 35, Position: "DevOps Engineer"},
	}
	for _, u := range users {
		if _, err := repo.Create(u); err != nil {
			log.Printf("Error seeding user %s: %v", u.Name, err)
		}
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The event publisher is optional: without a broker URL the service
	// simply skips publishing.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	repo, err := newRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize user store: %v", err)
	}
	seedUsers(repo)

	app := NewApp(repo, publisher)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
