package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fastmoney/fastmoney/internal/analytics"
	"github.com/fastmoney/fastmoney/internal/api"
	"github.com/fastmoney/fastmoney/internal/config"
	"github.com/fastmoney/fastmoney/internal/geo"
	"github.com/fastmoney/fastmoney/internal/handler"
	"github.com/fastmoney/fastmoney/internal/logger"
	"github.com/fastmoney/fastmoney/internal/repository"
	"github.com/fastmoney/fastmoney/internal/resolver"
	"github.com/fastmoney/fastmoney/internal/tracker"

	_ "github.com/lib/pq"
)

// Database connection timeout.
const dbPingTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	// Connect to database
	db, err := connectDatabase(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() { _ = db.Close() }()

	// Run server
	return runServer(cfg, log, db)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// connectDatabase opens and verifies a database connection.
func connectDatabase(cfg *config.Config, log logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	return db, nil
}

// connectRedis creates a Redis client when an address is configured. A nil
// client disables the geo cache; the service works without it.
func connectRedis(cfg *config.Config, log logger.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, geo cache disabled", logger.Error(err))
		_ = client.Close()
		return nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Redis.Address))
	return client
}

// runServer creates all dependencies and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, db *sql.DB) int {
	redisClient := connectRedis(cfg, log)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	// Repositories
	sessions := repository.NewSessionRepository(db, log)
	clicks := repository.NewClickRepository(db, log)
	results := repository.NewResultRepository(db, log)
	links := repository.NewLinkRepository(db, log)
	content := repository.NewContentRepository(db, log)
	stats := repository.NewAnalyticsRepository(db, log)

	// Collaborators
	locator := geo.NewClient(cfg.Geo.BaseURL, cfg.Geo.Timeout, redisClient, cfg.Geo.CacheTTL, log)
	visitTracker := tracker.New(sessions, clicks, locator, log)
	linkResolver := resolver.New(links, log)
	aggregator := analytics.New(sessions, clicks, stats, log)

	// Handlers
	handlers := api.Handlers{
		Health:   handler.NewHealthHandler(db, cfg.Service.Name, cfg.Service.Version),
		Public:   handler.NewPublicHandler(content, results, log),
		Track:    handler.NewTrackHandler(visitTracker, log),
		Redirect: handler.NewRedirectHandler(results, linkResolver, visitTracker, locator, log),
		Admin:    handler.NewAdminHandler(content, results, links, aggregator, log),
	}

	server := api.NewServer(cfg, log, handlers)

	log.Info("Fastmoney starting",
		logger.Int("port", cfg.Service.Port),
	)

	if err := server.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Fastmoney exited cleanly")
	return 0
}
