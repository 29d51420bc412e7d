package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-events/internal/clock"
	"ms-events/internal/config"
	"ms-events/internal/database/migrations"
	events_api "ms-events/internal/events/api"
	events_db "ms-events/internal/events/db"
	"ms-events/internal/kafka"
	"ms-events/internal/logger"
	registration_api "ms-events/internal/registration/api"
	registration_db "ms-events/internal/registration/db"
	users_api "ms-events/internal/users/api"
	users_db "ms-events/internal/users/db"

	"ms-events/internal/events"
	"ms-events/internal/registration"
	rediswrap "ms-events/internal/registration/redis"
	"ms-events/internal/users"
)

func connectPostgres(cfg config.DatabaseConfig, logger *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		logger.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	logger.Info("DATABASE", "✅ PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, logger *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	logger.Info("DATABASE", fmt.Sprintf("✅ Redis connection successful to %s", cfg.Addr))
	return client
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Event Management Service initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectPostgres(cfg.Database, logger)
	defer bunDB.Close()

	if cfg.Database.AutoMigrate {
		runner := migrations.NewRunner(bunDB, cfg.Database.MigrationsDir)
		if err := runner.Up(); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		if version, err := runner.Version(); err == nil {
			logger.Info("DATABASE", fmt.Sprintf("Schema at version %d", version))
		}
	}

	redisClient := connectRedis(ctx, cfg.Redis, logger)
	defer redisClient.Close()

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		logger.Info("KAFKA", fmt.Sprintf("Kafka producer initialized for brokers %v", cfg.Kafka.Brokers))

		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.RequiredTopics()); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			logger.Info("KAFKA", "Required topics ensured successfully")
		}
	} else {
		logger.Warn("KAFKA", "Kafka disabled, lifecycle events will not be published")
	}

	systemClock := clock.System{}
	admissionLock := rediswrap.NewLock(
		redisClient,
		cfg.Admission.LockTTL,
		cfg.Admission.LockRetries,
		cfg.Admission.LockRetryDelay,
	)

	// A nil publisher disables lifecycle events.
	var eventsPublisher events.Publisher
	var registrationPublisher registration.Publisher
	if producer != nil {
		eventsPublisher = producer
		registrationPublisher = producer
	}

	eventService := events.NewService(&events_db.DB{Bun: bunDB}, eventsPublisher, systemClock, logger)
	userService := users.NewService(&users_db.DB{Bun: bunDB})
	registrationService := registration.NewService(
		&registration_db.DB{Bun: bunDB},
		admissionLock,
		registrationPublisher,
		systemClock,
		registration.CapacityPolicy(cfg.Admission.CapacityPolicy),
		logger,
	)
	logger.Info("APP", fmt.Sprintf("Admission capacity policy: %s", registrationService.Policy))

	eventHandler := events_api.NewHandler(eventService, logger)
	userHandler := users_api.NewHandler(userService, logger)
	registrationHandler := registration_api.NewHandler(registrationService, logger)

	logger.Info("HTTP", "Setting up router")
	r := chi.NewRouter()

	r.Get("/healthz", healthHandler)
	r.Route("/api", func(r chi.Router) {
		eventHandler.RegisterRoutes(r)
		userHandler.RegisterRoutes(r)
		registrationHandler.RegisterRoutes(r)
	})
	logger.Info("ROUTER", "Event, user and registration routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Event Management Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Event Management Service shutdown complete")
	}
}
