package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartzenbot/internal/config"
	"smartzenbot/internal/logger"
	"smartzenbot/internal/repository"
	"smartzenbot/internal/repository/memory"
	"smartzenbot/internal/repository/postgres"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting SmartZen Bot",
		zap.String("chat_provider", cfg.ChatProvider),
		zap.String("image_provider", cfg.ImageProvider),
		zap.String("mode_store", cfg.ModeStore),
	)

	if cfg.UsesDefaultSecret() {
		log.Warn("WEBHOOK_SECRET is not set, using the default secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to start bot", zap.Error(err))
	}

	if err := a.run(ctx); err != nil {
		log.Error("Bot stopped with error", zap.Error(err))
		return
	}

	log.Info("Bot stopped gracefully")
}

// newModeRepository builds the configured mode store and a func releasing it
func newModeRepository(cfg *config.Config, log *zap.Logger) (repository.ModeRepository, func(), error) {
	if cfg.ModeStore != "postgres" {
		return memory.NewModeRepo(), func() {}, nil
	}

	db, err := connectDatabase(cfg.DSN(), log)
	if err != nil {
		return nil, nil, err
	}

	log.Info("Database connection established")

	if err := postgres.Migrate(db, log); err != nil {
		db.Close()
		return nil, nil, err
	}

	return postgres.NewModeRepo(db), func() { db.Close() }, nil
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, log *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			log.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			log.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}
