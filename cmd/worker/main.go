// The worker binary runs the outbox delivery loop standalone, for deployments
// that separate the HTTP service from event publishing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ddd-order/config"
	"ddd-order/infrastructure/persistence/memory"
	"ddd-order/infrastructure/persistence/mysql"
	"ddd-order/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Type != "mysql" {
		return fmt.Errorf("outbox worker requires database.type=mysql, got %q", cfg.Database.Type)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	db, err := mysql.NewDB(cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	worker := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		memory.NewLoggingEventPublisher(log),
		log,
		mysql.OutboxWorkerConfig{
			PollInterval: cfg.Worker.PollInterval,
			BatchSize:    cfg.Worker.BatchSize,
			MaxRetries:   cfg.Worker.MaxRetries,
		})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	worker.Run(ctx)
	return nil
}
