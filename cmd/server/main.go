package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lucas0204/Fin-API/internal/api"
	auditrecorder "github.com/Lucas0204/Fin-API/internal/audit"
	"github.com/Lucas0204/Fin-API/internal/config"
	"github.com/Lucas0204/Fin-API/internal/data/mongo"
	"github.com/Lucas0204/Fin-API/internal/data/postgres"
	"github.com/Lucas0204/Fin-API/internal/events"
	"github.com/Lucas0204/Fin-API/internal/ledger"
	"github.com/Lucas0204/Fin-API/internal/logger"
	"github.com/Lucas0204/Fin-API/internal/platform/messaging/producers"
	"github.com/Lucas0204/Fin-API/internal/platform/persistence"
)

func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Kafka producers: the event producer feeds the main transfer topic, the
	// DLQ producer takes events that exhausted their delivery attempts.
	eventProducer, err := producers.NewTransferEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize transfer event producer", "error", err)
		os.Exit(1)
	}

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ producer", "error", err)
		os.Exit(1)
	}

	// Repositories
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	statementRepo := postgres.NewStatementRepository(log, postgresDB)
	transferRepo := postgres.NewTransferRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)
	auditRepo := mongo.NewAuditRepository(log, mongoDB.Database())

	// Asynchronous audit recorder
	recorder, err := auditrecorder.NewRecorder(log, auditRepo, auditrecorder.PoolConfig{Size: cfg.WorkerPool.Size})
	if err != nil {
		log.Error("Failed to initialize audit recorder", "error", err)
		os.Exit(1)
	}

	// Ledger engine
	engine := ledger.NewService(log, postgresDB, accountRepo, statementRepo, transferRepo, outboxRepo, recorder)

	// Outbox relay. The DLQ producer is nil when the DLQ topic is not
	// configured; hand the poller a nil interface in that case.
	var deadLetter producers.DeadLetterPublisher
	if dlqProducer != nil {
		deadLetter = dlqProducer
	}
	poller := events.NewPoller(log, outboxRepo, eventProducer, deadLetter, &cfg.Outbox)
	go poller.Start(appCtx)

	// REST server
	server := api.NewServer(log, cfg, engine, auditRepo)
	log.Info("REST server initialized")

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	// Push out anything still sitting in the outbox before closing producers.
	if err := poller.Drain(shutdownCtx); err != nil {
		log.Error("Error draining outbox", "error", err)
	}

	recorder.Shutdown()

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing transfer event producer", "error", err)
	}
	if err = dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ producer", "error", err)
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
