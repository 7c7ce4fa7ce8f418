package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/ports"
	"orders/internal/pkg/tracing"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger = logger.With("service", configs.AppServiceName, "env", configs.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ExporterURL: configs.OtelExporterURL,
		SampleRate:  1,
		ServiceName: configs.AppServiceName,
		Environment: configs.AppEnv,
	})
	if err != nil {
		log.Fatalf("init tracing: %v", err)
	}

	dbConfig := postgres.ConnectionConfig{
		Host:     configs.DBHost,
		Port:     configs.DBPort,
		User:     configs.DBUser,
		Password: configs.DBPassword,
		Name:     configs.DBName,
		SSLMode:  configs.DBSslMode,
	}
	if err = postgres.EnsureDatabase(ctx, dbConfig); err != nil {
		log.Fatalf("ensure database: %v", err)
	}
	gormDB, err := postgres.Open(dbConfig, configs.OrdersTable)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	publisher, err := app.CreateNotificationPublisher()
	if err != nil {
		log.Fatalf("create notification publisher: %v", err)
	}
	if err = publisher.EnsureTopic(ctx); err != nil {
		log.Fatalf("ensure notification topic: %v", err)
	}

	steps, err := app.CreateFulfillmentSteps(publisher)
	if err != nil {
		log.Fatalf("create fulfillment steps: %v", err)
	}

	var (
		workflows     ports.WorkflowStarter
		stopWorkflows func(context.Context) error
	)
	switch configs.WorkflowEngine {
	case cmd.EngineTemporal:
		engine, err := app.CreateTemporalEngine(steps)
		if err != nil {
			log.Fatalf("create temporal engine: %v", err)
		}
		if err = engine.Worker.Start(); err != nil {
			log.Fatalf("start temporal worker: %v", err)
		}
		workflows = engine.Starter
		stopWorkflows = func(context.Context) error {
			engine.Worker.Stop()
			engine.Client.Close()
			return nil
		}
	default:
		engine, err := app.CreateLocalEngine(steps)
		if err != nil {
			log.Fatalf("create local engine: %v", err)
		}
		workflows = engine
		stopWorkflows = engine.Shutdown
	}
	logger.InfoContext(ctx, "workflow engine ready", "engine", configs.WorkflowEngine)

	subscriber, err := app.CreateNotificationSubscriber()
	if err != nil {
		log.Fatalf("create notification subscriber: %v", err)
	}
	subscriberDone := make(chan struct{})
	go func() {
		defer close(subscriberDone)
		if err := subscriber.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorContext(ctx, "notification subscriber stopped", "error", err)
		}
	}()

	jobManager, err := app.CreateJobManager(workflows)
	if err != nil {
		log.Fatalf("create jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}

	router, err := app.CreateRouter(workflows)
	if err != nil {
		log.Fatalf("create router: %v", err)
	}
	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		Handler:           orderhttp.Instrument(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.InfoContext(ctx, "http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
	jobManager.StopAll()
	if err := stopWorkflows(shutdownCtx); err != nil {
		logger.Error("workflow engine shutdown", "error", err)
	}
	subscriber.Close()
	<-subscriberDone
	publisher.Close()
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown", "error", err)
	}
}
