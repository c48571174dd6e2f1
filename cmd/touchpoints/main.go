package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/crm/touchpoints/internal/application/onboarding"
	"github.com/crm/touchpoints/internal/infrastructure/bus"
	"github.com/crm/touchpoints/internal/infrastructure/config"
	"github.com/crm/touchpoints/internal/infrastructure/logger"
	"github.com/crm/touchpoints/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Exit codes: 0 full success, 2 record persisted but event not published,
// 1 any other failure.
const (
	exitSuccess        = 0
	exitFailure        = 1
	exitPartialSuccess = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var customerName string
	flag.StringVar(&customerName, "customer", "", "Exact name of the corporate customer")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return exitFailure
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = log.Sync()
	}()

	if customerName == "" && flag.NArg() > 0 {
		customerName = flag.Arg(0)
	}
	if customerName == "" {
		customerName = cfg.Workflow.CustomerName
	}
	if customerName == "" {
		log.Error("No customer name given; pass -customer, a positional argument, or set TP_WORKFLOW_CUSTOMER_NAME")
		return exitFailure
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return exitFailure
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()

	publisher, err := bus.NewRedisEventPublisher(&cfg.Redis,
		bus.WithChannel(cfg.Event.Channel),
		bus.WithPublishTimeout(cfg.Event.PublishTimeout),
		bus.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to connect to message bus", zap.Error(err))
		return exitFailure
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn("Failed to close publisher", zap.Error(err))
		}
	}()

	workflow := onboarding.NewWorkflowService(
		persistence.NewGormCustomerRepository(db.DB),
		persistence.NewGormTouchpointsRepository(db.DB),
		publisher,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Workflow.Timeout)
	defer cancel()

	result := workflow.Run(ctx, customerName)

	switch {
	case result.Succeeded():
		fmt.Println(result.Message())
		return exitSuccess
	case result.PartialSuccess():
		fmt.Fprintln(os.Stderr, result.Message())
		return exitPartialSuccess
	default:
		fmt.Fprintln(os.Stderr, result.Message())
		return exitFailure
	}
}
