package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/fulfillment/internal/fulfillment"
	"github.com/tournevent/fulfillment/internal/notify"
	"github.com/tournevent/fulfillment/internal/repository"
	"github.com/tournevent/fulfillment/internal/server"
	"github.com/tournevent/fulfillment/internal/telemetry"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "fulfillment",
	Short:   "Marketplace fulfillment - per-vendor shipment orchestration service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fulfillment HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	db, err := initPostgres(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer db.Close()

	gateway, err := initCarrier(cfg, logger)
	if err != nil {
		return fmt.Errorf("carrier: %w", err)
	}

	writer := initKafkaWriter(cfg, logger)
	defer writer.Close()

	metrics := telemetry.NewMetrics()
	orders := repository.NewOrderRepository(db)

	dispatcher := notify.NewDispatcher(
		orders,
		repository.NewNotificationRepository(db),
		notify.NewKafkaSender(writer),
		cfg.NotifyDelay,
		logger,
		metrics,
	)
	defer dispatcher.Close()

	orch := fulfillment.NewOrchestrator(
		fulfillment.Config{
			LegTimeout:    cfg.CarrierTimeout,
			OriginCountry: cfg.OriginCountry,
		},
		orders,
		repository.NewVendorRepository(db),
		repository.NewProductRepository(db),
		gateway,
		dispatcher,
		logger,
		metrics,
	)

	logger.Info("Starting marketplace fulfillment service",
		zap.Int("port", cfg.Port),
		zap.String("carrier", gateway.Name()),
		zap.String("version", cfg.Version),
	)

	srv := server.New(server.Config{Port: cfg.Port}, orch, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
