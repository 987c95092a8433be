package main

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/tournevent/fulfillment/internal/config"
	"github.com/tournevent/fulfillment/internal/telemetry"
	"github.com/tournevent/fulfillment/pkg/carrier"
	"github.com/tournevent/fulfillment/pkg/carrier/ecourier"
	pkgkafka "github.com/tournevent/fulfillment/pkg/kafka"
	"github.com/tournevent/fulfillment/pkg/storage/postgres"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initPostgres(ctx context.Context, cfg *config.Config, logger *otelzap.Logger) (*postgres.Postgres, error) {
	return postgres.New(ctx, postgres.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		PoolMax:  cfg.DBPoolMax,
	}, logger)
}

// initCarrier builds the registry of configured carrier gateways and picks
// the one named by CARRIER_NAME.
func initCarrier(cfg *config.Config, logger *otelzap.Logger) (carrier.Carrier, error) {
	registry := carrier.NewRegistry()

	var tracer trace.Tracer
	if cfg.OTELEnabled {
		tracer = otel.GetTracerProvider().Tracer(cfg.ServiceName)
	}

	registry.Register(ecourier.New(ecourier.Config{
		APIKey:    cfg.EcourierAPIKey,
		APISecret: cfg.EcourierAPISecret,
		BaseURL:   cfg.EcourierBaseURL,
		UseMock:   cfg.EcourierUseMock,
	}, logger, tracer))

	gateway, err := registry.Get(cfg.CarrierName)
	if err != nil {
		return nil, fmt.Errorf("selecting carrier %q: %w", cfg.CarrierName, err)
	}
	return gateway, nil
}

func initKafkaWriter(cfg *config.Config, logger *otelzap.Logger) *kafka.Writer {
	return pkgkafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
}
