package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Carrier selection and leg behavior
	CarrierName    string        `envconfig:"CARRIER_NAME" default:"ecourier"`
	CarrierTimeout time.Duration `envconfig:"CARRIER_TIMEOUT" default:"30s"`
	OriginCountry  string        `envconfig:"CARRIER_ORIGIN_COUNTRY" default:"BD"`

	// eCourier
	EcourierAPIKey    string `envconfig:"ECOURIER_API_KEY"`
	EcourierAPISecret string `envconfig:"ECOURIER_API_SECRET"`
	EcourierBaseURL   string `envconfig:"ECOURIER_BASE_URL" default:"https://backoffice.ecourier.com.bd/api"`
	EcourierUseMock   bool   `envconfig:"ECOURIER_USE_MOCK" default:"false"`

	// Postgres
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"fulfillment"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"marketplace"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBPoolMax  int32  `envconfig:"DB_POOL_MAX" default:"20"`

	// Notifications
	KafkaBrokers []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string        `envconfig:"KAFKA_TOPIC" default:"order-status-events"`
	NotifyDelay  time.Duration `envconfig:"NOTIFY_DELAY" default:"5s"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"marketplace-fulfillment"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
