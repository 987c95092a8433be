// Package ecourier provides integration with the eCourier parcel API.
package ecourier

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tournevent/fulfillment/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const carrierName = "ecourier"

// Config holds eCourier configuration.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	UseMock   bool // When true, uses mock API client
}

// Client is the eCourier carrier client.
// It implements the carrier.Carrier interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new eCourier client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:   cfg.BaseURL,
			APIKey:    cfg.APIKey,
			APISecret: cfg.APISecret,
			Timeout:   30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new eCourier client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// CreateShipment books a shipment with eCourier.
func (c *Client) CreateShipment(ctx context.Context, req *carrier.ShipmentRequest) (*carrier.ShipmentResult, error) {
	c.logger.Info("Creating eCourier shipment",
		zap.String("consignment_no", req.ConsignmentNo),
		zap.String("destination_city", req.Destination.City),
		zap.Int("num_pieces", req.Pieces),
	)

	apiReq := placeOrderRequest(req)

	apiResp, err := c.apiClient.PlaceOrder(ctx, apiReq)
	if err != nil {
		c.logger.Error("eCourier API error", zap.Error(err))
		return nil, mapAPIError(err, "CREATE_FAILED")
	}

	return &carrier.ShipmentResult{
		TrackingNo: apiResp.AWB,
		Carrier:    carrierName,
		Message:    apiResp.Message,
	}, nil
}

// CancelShipment cancels a shipment with eCourier.
func (c *Client) CancelShipment(ctx context.Context, req *carrier.CancelRequest) (*carrier.CancelResult, error) {
	c.logger.Info("Cancelling eCourier shipment",
		zap.String("tracking_no", req.TrackingNo),
		zap.String("reason", req.Reason),
	)

	apiResp, err := c.apiClient.CancelOrder(ctx, &CancelOrderRequest{
		TrackingNo: req.TrackingNo,
		Reason:     req.Reason,
	})
	if err != nil {
		c.logger.Error("eCourier API error", zap.Error(err))
		return nil, mapAPIError(err, "CANCEL_FAILED")
	}

	return &carrier.CancelResult{
		TrackingNo: req.TrackingNo,
		Cancelled:  apiResp.Success,
		Message:    apiResp.Message,
	}, nil
}

// ============================================================================
// Conversion helpers: carrier models -> API models
// ============================================================================

func placeOrderRequest(req *carrier.ShipmentRequest) *PlaceOrderRequest {
	return &PlaceOrderRequest{
		ConsignmentNo: req.ConsignmentNo,
		PickupDate:    req.PickupDate,

		SenderName:     req.Origin.Name,
		SenderPhone:    req.Origin.Phone,
		SenderHouse:    req.Origin.House,
		SenderBuilding: req.Origin.Building,
		SenderArea:     req.Origin.Area,
		SenderCity:     req.Origin.City,
		SenderPostCode: req.Origin.PostalCode,
		SenderCountry:  req.Origin.CountryCode,

		RecipientName:     req.Destination.Name,
		RecipientPhone:    req.Destination.Phone,
		RecipientAddress:  req.Destination.House,
		RecipientCity:     req.Destination.City,
		RecipientArea:     req.Destination.Area,
		RecipientPostCode: req.Destination.PostalCode,
		RecipientCountry:  req.Destination.CountryCode,

		PackageWeight:      req.Weight,
		NumPieces:          req.Pieces,
		ProductDescription: req.Description,
	}
}

// mapAPIError converts API-level errors to the carrier error taxonomy.
func mapAPIError(err error, fallbackCode string) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return carrier.NewCarrierError(carrierName, fallbackCode, err.Error()).
			WithCause(err).
			WithRetryable(true) // transport-level failures are worth retrying
	}

	ce := carrier.NewCarrierError(carrierName, apiErr.Code, apiErr.Message).WithCause(apiErr)
	switch apiErr.Code {
	case "HTTP_401", "HTTP_403":
		ce = ce.WithStatusCode(statusFromCode(apiErr.Code)).WithRetryable(false)
	case "HTTP_429":
		ce = ce.WithStatusCode(http.StatusTooManyRequests).WithRetryable(true)
	case "HTTP_500", "HTTP_502", "HTTP_503":
		ce = ce.WithStatusCode(statusFromCode(apiErr.Code)).WithRetryable(true)
	}
	return ce
}

func statusFromCode(code string) int {
	switch code {
	case "HTTP_401":
		return http.StatusUnauthorized
	case "HTTP_403":
		return http.StatusForbidden
	case "HTTP_500":
		return http.StatusInternalServerError
	case "HTTP_502":
		return http.StatusBadGateway
	case "HTTP_503":
		return http.StatusServiceUnavailable
	default:
		return 0
	}
}

var _ carrier.Carrier = (*Client)(nil)
