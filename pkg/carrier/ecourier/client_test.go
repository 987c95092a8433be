package ecourier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/fulfillment/pkg/carrier"
	"github.com/tournevent/fulfillment/pkg/carrier/ecourier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *ecourier.MockAPIClient) *ecourier.Client {
	logger := otelzap.New(zap.NewNop())
	return ecourier.NewWithAPIClient(
		ecourier.Config{},
		mockClient,
		logger,
		nil,
	)
}

func shipmentRequest() *carrier.ShipmentRequest {
	return &carrier.ShipmentRequest{
		ConsignmentNo: "ORD1-V1",
		Origin: carrier.Address{
			Name:        "Gadget Store",
			Phone:       "01711111111",
			House:       "House 12",
			Area:        "Banani",
			City:        "Dhaka",
			CountryCode: "BD",
		},
		Destination: carrier.Address{
			Name:        "Jane Customer",
			Phone:       "01722222222",
			House:       "Flat 3B, Road 4",
			Area:        "Dhanmondi",
			City:        "Dhaka",
			CountryCode: "BD",
		},
		Weight:      2.5,
		Pieces:      3,
		Description: "Phone Case, Charger",
		PickupDate:  "2026-09-02",
	}
}

func TestClient_CreateShipment_Success(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	client := newTestClient(mockAPI)

	ctx := context.Background()
	result, err := client.CreateShipment(ctx, shipmentRequest())

	require.NoError(t, err)
	assert.NotEmpty(t, result.TrackingNo)
	assert.Equal(t, "ecourier", result.Carrier)
}

func TestClient_CreateShipment_CustomMock(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	mockAPI.OnPlaceOrder = func(ctx context.Context, req *ecourier.PlaceOrderRequest) (*ecourier.PlaceOrderResponse, error) {
		assert.Equal(t, "ORD1-V1", req.ConsignmentNo)
		assert.Equal(t, "Gadget Store", req.SenderName)
		assert.Equal(t, "Jane Customer", req.RecipientName)
		assert.Equal(t, 2.5, req.PackageWeight)
		assert.Equal(t, 3, req.NumPieces)
		return &ecourier.PlaceOrderResponse{
			Success: true,
			AWB:     "ECR-CUSTOM-1",
			Message: "booked",
		}, nil
	}

	client := newTestClient(mockAPI)

	ctx := context.Background()
	result, err := client.CreateShipment(ctx, shipmentRequest())

	require.NoError(t, err)
	assert.Equal(t, "ECR-CUSTOM-1", result.TrackingNo)
}

func TestClient_CreateShipment_APIError(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	mockAPI.SimulateErrors = true

	client := newTestClient(mockAPI)

	ctx := context.Background()
	_, err := client.CreateShipment(ctx, shipmentRequest())

	require.Error(t, err)

	var carrierErr *carrier.CarrierError
	require.True(t, errors.As(err, &carrierErr))
	assert.Equal(t, "ecourier", carrierErr.Carrier)
	assert.Equal(t, "MOCK_ERROR", carrierErr.Code)
}

func TestClient_CreateShipment_RetryableMapping(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	mockAPI.OnPlaceOrder = func(ctx context.Context, req *ecourier.PlaceOrderRequest) (*ecourier.PlaceOrderResponse, error) {
		return nil, &ecourier.APIError{Code: "HTTP_503", Message: "maintenance window"}
	}

	client := newTestClient(mockAPI)

	ctx := context.Background()
	_, err := client.CreateShipment(ctx, shipmentRequest())

	require.Error(t, err)
	assert.True(t, carrier.IsRetryable(err))
}

func TestClient_CreateShipment_AuthNotRetryable(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	mockAPI.OnPlaceOrder = func(ctx context.Context, req *ecourier.PlaceOrderRequest) (*ecourier.PlaceOrderResponse, error) {
		return nil, &ecourier.APIError{Code: "HTTP_401", Message: "bad credentials"}
	}

	client := newTestClient(mockAPI)

	ctx := context.Background()
	_, err := client.CreateShipment(ctx, shipmentRequest())

	require.Error(t, err)
	assert.False(t, carrier.IsRetryable(err))

	var carrierErr *carrier.CarrierError
	require.True(t, errors.As(err, &carrierErr))
	assert.Equal(t, 401, carrierErr.StatusCode)
}

func TestClient_CancelShipment_Success(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	client := newTestClient(mockAPI)

	ctx := context.Background()
	result, err := client.CancelShipment(ctx, &carrier.CancelRequest{
		TrackingNo: "ECR-12345678",
		Reason:     "order cancelled",
	})

	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.Equal(t, "ECR-12345678", result.TrackingNo)
}

func TestClient_CancelShipment_CustomError(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	mockAPI.OnCancelOrder = func(ctx context.Context, req *ecourier.CancelOrderRequest) (*ecourier.CancelOrderResponse, error) {
		return nil, errors.New("shipment already delivered, cannot cancel")
	}

	client := newTestClient(mockAPI)

	ctx := context.Background()
	_, err := client.CancelShipment(ctx, &carrier.CancelRequest{TrackingNo: "ECR-12345678"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot cancel")
}

func TestClient_CancelShipment_Declined(t *testing.T) {
	mockAPI := ecourier.NewMockAPIClient()
	mockAPI.OnCancelOrder = func(ctx context.Context, req *ecourier.CancelOrderRequest) (*ecourier.CancelOrderResponse, error) {
		return &ecourier.CancelOrderResponse{Success: false, Message: "out for delivery"}, nil
	}

	client := newTestClient(mockAPI)

	ctx := context.Background()
	result, err := client.CancelShipment(ctx, &carrier.CancelRequest{TrackingNo: "ECR-12345678"})

	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.Equal(t, "out for delivery", result.Message)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(ecourier.NewMockAPIClient())
	assert.Equal(t, "ecourier", client.Name())
}
