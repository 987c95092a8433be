package ecourier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnPlaceOrder  func(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error)
	OnCancelOrder func(ctx context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// PlaceOrder books a mock shipment.
func (m *MockAPIClient) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnPlaceOrder != nil {
		return m.OnPlaceOrder(ctx, req)
	}

	return &PlaceOrderResponse{
		Success: true,
		AWB:     fmt.Sprintf("ECR-%s", uuid.New().String()[:8]),
		Message: "order placed",
	}, nil
}

// CancelOrder cancels a mock shipment.
func (m *MockAPIClient) CancelOrder(ctx context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnCancelOrder != nil {
		return m.OnCancelOrder(ctx, req)
	}

	return &CancelOrderResponse{
		Success: true,
		Message: "order cancelled",
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
