package ecourier_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/fulfillment/pkg/carrier/ecourier"
)

func TestHTTPAPIClient_PlaceOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order-place", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("API-KEY"))
		assert.Equal(t, "test-secret", r.Header.Get("API-SECRET"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ecourier.PlaceOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ORD1-V1", req.ConsignmentNo)

		json.NewEncoder(w).Encode(ecourier.PlaceOrderResponse{
			Success: true,
			AWB:     "ECR-11112222",
			Message: "order placed",
		})
	}))
	defer srv.Close()

	client := ecourier.NewHTTPAPIClient(ecourier.HTTPAPIClientConfig{
		BaseURL:   srv.URL,
		APIKey:    "test-key",
		APISecret: "test-secret",
	})

	ctx := context.Background()
	resp, err := client.PlaceOrder(ctx, &ecourier.PlaceOrderRequest{ConsignmentNo: "ORD1-V1"})

	require.NoError(t, err)
	assert.Equal(t, "ECR-11112222", resp.AWB)
}

func TestHTTPAPIClient_PlaceOrder_RejectedInBand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Rejection arrives with a 200 and success=false
		json.NewEncoder(w).Encode(ecourier.PlaceOrderResponse{
			Success: false,
			Message: "pickup area not covered",
		})
	}))
	defer srv.Close()

	client := ecourier.NewHTTPAPIClient(ecourier.HTTPAPIClientConfig{BaseURL: srv.URL})

	ctx := context.Background()
	_, err := client.PlaceOrder(ctx, &ecourier.PlaceOrderRequest{ConsignmentNo: "ORD1-V1"})

	require.Error(t, err)

	var apiErr *ecourier.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ORDER_REJECTED", apiErr.Code)
	assert.Equal(t, "pickup area not covered", apiErr.Message)
}

func TestHTTPAPIClient_PlaceOrder_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "maintenance"})
	}))
	defer srv.Close()

	client := ecourier.NewHTTPAPIClient(ecourier.HTTPAPIClientConfig{BaseURL: srv.URL})

	ctx := context.Background()
	_, err := client.PlaceOrder(ctx, &ecourier.PlaceOrderRequest{ConsignmentNo: "ORD1-V1"})

	require.Error(t, err)

	var apiErr *ecourier.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "HTTP_503", apiErr.Code)
	assert.Equal(t, "maintenance", apiErr.Message)
}

func TestHTTPAPIClient_PlaceOrder_StructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(ecourier.APIError{
			Code:    "VALIDATION_FAILED",
			Message: "recipient phone is required",
			Errors:  map[string]string{"recipient_phone": "required"},
		})
	}))
	defer srv.Close()

	client := ecourier.NewHTTPAPIClient(ecourier.HTTPAPIClientConfig{BaseURL: srv.URL})

	ctx := context.Background()
	_, err := client.PlaceOrder(ctx, &ecourier.PlaceOrderRequest{})

	require.Error(t, err)

	var apiErr *ecourier.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "VALIDATION_FAILED", apiErr.Code)
	assert.Equal(t, "required", apiErr.Errors["recipient_phone"])
}

func TestHTTPAPIClient_CancelOrder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order-cancel", r.URL.Path)

		var req ecourier.CancelOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ECR-11112222", req.TrackingNo)

		json.NewEncoder(w).Encode(ecourier.CancelOrderResponse{
			Success: true,
			Message: "order cancelled",
		})
	}))
	defer srv.Close()

	client := ecourier.NewHTTPAPIClient(ecourier.HTTPAPIClientConfig{BaseURL: srv.URL})

	ctx := context.Background()
	resp, err := client.CancelOrder(ctx, &ecourier.CancelOrderRequest{
		TrackingNo: "ECR-11112222",
		Reason:     "order cancelled",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
}
