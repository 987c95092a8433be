package carrier_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tournevent/fulfillment/pkg/carrier"
)

func TestCarrierError_Error(t *testing.T) {
	err := carrier.NewCarrierError("ecourier", "INVALID_ADDRESS", "Invalid postal code")
	assert.Equal(t, "ecourier error (INVALID_ADDRESS): Invalid postal code", err.Error())
}

func TestCarrierError_ErrorWithCause(t *testing.T) {
	cause := errors.New("network timeout")
	err := carrier.NewCarrierError("ecourier", "API_ERROR", "API call failed").WithCause(cause)
	assert.Contains(t, err.Error(), "API call failed")
	assert.Contains(t, err.Error(), "network timeout")
}

func TestCarrierError_Unwrap(t *testing.T) {
	cause := errors.New("network timeout")
	err := carrier.NewCarrierError("ecourier", "API_ERROR", "API call failed").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestCarrierError_Is(t *testing.T) {
	err1 := carrier.NewCarrierError("ecourier", "INVALID_ADDRESS", "Invalid postal code")
	err2 := carrier.NewCarrierError("other", "INVALID_ADDRESS", "Different message")

	// Same code should match
	assert.True(t, errors.Is(err1, err2))
}

func TestCarrierError_IsNot(t *testing.T) {
	err1 := carrier.NewCarrierError("ecourier", "INVALID_ADDRESS", "Invalid postal code")
	err2 := carrier.NewCarrierError("ecourier", "DIFFERENT_CODE", "Different error")

	// Different codes should not match
	assert.False(t, errors.Is(err1, err2))
}

func TestCarrierError_WithStatusCode(t *testing.T) {
	err := carrier.NewCarrierError("ecourier", "AUTH_ERROR", "Unauthorized").WithStatusCode(401)
	assert.Equal(t, 401, err.StatusCode)
}

func TestCarrierError_WithRetryable(t *testing.T) {
	err := carrier.NewCarrierError("ecourier", "RATE_LIMIT", "Too many requests").WithRetryable(true)
	assert.True(t, err.Retryable)
}

func TestIsRetryable_CarrierError(t *testing.T) {
	err := carrier.NewCarrierError("ecourier", "RATE_LIMIT", "Too many requests").WithRetryable(true)
	assert.True(t, carrier.IsRetryable(err))
}

func TestIsRetryable_CarrierErrorNotRetryable(t *testing.T) {
	err := carrier.NewCarrierError("ecourier", "INVALID_ADDRESS", "Bad address").WithRetryable(false)
	assert.False(t, carrier.IsRetryable(err))
}

func TestIsRetryable_ServiceUnavailable(t *testing.T) {
	assert.True(t, carrier.IsRetryable(carrier.ErrServiceUnavailable))
}

func TestIsRetryable_RateLimitExceeded(t *testing.T) {
	assert.True(t, carrier.IsRetryable(carrier.ErrRateLimitExceeded))
}

func TestIsRetryable_InvalidAddress(t *testing.T) {
	assert.False(t, carrier.IsRetryable(carrier.ErrInvalidAddress))
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidAddress", carrier.ErrInvalidAddress},
		{"ErrInvalidShipment", carrier.ErrInvalidShipment},
		{"ErrServiceUnavailable", carrier.ErrServiceUnavailable},
		{"ErrShipmentNotFound", carrier.ErrShipmentNotFound},
		{"ErrCancellationNotAllowed", carrier.ErrCancellationNotAllowed},
		{"ErrAuthenticationFailed", carrier.ErrAuthenticationFailed},
		{"ErrRateLimitExceeded", carrier.ErrRateLimitExceeded},
		{"ErrCarrierNotFound", carrier.ErrCarrierNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}
