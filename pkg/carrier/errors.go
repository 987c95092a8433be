package carrier

import (
	"errors"
	"fmt"
)

// CarrierError represents an error from a shipping carrier.
type CarrierError struct {
	Carrier    string
	Code       string
	Message    string
	StatusCode int
	Retryable  bool
	Cause      error
}

// Error implements the error interface.
func (e *CarrierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Carrier, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CarrierError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for CarrierError.
func (e *CarrierError) Is(target error) bool {
	t, ok := target.(*CarrierError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewCarrierError creates a new CarrierError.
func NewCarrierError(carrier, code, message string) *CarrierError {
	return &CarrierError{
		Carrier: carrier,
		Code:    code,
		Message: message,
	}
}

// WithCause adds a cause to the error.
func (e *CarrierError) WithCause(err error) *CarrierError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *CarrierError) WithStatusCode(code int) *CarrierError {
	e.StatusCode = code
	return e
}

// WithRetryable marks the error as retryable.
func (e *CarrierError) WithRetryable(retryable bool) *CarrierError {
	e.Retryable = retryable
	return e
}

// Sentinel errors for common carrier scenarios.
var (
	// ErrInvalidAddress indicates the address is invalid or incomplete.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidShipment indicates the shipment request was rejected as malformed.
	ErrInvalidShipment = errors.New("invalid shipment")

	// ErrServiceUnavailable indicates the carrier service is temporarily unavailable.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrShipmentNotFound indicates the tracking identifier was not found.
	ErrShipmentNotFound = errors.New("shipment not found")

	// ErrCancellationNotAllowed indicates the shipment cannot be cancelled.
	ErrCancellationNotAllowed = errors.New("cancellation not allowed")

	// ErrAuthenticationFailed indicates carrier authentication failed.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrRateLimitExceeded indicates the carrier rate limit was exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")
)

// IsRetryable returns true if the error is retryable.
func IsRetryable(err error) bool {
	var carrierErr *CarrierError
	if errors.As(err, &carrierErr) {
		return carrierErr.Retryable
	}
	return errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrRateLimitExceeded)
}
