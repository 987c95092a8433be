// Package mock provides a mock carrier implementation for testing and local runs.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tournevent/fulfillment/pkg/carrier"
)

// Client is a scriptable mock carrier. By default every call succeeds with a
// deterministic tracking number derived from the consignment number; tests
// can script failures per consignment or tracking number and inspect the
// calls that were made.
type Client struct {
	name string

	// FailCreate maps consignment numbers to the error that CreateShipment
	// should return for them.
	FailCreate map[string]error

	// FailCancel maps tracking numbers to the error that CancelShipment
	// should return for them.
	FailCancel map[string]error

	// CreateDelay delays every CreateShipment call, honoring context
	// cancellation. Used to exercise per-leg timeouts.
	CreateDelay time.Duration

	mu          sync.Mutex
	createCalls []*carrier.ShipmentRequest
	cancelCalls []*carrier.CancelRequest
}

// New creates a new mock carrier.
func New(name string) *Client {
	return &Client{
		name:       name,
		FailCreate: make(map[string]error),
		FailCancel: make(map[string]error),
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// CreateShipment books a mock shipment.
func (c *Client) CreateShipment(ctx context.Context, req *carrier.ShipmentRequest) (*carrier.ShipmentResult, error) {
	c.mu.Lock()
	c.createCalls = append(c.createCalls, req)
	delay := c.CreateDelay
	failErr := c.FailCreate[req.ConsignmentNo]
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failErr != nil {
		return nil, failErr
	}

	return &carrier.ShipmentResult{
		TrackingNo: fmt.Sprintf("MOCK-%s", req.ConsignmentNo),
		Carrier:    c.name,
		Message:    "shipment booked",
	}, nil
}

// CancelShipment cancels a mock shipment.
func (c *Client) CancelShipment(ctx context.Context, req *carrier.CancelRequest) (*carrier.CancelResult, error) {
	c.mu.Lock()
	c.cancelCalls = append(c.cancelCalls, req)
	failErr := c.FailCancel[req.TrackingNo]
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failErr != nil {
		return nil, failErr
	}

	return &carrier.CancelResult{
		TrackingNo: req.TrackingNo,
		Cancelled:  true,
		Message:    "shipment cancelled",
	}, nil
}

// CreateCalls returns the CreateShipment requests seen so far.
func (c *Client) CreateCalls() []*carrier.ShipmentRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*carrier.ShipmentRequest(nil), c.createCalls...)
}

// CancelCalls returns the CancelShipment requests seen so far.
func (c *Client) CancelCalls() []*carrier.CancelRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*carrier.CancelRequest(nil), c.cancelCalls...)
}

var _ carrier.Carrier = (*Client)(nil)
