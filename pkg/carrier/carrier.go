// Package carrier provides an abstraction layer for shipping carriers.
package carrier

import (
	"context"
)

// Carrier defines the interface that all shipping carrier integrations must
// implement.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "ecourier").
	Name() string

	// CreateShipment books a new shipment with the carrier and returns the
	// tracking identifier issued for it.
	CreateShipment(ctx context.Context, req *ShipmentRequest) (*ShipmentResult, error)

	// CancelShipment cancels a previously created shipment by its tracking
	// identifier.
	CancelShipment(ctx context.Context, req *CancelRequest) (*CancelResult, error)
}
