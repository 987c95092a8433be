package fulfillment

import (
	"context"

	"github.com/tournevent/fulfillment/internal/entity"
)

// OrderStore is the slice of order persistence the orchestrators need.
// Line-item shipment writes are partitioned by vendor group: two concurrent
// legs never touch the same rows.
type OrderStore interface {
	// GetOrder returns the order or entity.ErrOrderNotFound.
	GetOrder(ctx context.Context, orderID string) (*entity.Order, error)

	// ListLineItems returns all line items of the order.
	ListLineItems(ctx context.Context, orderID string) ([]entity.LineItem, error)

	// SetVendorShipment records the tracking identifier on every line item
	// of the (order, vendor) group in one write.
	SetVendorShipment(ctx context.Context, orderID, vendorID, trackingNo string) error

	// MarkShipmentCancelled transitions every line item carrying the
	// tracking identifier to cancelled.
	MarkShipmentCancelled(ctx context.Context, orderID, trackingNo string) error

	// UpdateOrderStatus sets the order's overall status.
	UpdateOrderStatus(ctx context.Context, orderID string, status entity.OrderStatus) error
}

// VendorStore resolves vendor profiles.
type VendorStore interface {
	// GetProfile returns the vendor profile or entity.ErrVendorNotFound.
	GetProfile(ctx context.Context, vendorID string) (*entity.VendorProfile, error)
}

// ProductStore resolves products referenced by line items.
type ProductStore interface {
	// GetProducts returns the products for the given ids, keyed by id.
	// Missing ids are absent from the map, not an error.
	GetProducts(ctx context.Context, ids []string) (map[string]entity.Product, error)
}

// Notifier receives order status transitions. Calls are fire-and-forget:
// they must not block and must never fail the orchestration that made them.
type Notifier interface {
	Notify(orderID string, status entity.OrderStatus)
}
