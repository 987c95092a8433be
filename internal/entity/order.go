// Package entity holds the domain types shared across the service.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the overall status of an order.
type OrderStatus string

const (
	OrderUnpaid    OrderStatus = "unpaid"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// LineItemStatus represents the status of a single line item, independent of
// the order's overall status.
type LineItemStatus string

const (
	LineItemPending   LineItemStatus = "pending"
	LineItemShipped   LineItemStatus = "shipped"
	LineItemDelivered LineItemStatus = "delivered"
	LineItemCancelled LineItemStatus = "cancelled"
)

// ShippingAddress is the destination side of an order.
type ShippingAddress struct {
	Name        string
	Phone       string
	AddressLine string
	City        string
	Area        string
	PostalCode  string
	CountryCode string
}

// Order is owned by the Order Service; this service reads it and mutates its
// status through shipment-driven transitions only.
type Order struct {
	ID          string
	CustomerID  string
	Status      OrderStatus
	Destination ShippingAddress
	CreatedAt   time.Time
}

// LineItem is one product line of an order. ShippingID carries the carrier
// tracking identifier once the item's vendor group has been fulfilled; all
// line items of the same (order, vendor) pair share one ShippingID.
type LineItem struct {
	ID         string
	OrderID    string
	ProductID  string
	VendorID   string
	Quantity   int
	UnitPrice  decimal.Decimal
	Status     LineItemStatus
	ShippingID string
}
