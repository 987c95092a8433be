package entity

import (
	"time"
)

// Notification is an in-app notification record for a customer about an
// order status transition.
type Notification struct {
	ID         string
	CustomerID string
	OrderID    string
	Status     OrderStatus
	CreatedAt  time.Time
}
