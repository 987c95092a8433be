package entity

import (
	"errors"
)

// Precondition and lookup sentinels. Order-level preconditions abort a whole
// orchestration call; vendor and product lookups failing only fail the one
// leg that needed them.
var (
	// ErrOrderNotFound indicates the order id does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNoLineItems indicates the order has no line items to ship.
	ErrNoLineItems = errors.New("order has no line items")

	// ErrVendorNotFound indicates the vendor profile does not exist.
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrProductNotFound indicates a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrDataNotFound is the generic repository no-rows sentinel.
	ErrDataNotFound = errors.New("data not found")
)
