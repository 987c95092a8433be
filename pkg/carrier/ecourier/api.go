package ecourier

import (
	"context"
)

// APIClient defines the interface for eCourier API operations. This
// abstraction allows for mock implementations during testing and real
// implementations in production.
type APIClient interface {
	// PlaceOrder books a new parcel shipment
	PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error)

	// CancelOrder cancels an existing shipment by tracking number
	CancelOrder(ctx context.Context, req *CancelOrderRequest) (*CancelOrderResponse, error)
}

// ============================================================================
// API Request/Response Types (match the eCourier merchant API structure)
// ============================================================================

// PlaceOrderRequest represents an eCourier shipment booking request.
// POST /order-place endpoint
type PlaceOrderRequest struct {
	ConsignmentNo string `json:"consignment_no"` // merchant-side idempotency key
	PickupDate    string `json:"pickup_date"`    // YYYY-MM-DD

	SenderName     string `json:"sender_name"`
	SenderPhone    string `json:"sender_phone"`
	SenderHouse    string `json:"sender_house"`
	SenderBuilding string `json:"sender_building,omitempty"`
	SenderArea     string `json:"sender_area"`
	SenderCity     string `json:"sender_city,omitempty"`
	SenderPostCode string `json:"sender_post_code,omitempty"`
	SenderCountry  string `json:"sender_country"`

	RecipientName     string `json:"recipient_name"`
	RecipientPhone    string `json:"recipient_phone"`
	RecipientAddress  string `json:"recipient_address"`
	RecipientCity     string `json:"recipient_city"`
	RecipientArea     string `json:"recipient_area,omitempty"`
	RecipientPostCode string `json:"recipient_post_code,omitempty"`
	RecipientCountry  string `json:"recipient_country"`

	PackageWeight      float64 `json:"package_weight"` // kg, must be > 0
	NumPieces          int     `json:"num_pieces"`
	ProductDescription string  `json:"product_description,omitempty"`
}

// PlaceOrderResponse represents the eCourier shipment booking response.
type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	AWB     string `json:"awb"` // air waybill / tracking number
	Message string `json:"message,omitempty"`
}

// CancelOrderRequest represents an eCourier cancellation request.
// POST /order-cancel endpoint
type CancelOrderRequest struct {
	TrackingNo string `json:"tracking_no"`
	Reason     string `json:"reason,omitempty"`
}

// CancelOrderResponse represents the eCourier cancellation response.
type CancelOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// APIError represents an error payload from the eCourier API.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"` // field-level errors
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
