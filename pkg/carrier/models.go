package carrier

// Address represents one side of a shipment.
type Address struct {
	Name        string
	Phone       string
	House       string // house or building number
	Building    string
	Area        string
	City        string
	PostalCode  string
	CountryCode string // ISO 3166-1 alpha-2, e.g., "BD", "CA"
}

// ShipmentRequest is the carrier-agnostic shipment booking request.
//
// ConsignmentNo is the idempotency key: carriers deduplicate on it, so it
// must be stable across retries of the same shipment. Requests are built
// fresh per call and never persisted.
type ShipmentRequest struct {
	ConsignmentNo string
	Origin        Address
	Destination   Address
	Weight        float64 // kg; carriers reject zero weight
	Pieces        int
	Description   string
	PickupDate    string // YYYY-MM-DD
}

// ShipmentResult is the outcome of a successful shipment booking.
type ShipmentResult struct {
	TrackingNo string // carrier-issued AWB
	Carrier    string
	Message    string
}

// CancelRequest asks the carrier to cancel a shipment.
type CancelRequest struct {
	TrackingNo string
	Reason     string
}

// CancelResult is the carrier's response to a cancellation.
type CancelResult struct {
	TrackingNo string
	Cancelled  bool
	Message    string
}
