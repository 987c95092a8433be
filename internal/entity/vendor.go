package entity

// OriginAddress is a structured vendor pickup address. Profiles that carry
// one bypass the free-text location heuristic entirely.
type OriginAddress struct {
	House      string
	Building   string
	Area       string
	City       string
	PostalCode string
}

// VendorProfile is owned by the Vendor Service and read here only to
// populate the origin side of a shipment request.
type VendorProfile struct {
	ID        string
	StoreName string
	OwnerName string
	Phone     string
	Location  string // free-text pickup location, used when Origin is absent
	Origin    *OriginAddress
}
