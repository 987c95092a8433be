package entity

// Product is the subset of the catalog's product this service reads:
// the description shown on shipment paperwork and the declared shipping
// weight in kg. A zero weight means the vendor never declared one.
type Product struct {
	ID     string
	Name   string
	Weight float64
}
