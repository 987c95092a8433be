package fulfillment

import (
	"github.com/tournevent/fulfillment/internal/entity"
)

// VendorGroup is the subset of one order's line items belonging to a single
// vendor, plus aggregated shipment metadata. Groups are derived fresh on
// every orchestration run and never persisted: line items can change between
// runs.
type VendorGroup struct {
	VendorID    string
	Items       []entity.LineItem
	Pieces      int     // sum of per-item quantities
	Weight      float64 // kg, with per-product defaulting applied
	Description string  // concatenated product names
}

// GroupByVendor partitions line items by vendor identifier. Every item lands
// in exactly one group; iteration order over the result is not defined.
//
// Weight aggregates the declared product weight per line item, substituting
// 1 kg for any product whose weight is absent or zero; carriers reject
// zero-weight shipments.
func GroupByVendor(items []entity.LineItem, products map[string]entity.Product) map[string]*VendorGroup {
	groups := make(map[string]*VendorGroup)
	for _, item := range items {
		g, ok := groups[item.VendorID]
		if !ok {
			g = &VendorGroup{VendorID: item.VendorID}
			groups[item.VendorID] = g
		}

		g.Items = append(g.Items, item)
		g.Pieces += item.Quantity

		p := products[item.ProductID]
		w := p.Weight
		if w <= 0 {
			w = 1
		}
		g.Weight += w

		if p.Name != "" {
			if g.Description != "" {
				g.Description += ", "
			}
			g.Description += p.Name
		}
	}
	return groups
}

// Fulfilled reports whether every line item in the group already carries a
// tracking identifier, i.e. the group's carrier call has succeeded before.
func (g *VendorGroup) Fulfilled() bool {
	for _, item := range g.Items {
		if item.ShippingID == "" {
			return false
		}
	}
	return len(g.Items) > 0
}

// TrackingNo returns the tracking identifier shared by the group's fulfilled
// line items, or "" if none of them has shipped.
func (g *VendorGroup) TrackingNo() string {
	for _, item := range g.Items {
		if item.ShippingID != "" {
			return item.ShippingID
		}
	}
	return ""
}

// ItemIDs returns the line item ids in the group.
func (g *VendorGroup) ItemIDs() []string {
	ids := make([]string, 0, len(g.Items))
	for _, item := range g.Items {
		ids = append(ids, item.ID)
	}
	return ids
}
