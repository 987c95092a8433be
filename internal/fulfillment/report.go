package fulfillment

import (
	"sort"
)

// LegStatus classifies the outcome of one vendor leg.
type LegStatus string

const (
	// LegSucceeded means the carrier call succeeded and state was recorded.
	LegSucceeded LegStatus = "succeeded"

	// LegFailed means the carrier call or the state write failed; the leg is
	// safe to retry by re-invoking the orchestration.
	LegFailed LegStatus = "failed"

	// LegAlreadyFulfilled means the group already carried a tracking
	// identifier and no carrier call was made.
	LegAlreadyFulfilled LegStatus = "already_fulfilled"

	// LegNotApplicable means there was nothing to do for the leg, e.g.
	// cancelling items that never shipped.
	LegNotApplicable LegStatus = "not_applicable"
)

// FulfillmentLeg is the outcome of one vendor's shipment-create call.
type FulfillmentLeg struct {
	VendorID   string    `json:"vendor_id"`
	Status     LegStatus `json:"status"`
	TrackingNo string    `json:"tracking_no,omitempty"`
	Error      string    `json:"error,omitempty"`
	ItemIDs    []string  `json:"item_ids"`
}

// FulfillmentReport is the aggregate, per-vendor outcome of one Fulfill call.
// Partial failure is a normal outcome, not an error.
type FulfillmentReport struct {
	OrderID string           `json:"order_id"`
	Legs    []FulfillmentLeg `json:"legs"`
}

// Succeeded counts legs that booked a shipment in this run.
func (r *FulfillmentReport) Succeeded() int {
	return r.count(LegSucceeded)
}

// Failed counts failed legs.
func (r *FulfillmentReport) Failed() int {
	return r.count(LegFailed)
}

// AllFulfilled reports whether every vendor group now carries a tracking
// identifier, whether booked in this run or a previous one.
func (r *FulfillmentReport) AllFulfilled() bool {
	for _, leg := range r.Legs {
		if leg.Status != LegSucceeded && leg.Status != LegAlreadyFulfilled {
			return false
		}
	}
	return len(r.Legs) > 0
}

func (r *FulfillmentReport) count(status LegStatus) int {
	n := 0
	for _, leg := range r.Legs {
		if leg.Status == status {
			n++
		}
	}
	return n
}

// CancellationLeg is the outcome of one vendor's shipment-cancel call.
type CancellationLeg struct {
	VendorID   string    `json:"vendor_id"`
	Status     LegStatus `json:"status"`
	TrackingNo string    `json:"tracking_no,omitempty"`
	Error      string    `json:"error,omitempty"`
	ItemIDs    []string  `json:"item_ids"`
}

// CancellationReport is the aggregate, per-vendor outcome of one Cancel call.
type CancellationReport struct {
	OrderID string            `json:"order_id"`
	Legs    []CancellationLeg `json:"legs"`
}

// Failed counts failed cancel legs.
func (r *CancellationReport) Failed() int {
	n := 0
	for _, leg := range r.Legs {
		if leg.Status == LegFailed {
			n++
		}
	}
	return n
}

// Cancelled counts legs whose shipment was cancelled in this run.
func (r *CancellationReport) Cancelled() int {
	n := 0
	for _, leg := range r.Legs {
		if leg.Status == LegSucceeded {
			n++
		}
	}
	return n
}

// Leg ordering between vendors carries no meaning; reports are sorted by
// vendor id only so repeated runs serialize identically.

func sortFulfillmentLegs(legs []FulfillmentLeg) {
	sort.Slice(legs, func(i, j int) bool { return legs[i].VendorID < legs[j].VendorID })
}

func sortCancellationLegs(legs []CancellationLeg) {
	sort.Slice(legs, func(i, j int) bool { return legs[i].VendorID < legs[j].VendorID })
}
