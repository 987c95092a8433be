package fulfillment

import (
	"time"

	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/pkg/carrier"
)

// pickupDateFormat is the date layout the carrier expects.
const pickupDateFormat = "2006-01-02"

// RequestBuilder maps (order, vendor group, vendor profile) to a
// carrier-agnostic shipment request. Pure: no I/O.
type RequestBuilder struct {
	originCountry string
	now           func() time.Time
}

// NewRequestBuilder creates a builder. The origin country code is fixed per
// deployment and injected from configuration.
func NewRequestBuilder(originCountry string) *RequestBuilder {
	return &RequestBuilder{
		originCountry: originCountry,
		now:           time.Now,
	}
}

// Build produces the shipment request for one vendor group.
//
// The consignment number "{orderID}-{vendorID}" is the idempotency key and
// must be stable across retries of the same (order, vendor) pair. Pickup is
// scheduled for tomorrow relative to build time. Total weight is floored at
// 1 kg; carriers reject zero-weight shipments.
func (b *RequestBuilder) Build(order *entity.Order, group *VendorGroup, profile *entity.VendorProfile) *carrier.ShipmentRequest {
	weight := group.Weight
	if weight < 1 {
		weight = 1
	}

	return &carrier.ShipmentRequest{
		ConsignmentNo: ConsignmentNo(order.ID, group.VendorID),
		Origin:        originAddress(profile, b.originCountry),
		Destination:   destinationAddress(order),
		Weight:        weight,
		Pieces:        group.Pieces,
		Description:   group.Description,
		PickupDate:    b.now().AddDate(0, 0, 1).Format(pickupDateFormat),
	}
}

// ConsignmentNo derives the idempotency key for one (order, vendor) shipment.
func ConsignmentNo(orderID, vendorID string) string {
	return orderID + "-" + vendorID
}

func destinationAddress(order *entity.Order) carrier.Address {
	dest := order.Destination
	return carrier.Address{
		Name:        dest.Name,
		Phone:       dest.Phone,
		House:       dest.AddressLine,
		Area:        dest.Area,
		City:        dest.City,
		PostalCode:  dest.PostalCode,
		CountryCode: dest.CountryCode,
	}
}
