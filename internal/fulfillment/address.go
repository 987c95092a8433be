package fulfillment

import (
	"strings"

	"github.com/tournevent/fulfillment/internal/entity"
	"github.com/tournevent/fulfillment/pkg/carrier"
)

// addressFallback is used for origin address positions that cannot be
// determined from a vendor's free-text location.
const addressFallback = "N/A"

// originAddress builds the carrier origin address for a vendor profile.
// A structured origin address on the profile is used as-is; otherwise the
// free-text location is split best-effort. The sender name falls back from
// store name to owner name.
func originAddress(profile *entity.VendorProfile, countryCode string) carrier.Address {
	name := profile.StoreName
	if name == "" {
		name = profile.OwnerName
	}

	addr := carrier.Address{
		Name:        name,
		Phone:       profile.Phone,
		CountryCode: countryCode,
	}

	if profile.Origin != nil {
		addr.House = orFallback(profile.Origin.House)
		addr.Building = orFallback(profile.Origin.Building)
		addr.Area = orFallback(profile.Origin.Area)
		addr.City = profile.Origin.City
		addr.PostalCode = profile.Origin.PostalCode
		return addr
	}

	addr.House, addr.Building, addr.Area = splitLocation(profile.Location)
	return addr
}

// splitLocation splits a free-text vendor location on commas into house,
// building and area by position. This is a best-effort heuristic, not a
// guarantee: vendors enter the field free-form, so each position falls back
// to "N/A" when it cannot be determined.
func splitLocation(location string) (house, building, area string) {
	house, building, area = addressFallback, addressFallback, addressFallback

	parts := strings.Split(location, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}

	if len(tokens) > 0 {
		house = tokens[0]
	}
	if len(tokens) > 1 {
		building = tokens[1]
	}
	if len(tokens) > 2 {
		// Anything beyond the third token belongs to the area.
		area = strings.Join(tokens[2:], ", ")
	}
	return house, building, area
}

func orFallback(s string) string {
	if s == "" {
		return addressFallback
	}
	return s
}
