package offer

import (
	"sort"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

// SortOffers orders the canonical offer collection for presentation. The
// engine returns offers unordered; any ordering is the caller's.
func SortOffers(offers []dto.CanonicalOffer, sortOption *dto.SortOption) []dto.CanonicalOffer {
	var (
		option = ""
		order  = "asc"
	)
	if sortOption != nil {
		option = sortOption.Field
		order = sortOption.Order
	}

	switch option {
	case "duration":
		sort.Slice(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].DurationMins < offers[j].DurationMins
			}

			return offers[i].DurationMins > offers[j].DurationMins
		})
	case "stops":
		sort.Slice(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].Stops < offers[j].Stops
			}

			return offers[i].Stops > offers[j].Stops
		})
	case "departure_time":
		// ISO-8601 datetimes sort lexicographically.
		sort.Slice(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].Departure.Datetime < offers[j].Departure.Datetime
			}

			return offers[i].Departure.Datetime > offers[j].Departure.Datetime
		})
	default:
		// price
		sort.Slice(offers, func(i, j int) bool {
			if order == "asc" {
				return offers[i].Price < offers[j].Price
			}

			return offers[i].Price > offers[j].Price
		})
	}

	return offers
}
