package offer

import (
	"github.com/avelora/flight-booking-service/internal/app/dto"
)

func FilterOffers(offers []dto.CanonicalOffer, filterOpts *dto.FilterOption) []dto.CanonicalOffer {
	if filterOpts == nil {
		return offers
	}

	results := make([]dto.CanonicalOffer, 0, len(offers))

	for _, offer := range offers {
		if filterOpts.Airline != nil && *filterOpts.Airline != offer.Airline.Code {
			continue
		}

		if filterOpts.MaxPrice != nil && offer.Price > *filterOpts.MaxPrice {
			continue
		}

		if filterOpts.MinPrice != nil && offer.Price < *filterOpts.MinPrice {
			continue
		}

		if filterOpts.MaxStops != nil && offer.Stops > *filterOpts.MaxStops {
			continue
		}

		if filterOpts.MaxDurationMinutes != nil && offer.DurationMins > *filterOpts.MaxDurationMinutes {
			continue
		}

		results = append(results, offer)
	}

	return results
}
