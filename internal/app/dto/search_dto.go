package dto

import (
	"fmt"
	"net/http"

	"github.com/avelora/flight-booking-service/internal/pkg/exception"
)

// ODSegment is one requested origin-destination leg of the journey.
type ODSegment struct {
	Origin        string `json:"origin" validate:"required,iata"`
	Destination   string `json:"destination" validate:"required,iata"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
}

// SearchCriteria is the body of the offer search endpoint.
type SearchCriteria struct {
	TripType             string        `json:"trip_type" validate:"required,oneof=one-way round-trip multi-city"`
	ODSegments           []ODSegment   `json:"od_segments" validate:"required,min=1,dive"`
	NumAdults            int           `json:"num_adults" validate:"required,min=1,max=9"`
	NumChildren          int           `json:"num_children" validate:"min=0,max=9"`
	NumInfants           int           `json:"num_infants" validate:"min=0,max=9"`
	CabinPreference string `json:"cabin_preference" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`

	// EnableRoundtripSplit applies to round-trip searches only: each offer
	// is decomposed into its outbound and return legs. Multi-city journeys
	// have no two-leg decomposition and are always returned whole.
	EnableRoundtripSplit bool `json:"enable_roundtrip_split"`
	SortOption           *SortOption   `json:"sort_option,omitempty"`
	FilterOption         *FilterOption `json:"filter_option,omitempty"`
}

func (s *SearchCriteria) Bind(r *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *SearchCriteria) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	if s.TripType == "round-trip" && len(s.ODSegments) != 2 {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "round-trip searches require exactly two od_segments",
		}
	}

	if s.SortOption != nil && !AllowedSortField[s.SortOption.Field] {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("Invalid sort field %s", s.SortOption.Field),
		}
	}

	if s.FilterOption != nil {
		if s.FilterOption.MinPrice != nil && s.FilterOption.MaxPrice != nil &&
			*s.FilterOption.MaxPrice <= *s.FilterOption.MinPrice {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "max_price must be greater than min_price",
			}
		}

		if s.FilterOption.MaxStops != nil && *s.FilterOption.MaxStops < 0 {
			return exception.ApplicationError{
				StatusCode: http.StatusBadRequest,
				Message:    "max_stops must not be negative",
			}
		}
	}

	return nil
}

type SortOption struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

var AllowedSortField = map[string]bool{
	"price":          true,
	"duration":       true,
	"stops":          true,
	"departure_time": true,
}

type FilterOption struct {
	MinPrice           *float64 `json:"min_price,omitempty" validate:"omitempty,gt=0"`
	MaxPrice           *float64 `json:"max_price,omitempty" validate:"omitempty,gt=0"`
	MaxStops           *int     `json:"max_stops,omitempty"`
	Airline            *string  `json:"airline,omitempty"`
	MaxDurationMinutes *int     `json:"max_duration_minutes,omitempty" validate:"omitempty,gte=0"`
}

// PriceCriteria is the body of the offer pricing endpoint. The pair
// (offer id, shopping response id) keys the upstream pricing call.
type PriceCriteria struct {
	OfferID            string `json:"offer_id" validate:"required"`
	ShoppingResponseID string `json:"shopping_response_id" validate:"required"`
}

func (p *PriceCriteria) Bind(r *http.Request) error {
	if err := ValidateSingleError(p); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

// Metadata describes one search response for diagnostic consumers.
type Metadata struct {
	TotalResults       int    `json:"total_results"`
	DroppedOffers      int    `json:"dropped_offers"`
	ShoppingResponseID string `json:"shopping_response_id"`
	SearchTimeMs       int    `json:"search_time_ms"`
	CacheHit           bool   `json:"cache_hit"`
}

// SearchOffersResponse is the response struct for the offer search endpoint.
type SearchOffersResponse struct {
	SearchCriteria SearchCriteria   `json:"search_criteria"`
	Metadata       Metadata         `json:"metadata"`
	Offers         []CanonicalOffer `json:"offers"`
}

// PriceOfferResponse carries the canonical per passenger-type breakdowns of
// one repriced offer.
type PriceOfferResponse struct {
	OfferID            string                 `json:"offer_id"`
	ShoppingResponseID string                 `json:"shopping_response_id"`
	PricedOffers       []PricedOfferBreakdown `json:"priced_offers"`
}
