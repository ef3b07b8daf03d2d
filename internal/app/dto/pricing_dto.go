package dto

// PricedOfferBreakdown is the canonical form of one priced passenger-type
// block from an upstream pricing response: the flown segments, the fare
// basis, the per-traveler and totalled amounts, and the fee bounds. One
// pricing response yields one breakdown per passenger type.
type PricedOfferBreakdown struct {
	Segments             []PricedSegment `json:"segments"`
	FareBasis            string          `json:"fare_basis"`
	PassengerType        string          `json:"passenger_type"`
	TravelerCount        int             `json:"traveler_count"`
	BaggageAllowance     PricedBaggage   `json:"baggage_allowance"`
	Pricing              PTCPricing      `json:"pricing"`
	Penalties            PenaltyFees     `json:"penalties"`
	TotalAmountPerPTC    PTCTotal        `json:"total_amount_per_ptc"`
	OfferExpirationUTC   string          `json:"offer_expiration_utc,omitempty"`
	PaymentExpirationUTC string          `json:"payment_expiration_utc,omitempty"`
}

type PricedSegment struct {
	AirlineName    string `json:"airline_name"`
	FlightNumber   string `json:"flight_number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departure_date"`
	DepartureTime  string `json:"departure_time"`
	ArrivalDate    string `json:"arrival_date"`
	ArrivalTime    string `json:"arrival_time"`
	FlightDuration string `json:"flight_duration"`
}

// PricedBaggage keeps nil for allowances the carrier never stated;
// presentation distinguishes "none" from "unknown" here.
type PricedBaggage struct {
	CarryOnAllowance *string `json:"carry_on_allowance"`
	CheckedAllowance *string `json:"checked_allowance"`
}

// PTCPricing is the amount block for one passenger type: per-traveler
// figures plus the same figures multiplied by the traveler count.
type PTCPricing struct {
	BaseFarePerTraveler   float64 `json:"base_fare_per_traveler"`
	TaxesPerTraveler      float64 `json:"taxes_per_traveler"`
	DiscountPerTraveler   float64 `json:"discount_per_traveler"`
	TotalPricePerTraveler float64 `json:"total_price_per_traveler"`
	Currency              string  `json:"currency"`
	TravelerCount         int     `json:"traveler_count"`
	TotalBaseFare         float64 `json:"total_base_fare"`
	TotalTaxes            float64 `json:"total_taxes"`
	TotalDiscount         float64 `json:"total_discount"`
	TotalPrice            float64 `json:"total_price"`
}

// PenaltyFees is the flattened min/max fee view of a pricing response;
// richer windowed aggregation belongs to the shopping-side fare rules.
type PenaltyFees struct {
	CancelFeeMin float64 `json:"cancel_fee_min"`
	CancelFeeMax float64 `json:"cancel_fee_max"`
	ChangeFeeMin float64 `json:"change_fee_min"`
	ChangeFeeMax float64 `json:"change_fee_max"`
}

type PTCTotal struct {
	PassengerType string  `json:"passenger_type"`
	TravelerCount int     `json:"traveler_count"`
	PricePerPTC   float64 `json:"price_per_ptc"`
	Currency      string  `json:"currency"`
	TotalAmount   float64 `json:"total_amount"`
}
