package dto

// CanonicalOffer is the stable output unit of the normalization engine and
// the data contract for everything downstream of it. Segments are owned
// copies, never shared between offers.
type CanonicalOffer struct {
	ID             string         `json:"id"`
	Airline        Airline        `json:"airline"`
	Departure      SegmentPoint   `json:"departure"`
	Arrival        SegmentPoint   `json:"arrival"`
	Duration       string         `json:"duration"`
	DurationMins   int            `json:"duration_minutes"`
	Stops          int            `json:"stops"`
	StopDetails    []string       `json:"stop_details"`
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	SeatsAvailable string         `json:"seats_available"`
	Baggage        Baggage        `json:"baggage"`
	Penalties      []Penalty      `json:"penalties"`
	FareRules      FareRules      `json:"fare_rules"`
	Segments       []Segment      `json:"segments"`
	PriceBreakdown PriceBreakdown `json:"price_breakdown"`
	TripType       string         `json:"trip_type,omitempty"`
	Direction      string         `json:"direction,omitempty"`
}

type Airline struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Logo         string `json:"logo"`
	FlightNumber string `json:"flight_number"`
}

// SegmentPoint is one end of a flown segment.
type SegmentPoint struct {
	Airport     string  `json:"airport"`
	AirportName string  `json:"airport_name"`
	Datetime    string  `json:"datetime"`
	Time        string  `json:"time,omitempty"`
	Terminal    *string `json:"terminal,omitempty"`
}

type Segment struct {
	Departure    SegmentPoint `json:"departure"`
	Arrival      SegmentPoint `json:"arrival"`
	FlightNumber string       `json:"flight_number"`
	AirlineName  string       `json:"airline_name"`
	Aircraft     Aircraft     `json:"aircraft"`
	Duration     string       `json:"duration"`
}

type Aircraft struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type Baggage struct {
	CarryOn string `json:"carry_on"`
	Checked string `json:"checked"`
}

// Penalty is one flat raw penalty entry, retained on the offer for backward
// compatibility with consumers that predate FareRules.
type Penalty struct {
	Type        string   `json:"type"`
	Application string   `json:"application"`
	Amount      float64  `json:"amount"`
	Currency    string   `json:"currency"`
	Remarks     []string `json:"remarks,omitempty"`
	Refundable  bool     `json:"refundable"`
	CancelFee   bool     `json:"cancel_fee"`
}

// FeeRange is an aggregated MIN/MAX penalty fee bound.
type FeeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FareRule is the aggregated penalty view for one action and departure
// window at the origin-destination level.
type FareRule struct {
	Allowed          bool     `json:"allowed"`
	Fee              FeeRange `json:"fee"`
	Currency         string   `json:"currency"`
	Conditions       *string  `json:"conditions,omitempty"`
	RefundPercentage *float64 `json:"refund_percentage,omitempty"`
}

type FareRules struct {
	ChangeBeforeDeparture *FareRule `json:"change_before_departure,omitempty"`
	ChangeAfterDeparture  *FareRule `json:"change_after_departure,omitempty"`
	CancelBeforeDeparture *FareRule `json:"cancel_before_departure,omitempty"`
	CancelAfterDeparture  *FareRule `json:"cancel_after_departure,omitempty"`
	Refundable            bool      `json:"refundable"`
	Exchangeable          bool      `json:"exchangeable"`
	ChangeFee             bool      `json:"change_fee"`
}

type PriceBreakdown struct {
	BaseFare   float64 `json:"base_fare"`
	Taxes      float64 `json:"taxes"`
	Fees       float64 `json:"fees"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}
