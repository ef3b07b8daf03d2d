package ndc

import (
	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/avelora/flight-booking-service/internal/pkg/utils"
)

const (
	TripTypeOneWay    = "one-way"
	TripTypeRoundTrip = "round-trip"
	TripTypeMultiCity = "multi-city"

	DirectionOutbound = "outbound"
	DirectionReturn   = "return"
)

// SplitRoundTrip decomposes a round-trip offer into one offer per
// directional leg. Splitting is lossless: the two legs' segment lists
// concatenate to exactly the parent's list, and the full round-trip price is
// carried on each leg (deliberately not divided; see splitter tests).
//
// Returns ErrSplitDetection when no leg boundary exists, which includes the
// single-direction case: splitting an already-split leg is a no-op.
func SplitRoundTrip(parent normalizedOffer) (normalizedOffer, normalizedOffer, error) {
	segments := parent.Offer.Segments
	if len(segments) < 2 {
		return normalizedOffer{}, normalizedOffer{}, ErrSplitDetection
	}

	origin := segments[0].Departure.Airport
	finalDestination := segments[len(segments)-1].Arrival.Airport

	if origin == "" || origin != finalDestination {
		return normalizedOffer{}, normalizedOffer{}, ErrSplitDetection
	}

	boundary := reversalBoundary(segments)
	if boundary < 0 {
		boundary = longestLayoverBoundary(segments)
	}

	if boundary < 0 {
		return normalizedOffer{}, normalizedOffer{}, ErrSplitDetection
	}

	outbound := buildLeg(parent, 0, boundary+1, DirectionOutbound)
	inbound := buildLeg(parent, boundary+1, len(segments), DirectionReturn)

	return outbound, inbound, nil
}

// reversalBoundary finds the boundary where the next segment exactly
// reverses the current one: arrival equals the next departure and the next
// arrival equals the current departure. This is the auditable form of
// "overall direction reverses" for mirror-routed round trips.
func reversalBoundary(segments []dto.Segment) int {
	for i := 0; i < len(segments)-1; i++ {
		current, next := segments[i], segments[i+1]

		if current.Arrival.Airport == next.Departure.Airport &&
			next.Arrival.Airport == current.Departure.Airport {
			return i
		}
	}

	return -1
}

// longestLayoverBoundary handles asymmetric return routings: the turnaround
// point is the boundary with the longest ground time. Requires parseable
// timestamps on both sides of at least one boundary.
func longestLayoverBoundary(segments []dto.Segment) int {
	best := -1

	var bestGap float64

	for i := 0; i < len(segments)-1; i++ {
		arrival, err := parseLocalDatetime(segments[i].Arrival.Datetime)
		if err != nil {
			continue
		}

		departure, err := parseLocalDatetime(segments[i+1].Departure.Datetime)
		if err != nil {
			continue
		}

		gap := departure.Sub(arrival).Minutes()
		if gap > bestGap {
			bestGap = gap
			best = i
		}
	}

	return best
}

func buildLeg(parent normalizedOffer, from, to int, direction string) normalizedOffer {
	segments := make([]dto.Segment, to-from)
	copy(segments, parent.Offer.Segments[from:to])

	var refs []string
	if len(parent.SegmentRefs) == len(parent.Offer.Segments) {
		refs = make([]string, to-from)
		copy(refs, parent.SegmentRefs[from:to])
	}

	stops := len(segments) - 1

	stopDetails := make([]string, 0, stops)
	for i := 1; i < len(segments); i++ {
		stopDetails = append(stopDetails, segments[i].Departure.Airport)
	}

	totalMinutes := 0
	for _, seg := range segments {
		totalMinutes += utils.ParseISODuration(seg.Duration)
	}

	duration := utils.ConvertMinutesToDuration(int64(totalMinutes))
	if totalMinutes == 0 {
		duration = datetimeDuration(segments[0], segments[len(segments)-1])
		totalMinutes = int(utils.ConvertDurationToMinutes(duration))
	}

	leg := parent.Offer
	leg.ID = parent.Offer.ID + "-" + direction
	leg.Segments = segments
	leg.Departure = segments[0].Departure
	leg.Arrival = segments[len(segments)-1].Arrival
	leg.Duration = duration
	leg.DurationMins = totalMinutes
	leg.Stops = stops
	leg.StopDetails = stopDetails
	leg.TripType = TripTypeRoundTrip
	leg.Direction = direction
	leg.Airline.FlightNumber = leg.Airline.Code + segments[0].FlightNumber

	return normalizedOffer{
		Offer:       leg,
		Records:     parent.Records,
		SegmentRefs: refs,
	}
}
