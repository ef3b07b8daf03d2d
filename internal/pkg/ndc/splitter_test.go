//go:build unit

package ndc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

func testSegment(flightNumber, from, to, dep, arr, duration string) dto.Segment {
	return dto.Segment{
		Departure:    dto.SegmentPoint{Airport: from, Datetime: dep},
		Arrival:      dto.SegmentPoint{Airport: to, Datetime: arr},
		FlightNumber: flightNumber,
		Duration:     duration,
	}
}

func mirrorRoundTrip() normalizedOffer {
	segments := []dto.Segment{
		testSegment("100", "CGK", "DPS", "2026-09-01T08:00:00", "2026-09-01T11:00:00", "PT3H"),
		testSegment("101", "DPS", "CGK", "2026-09-05T14:00:00", "2026-09-05T17:00:00", "PT3H"),
	}

	return normalizedOffer{
		Offer: dto.CanonicalOffer{
			ID:        "OFFER-1",
			Airline:   dto.Airline{Code: "GA", FlightNumber: "GA100"},
			Departure: segments[0].Departure,
			Arrival:   segments[1].Arrival,
			Price:     500,
			Currency:  "USD",
			Segments:  segments,
		},
		SegmentRefs: []string{"SEG1", "SEG2"},
	}
}

func TestSplitRoundTrip_MirrorRoute(t *testing.T) {
	parent := mirrorRoundTrip()

	outbound, inbound, err := SplitRoundTrip(parent)
	if err != nil {
		t.Fatalf("SplitRoundTrip returned error: %v", err)
	}

	if outbound.Offer.ID != "OFFER-1-outbound" || inbound.Offer.ID != "OFFER-1-return" {
		t.Fatalf("unexpected leg ids: %q, %q", outbound.Offer.ID, inbound.Offer.ID)
	}

	if outbound.Offer.Direction != DirectionOutbound || inbound.Offer.Direction != DirectionReturn {
		t.Fatalf("unexpected directions: %q, %q", outbound.Offer.Direction, inbound.Offer.Direction)
	}

	// Lossless: the legs concatenate to exactly the parent segment list.
	recombined := append([]dto.Segment{}, outbound.Offer.Segments...)
	recombined = append(recombined, inbound.Offer.Segments...)

	diff := cmp.Diff(parent.Offer.Segments, recombined)
	if diff != "" {
		t.Fatalf("split lost segments (-parent +recombined):\n%s", diff)
	}

	if outbound.Offer.Departure.Airport != "CGK" || outbound.Offer.Arrival.Airport != "DPS" {
		t.Fatalf("unexpected outbound endpoints: %+v", outbound.Offer)
	}

	if inbound.Offer.Departure.Airport != "DPS" || inbound.Offer.Arrival.Airport != "CGK" {
		t.Fatalf("unexpected return endpoints: %+v", inbound.Offer)
	}

	if got := outbound.SegmentRefs; len(got) != 1 || got[0] != "SEG1" {
		t.Fatalf("unexpected outbound segment refs: %v", got)
	}

	if got := inbound.SegmentRefs; len(got) != 1 || got[0] != "SEG2" {
		t.Fatalf("unexpected return segment refs: %v", got)
	}
}

// The full round-trip price is deliberately carried whole on each leg. The
// vendor prices the itinerary as a unit; halving would present amounts no
// airline would honor.
func TestSplitRoundTrip_PriceCarriedWhole(t *testing.T) {
	parent := mirrorRoundTrip()

	outbound, inbound, err := SplitRoundTrip(parent)
	if err != nil {
		t.Fatalf("SplitRoundTrip returned error: %v", err)
	}

	if outbound.Offer.Price != 500 || inbound.Offer.Price != 500 {
		t.Fatalf("expected whole price 500 on both legs, got %g and %g",
			outbound.Offer.Price, inbound.Offer.Price)
	}
}

func TestSplitRoundTrip_Idempotent(t *testing.T) {
	parent := mirrorRoundTrip()

	outbound, _, err := SplitRoundTrip(parent)
	if err != nil {
		t.Fatalf("SplitRoundTrip returned error: %v", err)
	}

	// A single-direction leg has no boundary: re-splitting refuses rather
	// than producing smaller pieces.
	_, _, err = SplitRoundTrip(outbound)
	if !errors.Is(err, ErrSplitDetection) {
		t.Fatalf("expected ErrSplitDetection on re-split, got %v", err)
	}
}

func TestSplitRoundTrip_MultiSegmentLegs(t *testing.T) {
	segments := []dto.Segment{
		testSegment("200", "CGK", "SIN", "2026-09-01T08:00:00", "2026-09-01T10:00:00", "PT2H"),
		testSegment("201", "SIN", "DPS", "2026-09-01T12:00:00", "2026-09-01T15:00:00", "PT3H"),
		testSegment("202", "DPS", "SIN", "2026-09-05T09:00:00", "2026-09-05T12:00:00", "PT3H"),
		testSegment("203", "SIN", "CGK", "2026-09-05T14:00:00", "2026-09-05T16:00:00", "PT2H"),
	}

	parent := normalizedOffer{
		Offer: dto.CanonicalOffer{
			ID:       "OFFER-2",
			Airline:  dto.Airline{Code: "SQ"},
			Price:    900,
			Segments: segments,
		},
		SegmentRefs: []string{"SEG1", "SEG2", "SEG3", "SEG4"},
	}

	outbound, inbound, err := SplitRoundTrip(parent)
	if err != nil {
		t.Fatalf("SplitRoundTrip returned error: %v", err)
	}

	if len(outbound.Offer.Segments) != 2 || len(inbound.Offer.Segments) != 2 {
		t.Fatalf("expected 2+2 segments, got %d+%d",
			len(outbound.Offer.Segments), len(inbound.Offer.Segments))
	}

	if outbound.Offer.Stops != 1 || inbound.Offer.Stops != 1 {
		t.Fatalf("expected 1 stop per leg, got %d and %d", outbound.Offer.Stops, inbound.Offer.Stops)
	}

	if outbound.Offer.DurationMins != 300 {
		t.Fatalf("expected outbound duration 300 minutes, got %d", outbound.Offer.DurationMins)
	}

	if len(outbound.Offer.StopDetails) != 1 || outbound.Offer.StopDetails[0] != "SIN" {
		t.Fatalf("unexpected outbound stop details: %v", outbound.Offer.StopDetails)
	}
}

// Asymmetric routings have no mirrored boundary; the turnaround is the
// longest ground gap.
func TestSplitRoundTrip_LongestLayoverFallback(t *testing.T) {
	segments := []dto.Segment{
		testSegment("300", "CGK", "SIN", "2026-09-01T08:00:00", "2026-09-01T10:00:00", "PT2H"),
		testSegment("301", "SIN", "DPS", "2026-09-01T12:00:00", "2026-09-01T15:00:00", "PT3H"),
		// three-day turnaround here
		testSegment("302", "DPS", "KUL", "2026-09-04T09:00:00", "2026-09-04T12:00:00", "PT3H"),
		testSegment("303", "KUL", "CGK", "2026-09-04T14:00:00", "2026-09-04T16:00:00", "PT2H"),
	}

	parent := normalizedOffer{
		Offer: dto.CanonicalOffer{ID: "OFFER-3", Segments: segments},
	}

	outbound, inbound, err := SplitRoundTrip(parent)
	if err != nil {
		t.Fatalf("SplitRoundTrip returned error: %v", err)
	}

	if outbound.Offer.Arrival.Airport != "DPS" {
		t.Fatalf("expected turnaround at DPS, outbound ends at %q", outbound.Offer.Arrival.Airport)
	}

	if inbound.Offer.Departure.Airport != "DPS" {
		t.Fatalf("expected return to start at DPS, got %q", inbound.Offer.Departure.Airport)
	}
}

func TestSplitRoundTrip_DetectionFailures(t *testing.T) {
	failureRequest := func(segments []dto.Segment) func(t *testing.T) {
		return func(t *testing.T) {
			_, _, err := SplitRoundTrip(normalizedOffer{
				Offer: dto.CanonicalOffer{Segments: segments},
			})
			if !errors.Is(err, ErrSplitDetection) {
				t.Fatalf("expected ErrSplitDetection, got %v", err)
			}
		}
	}

	t.Run("single_segment", failureRequest([]dto.Segment{
		testSegment("1", "CGK", "DPS", "2026-09-01T08:00:00", "2026-09-01T11:00:00", "PT3H"),
	}))

	t.Run("one_way_multi_segment", failureRequest([]dto.Segment{
		testSegment("1", "CGK", "SIN", "2026-09-01T08:00:00", "2026-09-01T10:00:00", "PT2H"),
		testSegment("2", "SIN", "NRT", "2026-09-01T12:00:00", "2026-09-01T19:00:00", "PT7H"),
	}))

	t.Run("no_segments", failureRequest(nil))
}
