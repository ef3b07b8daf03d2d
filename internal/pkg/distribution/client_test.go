//go:build unit

package distribution

import (
	"testing"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

func TestBuildAirShoppingPayload_Closure(t *testing.T) {
	payloadRequest := func(criteria dto.SearchCriteria, check func(t *testing.T, payload map[string]interface{})) func(t *testing.T) {
		return func(t *testing.T) {
			check(t, buildAirShoppingPayload(criteria))
		}
	}

	t.Run("one_leg_per_od_segment", payloadRequest(
		dto.SearchCriteria{
			TripType: "round-trip",
			ODSegments: []dto.ODSegment{
				{Origin: "CGK", Destination: "DPS", DepartureDate: "2026-09-01"},
				{Origin: "DPS", Destination: "CGK", DepartureDate: "2026-09-05"},
			},
			NumAdults: 1,
		},
		func(t *testing.T, payload map[string]interface{}) {
			ods := payload["OriginDestinations"].([]map[string]interface{})
			if len(ods) != 2 {
				t.Fatalf("expected 2 origin destinations, got %d", len(ods))
			}

			first := ods[0]["OriginLocation"].(map[string]string)
			if first["LocationCode"] != "CGK" {
				t.Fatalf("unexpected first origin: %v", first)
			}
		},
	))

	t.Run("cabin_defaults_to_economy", payloadRequest(
		dto.SearchCriteria{
			ODSegments: []dto.ODSegment{{Origin: "CGK", Destination: "DPS", DepartureDate: "2026-09-01"}},
			NumAdults:  1,
		},
		func(t *testing.T, payload map[string]interface{}) {
			prefs := payload["TravelPreferences"].(map[string]interface{})
			cabin := prefs["CabinPref"].([]map[string]string)[0]["CabinType"]
			if cabin != "ECONOMY" {
				t.Fatalf("expected default cabin ECONOMY, got %q", cabin)
			}
		},
	))

	t.Run("seat_counts_per_passenger_type", payloadRequest(
		dto.SearchCriteria{
			ODSegments:  []dto.ODSegment{{Origin: "CGK", Destination: "DPS", DepartureDate: "2026-09-01"}},
			NumAdults:   2,
			NumChildren: 1,
			NumInfants:  1,
		},
		func(t *testing.T, payload map[string]interface{}) {
			summary := payload["TravelerInfoSummary"].(map[string]interface{})
			seats := summary["SeatsRequested"].([]map[string]interface{})
			if len(seats) != 3 {
				t.Fatalf("expected 3 passenger type entries, got %d", len(seats))
			}

			if seats[0]["Code"] != "ADT" || seats[0]["Quantity"] != 2 {
				t.Fatalf("unexpected adult entry: %v", seats[0])
			}
		},
	))

	t.Run("zero_counts_omitted", payloadRequest(
		dto.SearchCriteria{
			ODSegments: []dto.ODSegment{{Origin: "CGK", Destination: "DPS", DepartureDate: "2026-09-01"}},
			NumAdults:  1,
		},
		func(t *testing.T, payload map[string]interface{}) {
			summary := payload["TravelerInfoSummary"].(map[string]interface{})
			seats := summary["SeatsRequested"].([]map[string]interface{})
			if len(seats) != 1 {
				t.Fatalf("expected only the adult entry, got %d", len(seats))
			}
		},
	))
}
