//go:build unit

package ndc

import "testing"

func testDataLists() DataLists {
	return DataLists{
		FlightSegmentList: &FlightSegmentList{
			FlightSegment: []FlightSegment{
				{SegmentKey: "SEG1"},
				{SegmentKey: "SEG2"},
			},
		},
		FlightList: &FlightList{
			Flight: []Flight{
				{FlightKey: "FL1", SegmentReferences: SegmentReferences{Value: []string{"SEG1", "SEG2"}}},
			},
		},
		PenaltyList: &PenaltyList{
			Penalty: []RawPenalty{
				{ObjectKey: "PEN1"},
			},
		},
		CarryOnAllowanceList: &CarryOnAllowanceList{
			CarryOnAllowance: []BaggageAllowance{{ListKey: "CO1"}},
		},
		CheckedBagAllowanceList: &CheckedBagAllowanceList{
			CheckedBagAllowance: []BaggageAllowance{{ListKey: "CB1"}},
		},
	}
}

func TestBuildReferenceIndex(t *testing.T) {
	rs := &AirShoppingRS{DataLists: testDataLists()}
	idx := BuildReferenceIndex(rs, nil)

	if idx.SegmentCount() != 2 {
		t.Fatalf("expected 2 indexed segments, got %d", idx.SegmentCount())
	}

	if idx.PenaltyCount() != 1 {
		t.Fatalf("expected 1 indexed penalty, got %d", idx.PenaltyCount())
	}

	if _, ok := idx.Segment("SEG1"); !ok {
		t.Fatal("expected SEG1 to resolve")
	}

	if _, ok := idx.Segment("SEG9"); ok {
		t.Fatal("expected SEG9 to miss")
	}

	refs, ok := idx.FlightSegments("FL1")
	if !ok || len(refs) != 2 {
		t.Fatalf("expected FL1 to resolve to 2 segment refs, got %v ok=%v", refs, ok)
	}

	if _, ok := idx.Penalty("PEN1"); !ok {
		t.Fatal("expected PEN1 to resolve")
	}

	if _, ok := idx.CarryOnAllowance("CO1"); !ok {
		t.Fatal("expected CO1 to resolve")
	}

	if _, ok := idx.CheckedBagAllowance("CB1"); !ok {
		t.Fatal("expected CB1 to resolve")
	}
}

func TestReferenceIndex_Airports(t *testing.T) {
	airportRequest := func(rs *AirShoppingRS, injected map[string]string, code, wantName string) func(t *testing.T) {
		return func(t *testing.T) {
			idx := BuildReferenceIndex(rs, injected)

			got := idx.Airport(code)
			if got.Name != wantName {
				t.Fatalf("Airport(%q).Name = %q, want %q", code, got.Name, wantName)
			}
		}
	}

	withOD := &AirShoppingRS{
		OriginDestinationList: &OriginDestinationList{
			OriginDestination: []OriginDestination{
				{
					Departure: &ODEndpoint{AirportCode: "CGK", AirportName: "Soekarno-Hatta International"},
					Arrival:   &ODEndpoint{AirportCode: "DPS"},
				},
			},
		},
	}

	nested := &AirShoppingRS{
		DataLists: DataLists{
			OriginDestinationList: &OriginDestinationList{
				OriginDestination: []OriginDestination{
					{Departure: &ODEndpoint{AirportCode: "SIN", AirportName: "Changi"}},
				},
			},
		},
	}

	t.Run("document_name", airportRequest(withOD, nil, "CGK", "Soekarno-Hatta International"))
	t.Run("document_name_wins_over_injected", airportRequest(withOD,
		map[string]string{"CGK": "Jakarta"}, "CGK", "Soekarno-Hatta International"))
	t.Run("injected_fills_document_gap", airportRequest(withOD,
		map[string]string{"DPS": "Ngurah Rai International"}, "DPS", "Ngurah Rai International"))
	t.Run("unknown_code_falls_back_to_code", airportRequest(withOD, nil, "XXX", "XXX"))
	t.Run("data_lists_variant_accepted", airportRequest(nested, nil, "SIN", "Changi"))
}
