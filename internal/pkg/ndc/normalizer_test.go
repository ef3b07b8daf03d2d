//go:build unit

package ndc

import (
	"context"
	"errors"
	"testing"
)

func testShoppingRS() *AirShoppingRS {
	return &AirShoppingRS{
		DataLists: DataLists{
			FlightSegmentList: &FlightSegmentList{
				FlightSegment: []FlightSegment{
					{
						SegmentKey: "SEG1",
						Departure: SegmentEnd{
							AirportCode: CodeValue{Value: "CGK"},
							Date:        "2026-09-01",
							Time:        "08:00",
						},
						Arrival: SegmentEnd{
							AirportCode: CodeValue{Value: "SIN"},
							Date:        "2026-09-01",
							Time:        "10:00",
						},
						MarketingCarrier: &Carrier{
							AirlineID:    CodeValue{Value: "GA"},
							Name:         "Garuda Indonesia",
							FlightNumber: &CodeValue{Value: "826"},
						},
						Equipment:    &Equipment{AircraftCode: "738"},
						FlightDetail: &FlightDetail{FlightDuration: &FlightDuration{Value: "PT2H"}},
					},
					{
						SegmentKey: "SEG2",
						Departure: SegmentEnd{
							AirportCode: CodeValue{Value: "SIN"},
							Date:        "2026-09-01",
							Time:        "12:00",
						},
						Arrival: SegmentEnd{
							AirportCode: CodeValue{Value: "DPS"},
							Date:        "2026-09-01",
							Time:        "15:00",
						},
						MarketingCarrier: &Carrier{
							AirlineID:    CodeValue{Value: "GA"},
							Name:         "Garuda Indonesia",
							FlightNumber: &CodeValue{Value: "410"},
						},
						FlightDetail: &FlightDetail{FlightDuration: &FlightDuration{Value: "PT3H"}},
					},
				},
			},
			CarryOnAllowanceList: &CarryOnAllowanceList{
				CarryOnAllowance: []BaggageAllowance{
					{
						ListKey: "CO1",
						AllowanceDescription: &AllowanceDescription{
							Descriptions: Descriptions{Description: []Description{
								{Text: CodeValue{Value: "7KG"}},
							}},
						},
					},
				},
			},
		},
	}
}

func testOffer(segRefs ...string) *AirlineOffer {
	references := make([]FlightSegmentReference, len(segRefs))
	for i, ref := range segRefs {
		references[i] = FlightSegmentReference{Ref: ref}
	}

	return &AirlineOffer{
		OfferID: &OfferID{Value: "OFFER-1"},
		PricedOffer: PricedOffer{
			OfferPrice: []OfferPrice{
				{
					RequestedDate: RequestedDate{
						PriceDetail: &PriceDetail{
							TotalAmount: SimpleCurrencyWrap{
								SimpleCurrencyPrice: CurrencyValue{Value: 1500000, Code: "IDR"},
							},
						},
						Associations: []Association{
							{ApplicableFlight: ApplicableFlight{FlightSegmentReference: references}},
						},
					},
				},
			},
		},
	}
}

func TestNormalizeOffer(t *testing.T) {
	engine := NewEngine(Config{AirportNames: map[string]string{"CGK": "Soekarno-Hatta International"}})
	idx := BuildReferenceIndex(testShoppingRS(), engine.cfg.AirportNames)

	normalized, err := engine.normalizeOffer(context.Background(), "GA", testOffer("SEG1", "SEG2"), idx)
	if err != nil {
		t.Fatalf("normalizeOffer returned error: %v", err)
	}

	offer := normalized.Offer

	if offer.ID != "OFFER-1" {
		t.Fatalf("expected id OFFER-1, got %q", offer.ID)
	}

	if offer.Price != 1500000 || offer.Currency != "IDR" {
		t.Fatalf("unexpected price: %g %s", offer.Price, offer.Currency)
	}

	if offer.Stops != 1 {
		t.Fatalf("expected stops = segments-1 = 1, got %d", offer.Stops)
	}

	if len(offer.StopDetails) != 1 || offer.StopDetails[0] != "SIN" {
		t.Fatalf("unexpected stop details: %v", offer.StopDetails)
	}

	if offer.DurationMins != 300 || offer.Duration != "5h" {
		t.Fatalf("unexpected duration: %q (%d mins)", offer.Duration, offer.DurationMins)
	}

	if offer.Departure.Airport != "CGK" || offer.Arrival.Airport != "DPS" {
		t.Fatalf("unexpected endpoints: %q -> %q", offer.Departure.Airport, offer.Arrival.Airport)
	}

	if offer.Departure.AirportName != "Soekarno-Hatta International" {
		t.Fatalf("expected injected airport name, got %q", offer.Departure.AirportName)
	}

	if offer.Airline.FlightNumber != "GA826" {
		t.Fatalf("unexpected flight number: %q", offer.Airline.FlightNumber)
	}

	if offer.Airline.Name != "Garuda Indonesia" {
		t.Fatalf("unexpected airline name: %q", offer.Airline.Name)
	}

	if len(normalized.SegmentRefs) != 2 {
		t.Fatalf("expected segment refs preserved, got %v", normalized.SegmentRefs)
	}
}

func TestNormalizeOffer_Failures(t *testing.T) {
	engine := NewEngine(Config{})
	idx := BuildReferenceIndex(testShoppingRS(), nil)

	failureRequest := func(offer *AirlineOffer, wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := engine.normalizeOffer(context.Background(), "GA", offer, idx)
			if !errors.Is(err, wantErr) {
				t.Fatalf("expected %v, got %v", wantErr, err)
			}
		}
	}

	t.Run("missing_segment_reference", failureRequest(
		testOffer("SEG1", "SEG-MISSING"),
		ReferenceMissingError{Kind: "segment", Ref: "SEG-MISSING"},
	))

	t.Run("no_segment_references", failureRequest(
		testOffer(),
		ReferenceMissingError{Kind: "segment"},
	))

	noPrices := testOffer("SEG1")
	noPrices.PricedOffer.OfferPrice = nil
	t.Run("no_offer_prices", failureRequest(noPrices, MissingPriceError{OfferID: "OFFER-1"}))

	zeroPrice := testOffer("SEG1")
	zeroPrice.PricedOffer.OfferPrice[0].RequestedDate.PriceDetail = nil
	t.Run("no_price_at_any_level", failureRequest(zeroPrice, MissingPriceError{OfferID: "OFFER-1"}))
}

func TestExtractPrice_FallbackChain(t *testing.T) {
	priceRequest := func(offer *AirlineOffer, wantValue float64, wantCurrency string) func(t *testing.T) {
		return func(t *testing.T) {
			value, currency := extractPrice(&offer.PricedOffer.OfferPrice[0], offer)
			if value != wantValue || currency != wantCurrency {
				t.Fatalf("expected (%g, %q), got (%g, %q)", wantValue, wantCurrency, value, currency)
			}
		}
	}

	detailed := testOffer("SEG1")
	t.Run("price_detail_first", priceRequest(detailed, 1500000, "IDR"))

	offerTotal := testOffer("SEG1")
	offerTotal.PricedOffer.OfferPrice[0].RequestedDate.PriceDetail = nil
	offerTotal.TotalPrice = &TotalPrice{SimpleCurrencyPrice: CurrencyValue{Value: 1200000, Code: "IDR"}}
	t.Run("airline_offer_total_second", priceRequest(offerTotal, 1200000, "IDR"))

	pricedTotal := testOffer("SEG1")
	pricedTotal.PricedOffer.OfferPrice[0].RequestedDate.PriceDetail = nil
	pricedTotal.PricedOffer.TotalPrice = &TotalPrice{SimpleCurrencyPrice: CurrencyValue{Value: 1100000, Code: "IDR"}}
	t.Run("priced_offer_total_third", priceRequest(pricedTotal, 1100000, "IDR"))

	none := testOffer("SEG1")
	none.PricedOffer.OfferPrice[0].RequestedDate.PriceDetail = nil
	t.Run("no_price_anywhere", priceRequest(none, 0, ""))
}

func TestResolveOfferID_Closure(t *testing.T) {
	engine := NewEngine(Config{})

	resolveRequest := func(offer *AirlineOffer, want string) func(t *testing.T) {
		return func(t *testing.T) {
			got := engine.resolveOfferID(context.Background(), offer,
				&offer.PricedOffer.OfferPrice[0], "GA", []string{"SEG1", "SEG2"}, 1500000)
			if got != want {
				t.Fatalf("expected id %q, got %q", want, got)
			}
		}
	}

	withID := testOffer("SEG1")
	t.Run("offer_id_preferred", resolveRequest(withID, "OFFER-1"))

	withItemID := testOffer("SEG1")
	withItemID.OfferID = nil
	withItemID.PricedOffer.OfferPrice[0].OfferItemID = "ITEM-7"
	t.Run("offer_item_id_fallback", resolveRequest(withItemID, "ITEM-7"))

	// Deterministic: the same inputs always synthesize the same key.
	anonymous := testOffer("SEG1")
	anonymous.OfferID = nil
	t.Run("synthesized_deterministic", resolveRequest(anonymous, "GA-SEG1-SEG2-1.5e+06"))
	t.Run("synthesized_repeatable", resolveRequest(anonymous, "GA-SEG1-SEG2-1.5e+06"))
}

func TestExtractBaggage(t *testing.T) {
	idx := BuildReferenceIndex(testShoppingRS(), nil)

	offer := testOffer("SEG1", "SEG2")
	refs := offer.PricedOffer.OfferPrice[0].RequestedDate.Associations[0].ApplicableFlight.FlightSegmentReference
	refs[0].BagDetailAssociation = &BagDetailAssociation{CarryOnReferences: []string{"CO1"}}

	baggage := extractBaggage(&offer.PricedOffer.OfferPrice[0], idx)

	if baggage.CarryOn != "7KG" {
		t.Fatalf("expected carry-on 7KG, got %q", baggage.CarryOn)
	}

	// No checked-bag reference anywhere: the sentinel, not an empty string.
	if baggage.Checked != "Not specified" {
		t.Fatalf("expected checked baggage sentinel, got %q", baggage.Checked)
	}
}

func TestOfferCurrency(t *testing.T) {
	rs := testShoppingRS()
	rs.OffersGroup = OffersGroup{
		AirlineOffers: []AirlineOfferGroup{
			{Owner: CodeValue{Value: "GA"}, AirlineOffer: []AirlineOffer{*testOffer("SEG1")}},
		},
	}

	currency, ok := OfferCurrency(rs, "OFFER-1")
	if !ok || currency != "IDR" {
		t.Fatalf("expected (IDR, true), got (%q, %v)", currency, ok)
	}

	if _, ok := OfferCurrency(rs, "OFFER-MISSING"); ok {
		t.Fatal("expected miss for unknown offer id")
	}
}

// Offers normalized under a fallback identifier must still resolve when that
// identifier comes back through the pricing endpoint.
func TestOfferCurrency_FallbackIdentifiers(t *testing.T) {
	currencyRequest := func(mutate func(*AirlineOffer), offerID string) func(t *testing.T) {
		return func(t *testing.T) {
			offer := testOffer("SEG1", "SEG2")
			mutate(offer)

			rs := testShoppingRS()
			rs.OffersGroup = OffersGroup{
				AirlineOffers: []AirlineOfferGroup{
					{Owner: CodeValue{Value: "GA"}, AirlineOffer: []AirlineOffer{*offer}},
				},
			}

			currency, ok := OfferCurrency(rs, offerID)
			if !ok || currency != "IDR" {
				t.Fatalf("expected (IDR, true) for %q, got (%q, %v)", offerID, currency, ok)
			}
		}
	}

	t.Run("offer_item_id", currencyRequest(func(offer *AirlineOffer) {
		offer.OfferID = nil
		offer.PricedOffer.OfferPrice[0].OfferItemID = "ITEM-7"
	}, "ITEM-7"))

	t.Run("synthesized_id", currencyRequest(func(offer *AirlineOffer) {
		offer.OfferID = nil
	}, "GA-SEG1-SEG2-1.5e+06"))

	t.Run("split_leg_outbound_id", currencyRequest(func(offer *AirlineOffer) {}, "OFFER-1-outbound"))

	t.Run("split_leg_return_id", currencyRequest(func(offer *AirlineOffer) {}, "OFFER-1-return"))
}
