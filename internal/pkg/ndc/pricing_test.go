//go:build unit

package ndc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

const pricingResponse = `{
	"PricedFlightOffers": {
		"PricedFlightOffer": [{
			"OfferID": {"value": "OFFER-1"},
			"TimeLimits": {
				"OfferExpiration": {"DateTime": "2026-09-01T10:00:00Z"},
				"Payment": {"DateTime": "2026-09-01T09:00:00Z"}
			},
			"OfferPrice": [{
				"RequestedDate": {
					"PriceDetail": {
						"TotalAmount": {"SimpleCurrencyPrice": {"value": 500, "Code": "USD"}},
						"BaseAmount": {"value": 400},
						"Taxes": {"Total": {"value": 100}},
						"Discount": [{"DiscountAmount": {"value": 20}}]
					},
					"Associations": [
						{
							"AssociatedTraveler": {"TravelerReferences": ["T1", "T2"]},
							"PriceClass": {"PriceClassReference": "PC1"},
							"ApplicableFlight": {"OriginDestinationReferences": ["OD1"]}
						},
						{
							"AssociatedTraveler": {"TravelerReferences": ["T3"]},
							"ApplicableFlight": {
								"OriginDestinationReferences": ["OD1"],
								"FlightSegmentReference": [{
									"ref": "SEG1",
									"BagDetailAssociation": {"CarryOnReferences": ["CO1"]}
								}]
							}
						}
					]
				},
				"FareDetail": {
					"FareComponent": [{
						"FareBasis": {"FareBasisCode": {"Code": "YBASIC"}},
						"FareRules": {"Penalty": {"refs": ["PEN1"]}}
					}]
				}
			}]
		}]
	},
	"DataLists": {
		"AnonymousTravelerList": {"AnonymousTraveler": [
			{"ObjectKey": "T1", "PTC": {"value": "ADT"}},
			{"ObjectKey": "T2", "PTC": {"value": "ADT"}},
			{"ObjectKey": "T3", "PTC": {"value": "CHD"}}
		]},
		"PriceClassList": {"PriceClass": [{
			"ObjectKey": "PC1",
			"Descriptions": {"Description": [
				{"Text": {"value": "CARRYON 7KG"}},
				{"Text": {"value": "CHECKED 20KG"}}
			]}
		}]},
		"OriginDestinationList": {"OriginDestination": [{
			"OriginDestinationKey": "OD1",
			"FlightReferences": {"value": ["FL1"]}
		}]},
		"FlightList": {"Flight": [{"FlightKey": "FL1", "SegmentReferences": {"value": ["SEG1"]}}]},
		"FlightSegmentList": {"FlightSegment": [{
			"SegmentKey": "SEG1",
			"Departure": {"AirportCode": {"value": "CGK"}, "Date": "2026-09-01T08:00:00", "Time": "08:00"},
			"Arrival": {"AirportCode": {"value": "DPS"}, "Date": "2026-09-01", "Time": "11:00"},
			"MarketingCarrier": {
				"AirlineID": {"value": "GA"},
				"Name": "Garuda Indonesia",
				"FlightNumber": {"value": "410"}
			},
			"FlightDetail": {"FlightDuration": {"Value": "PT3H"}}
		}]},
		"CarryOnAllowanceList": {"CarryOnAllowance": [{
			"ListKey": "CO1",
			"AllowanceDescription": {"Descriptions": {"Description": [{"Text": {"value": "10KG"}}]}}
		}]},
		"PenaltyList": {"Penalty": [{
			"ObjectKey": "PEN1",
			"Details": {"Detail": [
				{
					"Type": "Cancellation Fee",
					"Amounts": {"Amount": [
						{"CurrencyAmountValue": {"value": 100}},
						{"CurrencyAmountValue": {"value": 150}}
					]}
				},
				{
					"Type": "Change Fee",
					"Amounts": {"Amount": [{"CurrencyAmountValue": {"value": 50}}]}
				}
			]}
		}]}
	}
}`

func TestTransformPricing(t *testing.T) {
	rs, err := ParsePricingDocument([]byte(pricingResponse))
	if err != nil {
		t.Fatalf("ParsePricingDocument returned error: %v", err)
	}

	engine := NewEngine(Config{})

	got, err := engine.TransformPricing(context.Background(), rs)
	if err != nil {
		t.Fatalf("TransformPricing returned error: %v", err)
	}

	carryPC := "CARRYON 7KG"
	checkedPC := "CHECKED 20KG"
	carrySeg := "10KG"

	segments := []dto.PricedSegment{{
		AirlineName:    "Garuda Indonesia",
		FlightNumber:   "GA410",
		Origin:         "CGK",
		Destination:    "DPS",
		DepartureDate:  "2026-09-01",
		DepartureTime:  "08:00",
		ArrivalDate:    "2026-09-01",
		ArrivalTime:    "11:00",
		FlightDuration: "3h",
	}}

	penalties := dto.PenaltyFees{
		CancelFeeMin: 100, CancelFeeMax: 150,
		ChangeFeeMin: 50, ChangeFeeMax: 50,
	}

	want := []dto.PricedOfferBreakdown{
		{
			Segments:         segments,
			FareBasis:        "YBASIC",
			PassengerType:    "ADT",
			TravelerCount:    2,
			BaggageAllowance: dto.PricedBaggage{CarryOnAllowance: &carryPC, CheckedAllowance: &checkedPC},
			Pricing: dto.PTCPricing{
				BaseFarePerTraveler:   400,
				TaxesPerTraveler:      100,
				DiscountPerTraveler:   20,
				TotalPricePerTraveler: 500,
				Currency:              "USD",
				TravelerCount:         2,
				TotalBaseFare:         800,
				TotalTaxes:            200,
				TotalDiscount:         40,
				TotalPrice:            1000,
			},
			Penalties: penalties,
			TotalAmountPerPTC: dto.PTCTotal{
				PassengerType: "ADT",
				TravelerCount: 2,
				PricePerPTC:   500,
				Currency:      "USD",
				TotalAmount:   1000,
			},
			OfferExpirationUTC:   "2026-09-01T10:00:00Z",
			PaymentExpirationUTC: "2026-09-01T09:00:00Z",
		},
		{
			Segments:         segments,
			FareBasis:        "YBASIC",
			PassengerType:    "CHD",
			TravelerCount:    1,
			BaggageAllowance: dto.PricedBaggage{CarryOnAllowance: &carrySeg},
			Pricing: dto.PTCPricing{
				BaseFarePerTraveler:   400,
				TaxesPerTraveler:      100,
				DiscountPerTraveler:   20,
				TotalPricePerTraveler: 500,
				Currency:              "USD",
				TravelerCount:         1,
				TotalBaseFare:         400,
				TotalTaxes:            100,
				TotalDiscount:         20,
				TotalPrice:            500,
			},
			Penalties: penalties,
			TotalAmountPerPTC: dto.PTCTotal{
				PassengerType: "CHD",
				TravelerCount: 1,
				PricePerPTC:   500,
				Currency:      "USD",
				TotalAmount:   500,
			},
			OfferExpirationUTC:   "2026-09-01T10:00:00Z",
			PaymentExpirationUTC: "2026-09-01T09:00:00Z",
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("TransformPricing() mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformPricing_Failures(t *testing.T) {
	engine := NewEngine(Config{})

	failureRequest := func(mutate func(*FlightPriceRS), wantErr error) func(t *testing.T) {
		return func(t *testing.T) {
			rs, err := ParsePricingDocument([]byte(pricingResponse))
			if err != nil {
				t.Fatalf("ParsePricingDocument returned error: %v", err)
			}

			mutate(rs)

			_, err = engine.TransformPricing(context.Background(), rs)
			if !errors.Is(err, wantErr) {
				t.Fatalf("expected %v, got %v", wantErr, err)
			}
		}
	}

	t.Run("no_priced_offers", failureRequest(func(rs *FlightPriceRS) {
		rs.PricedFlightOffers = nil
	}, ErrMalformedDataLists))

	t.Run("dangling_od_reference", failureRequest(func(rs *FlightPriceRS) {
		rs.DataLists.OriginDestinationList = nil
	}, ReferenceMissingError{Kind: "origin-destination", Ref: "OD1"}))

	t.Run("unknown_traveler_reference", failureRequest(func(rs *FlightPriceRS) {
		rs.DataLists.AnonymousTravelerList = nil
	}, ReferenceMissingError{Kind: "traveler", Ref: "T1"}))

	t.Run("missing_price_detail", failureRequest(func(rs *FlightPriceRS) {
		rs.PricedFlightOffers.PricedFlightOffer[0].OfferPrice[0].RequestedDate.PriceDetail = nil
	}, MissingPriceError{}))
}
