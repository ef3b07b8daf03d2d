package ndc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/avelora/flight-booking-service/internal/pkg/utils"
)

// FlightPriceRS is the typed form of one upstream pricing response. It
// reuses the shopping response's DataLists shape; the offers live under
// PricedFlightOffers instead of OffersGroup.
type FlightPriceRS struct {
	PricedFlightOffers    *PricedFlightOffers    `json:"PricedFlightOffers,omitempty"`
	DataLists             DataLists              `json:"DataLists"`
	OriginDestinationList *OriginDestinationList `json:"OriginDestinationList,omitempty"`
}

type PricedFlightOffers struct {
	PricedFlightOffer []PricedFlightOffer `json:"PricedFlightOffer"`
}

type PricedFlightOffer struct {
	OfferID    *OfferID     `json:"OfferID,omitempty"`
	TimeLimits *TimeLimits  `json:"TimeLimits,omitempty"`
	OfferPrice []OfferPrice `json:"OfferPrice"`
}

// ParsePricingDocument decodes a raw pricing response payload.
func ParsePricingDocument(payload []byte) (*FlightPriceRS, error) {
	var rs FlightPriceRS

	if err := json.Unmarshal(payload, &rs); err != nil {
		return nil, fmt.Errorf("decode pricing response: %w", err)
	}

	return &rs, nil
}

// TransformPricing converts one raw pricing response into canonical per
// passenger-type breakdowns. Unlike shopping, a pricing response prices a
// single already-chosen offer, so any dangling reference fails the whole
// call instead of dropping a sibling.
func (e *Engine) TransformPricing(ctx context.Context, rs *FlightPriceRS) ([]dto.PricedOfferBreakdown, error) {
	if rs.PricedFlightOffers == nil || len(rs.PricedFlightOffers.PricedFlightOffer) == 0 {
		return nil, fmt.Errorf("%w: pricing response carries no priced offers", ErrMalformedDataLists)
	}

	idx := BuildReferenceIndex(&AirShoppingRS{
		DataLists:             rs.DataLists,
		OriginDestinationList: rs.OriginDestinationList,
	}, e.cfg.AirportNames)

	travelers := travelerTypes(rs.DataLists.AnonymousTravelerList)
	priceClasses := priceClassEntries(&rs.DataLists)

	var results []dto.PricedOfferBreakdown

	for i := range rs.PricedFlightOffers.PricedFlightOffer {
		offer := &rs.PricedFlightOffers.PricedFlightOffer[i]

		offerExpiry, paymentExpiry := pricingTimeLimits(offer.TimeLimits)

		for j := range offer.OfferPrice {
			priceBlock := &offer.OfferPrice[j]

			records, err := e.transformPriceBlock(priceBlock, idx, travelers, priceClasses)
			if err != nil {
				return nil, err
			}

			for k := range records {
				records[k].OfferExpirationUTC = offerExpiry
				records[k].PaymentExpirationUTC = paymentExpiry
			}

			results = append(results, records...)
		}
	}

	return results, nil
}

func (e *Engine) transformPriceBlock(
	priceBlock *OfferPrice,
	idx *ReferenceIndex,
	travelers map[string]string,
	priceClasses map[string]*PriceClass,
) ([]dto.PricedOfferBreakdown, error) {
	pd := priceBlock.RequestedDate.PriceDetail
	if pd == nil || pd.TotalAmount.SimpleCurrencyPrice.Value == 0 {
		return nil, MissingPriceError{OfferID: priceBlock.OfferItemID}
	}

	currency := pd.TotalAmount.SimpleCurrencyPrice.Code
	totalPerPTC := pd.TotalAmount.SimpleCurrencyPrice.Value

	associations := priceBlock.RequestedDate.Associations
	if len(associations) == 0 {
		return nil, ReferenceMissingError{Kind: "association", Ref: "(none present)"}
	}

	segments, err := pricedSegments(&associations[0], idx)
	if err != nil {
		return nil, err
	}

	fareBasis, penaltyRefs := fareComponentDetails(priceBlock.FareDetail)
	penalties := pricingPenaltyFees(penaltyRefs, idx)

	base := 0.0
	if pd.BaseAmount != nil {
		base = pd.BaseAmount.Value
	}

	taxes := 0.0
	if pd.Taxes != nil {
		taxes = pd.Taxes.Total.Value
	}

	discount := 0.0
	for _, d := range pd.Discount {
		discount += d.DiscountAmount.Value
	}

	type ptcKey struct {
		ptc   string
		count int
	}

	seen := make(map[ptcKey]bool)

	var records []dto.PricedOfferBreakdown

	for i := range associations {
		assoc := &associations[i]
		if assoc.AssociatedTraveler == nil || len(assoc.AssociatedTraveler.TravelerReferences) == 0 {
			continue
		}

		travelerRefs := assoc.AssociatedTraveler.TravelerReferences

		ptc, ok := travelers[travelerRefs[0]]
		if !ok {
			return nil, ReferenceMissingError{Kind: "traveler", Ref: travelerRefs[0]}
		}

		count := len(travelerRefs)
		if seen[ptcKey{ptc, count}] {
			continue
		}

		seen[ptcKey{ptc, count}] = true

		records = append(records, dto.PricedOfferBreakdown{
			Segments:         segments,
			FareBasis:        fareBasis,
			PassengerType:    ptc,
			TravelerCount:    count,
			BaggageAllowance: pricingBaggage(assoc, priceClasses, idx),
			Pricing: dto.PTCPricing{
				BaseFarePerTraveler:   base,
				TaxesPerTraveler:      taxes,
				DiscountPerTraveler:   discount,
				TotalPricePerTraveler: totalPerPTC,
				Currency:              currency,
				TravelerCount:         count,
				TotalBaseFare:         base * float64(count),
				TotalTaxes:            taxes * float64(count),
				TotalDiscount:         discount * float64(count),
				TotalPrice:            totalPerPTC * float64(count),
			},
			Penalties: penalties,
			TotalAmountPerPTC: dto.PTCTotal{
				PassengerType: ptc,
				TravelerCount: count,
				PricePerPTC:   totalPerPTC,
				Currency:      currency,
				TotalAmount:   totalPerPTC * float64(count),
			},
		})
	}

	return records, nil
}

// pricedSegments resolves the association's origin-destination references
// down to flight segments: OD entry to flight keys to segment keys.
func pricedSegments(assoc *Association, idx *ReferenceIndex) ([]dto.PricedSegment, error) {
	var segments []dto.PricedSegment

	for _, odKey := range assoc.ApplicableFlight.OriginDestinationReferences {
		flightRefs, ok := idx.ODFlights(odKey)
		if !ok {
			return nil, ReferenceMissingError{Kind: "origin-destination", Ref: odKey}
		}

		for _, flightRef := range flightRefs {
			segmentKeys, ok := idx.FlightSegments(flightRef)
			if !ok {
				return nil, ReferenceMissingError{Kind: "flight", Ref: flightRef}
			}

			for _, segKey := range segmentKeys {
				seg, ok := idx.Segment(segKey)
				if !ok {
					return nil, ReferenceMissingError{Kind: "segment", Ref: segKey}
				}

				segments = append(segments, pricedSegmentView(seg))
			}
		}
	}

	if len(segments) == 0 {
		return nil, ReferenceMissingError{Kind: "segment", Ref: "(none referenced)"}
	}

	return segments, nil
}

func pricedSegmentView(seg *FlightSegment) dto.PricedSegment {
	view := dto.PricedSegment{
		Origin:        seg.Departure.AirportCode.Value,
		Destination:   seg.Arrival.AirportCode.Value,
		DepartureDate: datePortion(seg.Departure.Date),
		DepartureTime: seg.Departure.Time,
		ArrivalDate:   datePortion(seg.Arrival.Date),
		ArrivalTime:   seg.Arrival.Time,
	}

	if carrier := seg.MarketingCarrier; carrier != nil {
		view.AirlineName = carrier.Name
		view.FlightNumber = carrier.AirlineID.Value

		if carrier.FlightNumber != nil {
			view.FlightNumber += carrier.FlightNumber.Value
		}
	}

	if seg.FlightDetail != nil && seg.FlightDetail.FlightDuration != nil {
		raw := seg.FlightDetail.FlightDuration.Value

		if mins := utils.ParseISODuration(raw); mins > 0 {
			view.FlightDuration = utils.ConvertMinutesToDuration(int64(mins))
		} else {
			view.FlightDuration = raw
		}
	}

	return view
}

func datePortion(date string) string {
	if idx := strings.Index(date, "T"); idx >= 0 {
		return date[:idx]
	}

	return date
}

func fareComponentDetails(detail *FareDetail) (string, []string) {
	if detail == nil || len(detail.FareComponent) == 0 {
		return "", nil
	}

	fareBasis := ""
	if fb := detail.FareComponent[0].FareBasis; fb != nil {
		fareBasis = fb.FareBasisCode.Code
	}

	var penaltyRefs []string

	for _, component := range detail.FareComponent {
		if component.FareRules != nil && component.FareRules.Penalty != nil {
			penaltyRefs = append(penaltyRefs, component.FareRules.Penalty.Refs...)
		}
	}

	return fareBasis, penaltyRefs
}

// pricingPenaltyFees flattens the referenced penalty entries into min/max
// cancel and change fee bounds, classified by detail type.
func pricingPenaltyFees(refs []string, idx *ReferenceIndex) dto.PenaltyFees {
	var cancelVals, changeVals []float64

	for _, ref := range refs {
		entry, ok := idx.Penalty(ref)
		if !ok || entry.Details == nil {
			continue
		}

		for _, detail := range entry.Details.Detail {
			if detail.Amounts == nil {
				continue
			}

			for _, amount := range detail.Amounts.Amount {
				value := amount.CurrencyAmountValue.Value

				if strings.Contains(detail.Type, "Cancel") {
					cancelVals = append(cancelVals, value)
				}

				if strings.Contains(detail.Type, "Change") {
					changeVals = append(changeVals, value)
				}
			}
		}
	}

	fees := dto.PenaltyFees{}
	fees.CancelFeeMin, fees.CancelFeeMax = minMax(cancelVals)
	fees.ChangeFeeMin, fees.ChangeFeeMax = minMax(changeVals)

	return fees
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}

		if v > high {
			high = v
		}
	}

	return low, high
}

// pricingBaggage prefers the association's price-class descriptions, which
// spell out CARRYON and CHECKED allowances; the per-segment bag-detail
// references are the fallback.
func pricingBaggage(assoc *Association, priceClasses map[string]*PriceClass, idx *ReferenceIndex) dto.PricedBaggage {
	if assoc.PriceClass != nil {
		if pc, ok := priceClasses[assoc.PriceClass.PriceClassReference]; ok && pc.Descriptions != nil {
			var carry, checked *string

			for i := range pc.Descriptions.Description {
				text := pc.Descriptions.Description[i].Text.Value

				if carry == nil && strings.Contains(text, "CARRYON") {
					carry = &pc.Descriptions.Description[i].Text.Value
				}

				if checked == nil && strings.Contains(text, "CHECKED") {
					checked = &pc.Descriptions.Description[i].Text.Value
				}
			}

			if carry != nil || checked != nil {
				return dto.PricedBaggage{CarryOnAllowance: carry, CheckedAllowance: checked}
			}
		}
	}

	var carry, checked *string

	for _, segRef := range assoc.ApplicableFlight.FlightSegmentReference {
		if segRef.BagDetailAssociation == nil {
			continue
		}

		if carry == nil {
			for _, ref := range segRef.BagDetailAssociation.CarryOnReferences {
				if allowance, ok := idx.CarryOnAllowance(ref); ok {
					if text := allowanceText(allowance); text != "" {
						carry = &text

						break
					}
				}
			}
		}

		if checked == nil {
			for _, ref := range segRef.BagDetailAssociation.CheckedBagReferences {
				if allowance, ok := idx.CheckedBagAllowance(ref); ok {
					if text := allowanceText(allowance); text != "" {
						checked = &text

						break
					}
				}
			}
		}
	}

	return dto.PricedBaggage{CarryOnAllowance: carry, CheckedAllowance: checked}
}

func travelerTypes(list *AnonymousTravelerList) map[string]string {
	travelers := make(map[string]string)

	if list != nil {
		for _, traveler := range list.AnonymousTraveler {
			travelers[traveler.ObjectKey] = traveler.PTC.Value
		}
	}

	return travelers
}

func priceClassEntries(lists *DataLists) map[string]*PriceClass {
	entries := make(map[string]*PriceClass)

	if lists.PriceClassList != nil {
		for i := range lists.PriceClassList.PriceClass {
			pc := &lists.PriceClassList.PriceClass[i]
			entries[pc.ObjectKey] = pc
		}
	} else if lists.ServiceList != nil {
		for i := range lists.ServiceList.Service {
			pc := &lists.ServiceList.Service[i]
			entries[pc.ObjectKey] = pc
		}
	}

	return entries
}

func pricingTimeLimits(limits *TimeLimits) (string, string) {
	if limits == nil {
		return "", ""
	}

	offerExpiry := ""
	if limits.OfferExpiration != nil {
		offerExpiry = limits.OfferExpiration.DateTime
	}

	paymentExpiry := ""
	if limits.PaymentTimeLimit != nil {
		paymentExpiry = limits.PaymentTimeLimit.DateTime
	} else if limits.Payment != nil {
		paymentExpiry = limits.Payment.DateTime
	}

	return offerExpiry, paymentExpiry
}
