package ndc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/avelora/flight-booking-service/internal/pkg/utils"
)

const notSpecified = "Not specified"

// normalizedOffer pairs one canonical offer with the classified penalty
// records that apply to it. Fare-rule aggregation happens after the optional
// split, once the OD-leg grouping is final.
type normalizedOffer struct {
	Offer       dto.CanonicalOffer
	Records     []PenaltyRecord
	SegmentRefs []string
}

// normalizeOffer walks one raw airline offer, resolves its references and
// emits one canonical offer. A missing segment reference or a missing price
// is a hard failure for this offer only.
func (e *Engine) normalizeOffer(
	ctx context.Context,
	airlineCode string,
	offer *AirlineOffer,
	idx *ReferenceIndex,
) (normalizedOffer, error) {
	offerPrices := offer.PricedOffer.OfferPrice
	if len(offerPrices) == 0 {
		return normalizedOffer{}, MissingPriceError{OfferID: offerKeyForLog(offer)}
	}

	// Offer-item prices vary per passenger type under the same offer; the
	// first one carries the flight-level associations used here.
	offerPrice := &offerPrices[0]

	price, currency := extractPrice(offerPrice, offer)
	if price == 0 {
		return normalizedOffer{}, MissingPriceError{OfferID: offerKeyForLog(offer)}
	}

	associations := offerAssociations(offer, offerPrice)

	var (
		segments    []dto.Segment
		segmentRefs []string
	)

	for _, assoc := range associations {
		for _, segRef := range assoc.ApplicableFlight.FlightSegmentReference {
			if segRef.Ref == "" {
				continue
			}

			raw, ok := idx.Segment(segRef.Ref)
			if !ok {
				return normalizedOffer{}, ReferenceMissingError{Kind: "segment", Ref: segRef.Ref}
			}

			segmentRefs = append(segmentRefs, segRef.Ref)
			segments = append(segments, transformSegment(raw, idx))
		}
	}

	if len(segments) == 0 {
		return normalizedOffer{}, ReferenceMissingError{Kind: "segment", Ref: "(none referenced)"}
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

	offerID := e.resolveOfferID(ctx, offer, offerPrice, airlineCode, segmentRefs, price)

	records, flat, err := e.collectPenaltyRecords(ctx, offerPrice, segmentRefs, idx)
	if err != nil {
		return normalizedOffer{}, err
	}

	normalized := dto.CanonicalOffer{
		ID: offerID,
		Airline: dto.Airline{
			Code:         airlineCode,
			Name:         airlineName(idx, airlineCode),
			Logo:         fmt.Sprintf("/airlines/%s.png", strings.ToLower(airlineCode)),
			FlightNumber: airlineCode + segments[0].FlightNumber,
		},
		Departure:      segments[0].Departure,
		Arrival:        segments[len(segments)-1].Arrival,
		Duration:       duration,
		DurationMins:   totalMinutes,
		Stops:          stops,
		StopDetails:    stopDetails,
		Price:          price,
		Currency:       currency,
		SeatsAvailable: "Available",
		Baggage:        extractBaggage(offerPrice, idx),
		Penalties:      flat,
		Segments:       segments,
		PriceBreakdown: buildPriceBreakdown(offerPrice, offer, price, currency),
	}

	return normalizedOffer{Offer: normalized, Records: records, SegmentRefs: segmentRefs}, nil
}

// resolveOfferID prefers the dedicated offer identifier: it is unique per
// flight+fare combination, while the offer-item identifier varies per
// passenger type under the same offer and would misidentify flights. The
// synthesized fallback is deterministic so the same input offer always
// normalizes to the same key within a shopping session.
func (e *Engine) resolveOfferID(
	ctx context.Context,
	offer *AirlineOffer,
	offerPrice *OfferPrice,
	airlineCode string,
	segmentRefs []string,
	price float64,
) string {
	if offer.OfferID != nil && offer.OfferID.Value != "" {
		return offer.OfferID.Value
	}

	if offerPrice.OfferItemID != "" {
		slog.WarnContext(ctx, "offer has no OfferID, using offer-item identifier",
			slog.String("offer_item_id", offerPrice.OfferItemID))

		return offerPrice.OfferItemID
	}

	synthesized := synthesizedOfferID(airlineCode, segmentRefs, price)

	slog.WarnContext(ctx, "offer has no identifier, synthesized one",
		slog.String("offer_id", synthesized))

	return synthesized
}

func synthesizedOfferID(airlineCode string, segmentRefs []string, price float64) string {
	return fmt.Sprintf("%s-%s-%g", airlineCode, strings.Join(segmentRefs, "-"), price)
}

// offerAssociations prefers the offer-price associations; some carriers put
// them on the priced offer instead.
func offerAssociations(offer *AirlineOffer, offerPrice *OfferPrice) []Association {
	if assocs := offerPrice.RequestedDate.Associations; len(assocs) > 0 {
		return assocs
	}

	return offer.PricedOffer.Associations
}

// extractPrice applies the observed fallback chain: the offer price's
// PriceDetail first, then the airline-offer total, then the priced-offer
// total.
func extractPrice(offerPrice *OfferPrice, offer *AirlineOffer) (float64, string) {
	if pd := offerPrice.RequestedDate.PriceDetail; pd != nil {
		total := pd.TotalAmount.SimpleCurrencyPrice
		if total.Value != 0 {
			return total.Value, total.Code
		}
	}

	if offer.TotalPrice != nil && offer.TotalPrice.SimpleCurrencyPrice.Value != 0 {
		total := offer.TotalPrice.SimpleCurrencyPrice

		return total.Value, total.Code
	}

	if offer.PricedOffer.TotalPrice != nil {
		total := offer.PricedOffer.TotalPrice.SimpleCurrencyPrice

		return total.Value, total.Code
	}

	return 0, ""
}

func buildPriceBreakdown(offerPrice *OfferPrice, offer *AirlineOffer, total float64, currency string) dto.PriceBreakdown {
	breakdown := dto.PriceBreakdown{
		BaseFare:   total,
		TotalPrice: total,
		Currency:   currency,
	}

	pd := offerPrice.RequestedDate.PriceDetail
	if pd == nil {
		return breakdown
	}

	if pd.BaseAmount != nil {
		breakdown.BaseFare = pd.BaseAmount.Value
	}

	if pd.Taxes != nil {
		breakdown.Taxes = pd.Taxes.Total.Value
	}

	return breakdown
}

func transformSegment(raw *FlightSegment, idx *ReferenceIndex) dto.Segment {
	depInfo := idx.Airport(raw.Departure.AirportCode.Value)
	arrInfo := idx.Airport(raw.Arrival.AirportCode.Value)

	flightNumber := "001"
	airline := "Unknown Airline"

	if raw.MarketingCarrier != nil {
		if raw.MarketingCarrier.FlightNumber != nil && raw.MarketingCarrier.FlightNumber.Value != "" {
			flightNumber = raw.MarketingCarrier.FlightNumber.Value
		}

		if raw.MarketingCarrier.Name != "" {
			airline = raw.MarketingCarrier.Name
		}
	}

	if airline == "Unknown Airline" && raw.OperatingCarrier != nil && raw.OperatingCarrier.Name != "" {
		airline = raw.OperatingCarrier.Name
	}

	aircraft := dto.Aircraft{Code: "Unknown", Name: "Aircraft"}
	if raw.Equipment != nil && raw.Equipment.AircraftCode != "" {
		aircraft.Code = raw.Equipment.AircraftCode
	}

	duration := "N/A"
	if raw.FlightDetail != nil && raw.FlightDetail.FlightDuration != nil {
		duration = raw.FlightDetail.FlightDuration.Value
	}

	return dto.Segment{
		Departure:    segmentPoint(raw.Departure, depInfo),
		Arrival:      segmentPoint(raw.Arrival, arrInfo),
		FlightNumber: flightNumber,
		AirlineName:  airline,
		Aircraft:     aircraft,
		Duration:     duration,
	}
}

func segmentPoint(end SegmentEnd, info AirportInfo) dto.SegmentPoint {
	point := dto.SegmentPoint{
		Airport:     end.AirportCode.Value,
		AirportName: info.Name,
		Datetime:    combineDatetime(end.Date, end.Time),
		Time:        normalizeClock(end.Time, end.Date),
	}

	if end.Terminal != nil && end.Terminal.Name != "" {
		point.Terminal = &end.Terminal.Name
	} else if info.Terminal != "" {
		point.Terminal = &info.Terminal
	}

	return point
}

// Some carriers put a full datetime in the Date field, others split date and
// time across the two fields.
func combineDatetime(date, clock string) string {
	switch {
	case strings.Contains(date, "T"):
		return date
	case date != "" && clock != "":
		return date + "T" + clock
	case date != "":
		return date + "T00:00"
	default:
		return ""
	}
}

// normalizeClock prefers the dedicated Time field, padding it to HH:MM:SS,
// and falls back to the time portion of a combined datetime.
func normalizeClock(clock, date string) string {
	if clock != "" {
		if strings.Count(clock, ":") == 1 {
			return clock + ":00"
		}

		return clock
	}

	if idx := strings.Index(date, "T"); idx >= 0 {
		part := date[idx+1:]
		if dot := strings.Index(part, "."); dot >= 0 {
			part = part[:dot]
		}

		return part
	}

	return ""
}

// datetimeDuration is the fallback when no segment carries an explicit
// duration: wall-clock difference between first departure and last arrival.
func datetimeDuration(first, last dto.Segment) string {
	dep, err := parseLocalDatetime(first.Departure.Datetime)
	if err != nil {
		return "N/A"
	}

	arr, err := parseLocalDatetime(last.Arrival.Datetime)
	if err != nil {
		return "N/A"
	}

	diff := arr.Sub(dep)
	if diff < 0 {
		return "N/A"
	}

	return utils.ConvertMinutesToDuration(int64(diff.Minutes()))
}

func parseLocalDatetime(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable datetime %q", value)
}

func extractBaggage(offerPrice *OfferPrice, idx *ReferenceIndex) dto.Baggage {
	baggage := dto.Baggage{CarryOn: notSpecified, Checked: notSpecified}

	for _, assoc := range offerPrice.RequestedDate.Associations {
		for _, segRef := range assoc.ApplicableFlight.FlightSegmentReference {
			if segRef.BagDetailAssociation == nil {
				continue
			}

			if baggage.CarryOn == notSpecified {
				for _, ref := range segRef.BagDetailAssociation.CarryOnReferences {
					if allowance, ok := idx.CarryOnAllowance(ref); ok {
						if text := allowanceText(allowance); text != "" {
							baggage.CarryOn = text

							break
						}
					}
				}
			}

			if baggage.Checked == notSpecified {
				for _, ref := range segRef.BagDetailAssociation.CheckedBagReferences {
					if allowance, ok := idx.CheckedBagAllowance(ref); ok {
						if text := allowanceText(allowance); text != "" {
							baggage.Checked = text

							break
						}
					}
				}
			}
		}

		if baggage.CarryOn != notSpecified && baggage.Checked != notSpecified {
			break
		}
	}

	return baggage
}

func allowanceText(allowance *BaggageAllowance) string {
	if allowance.AllowanceDescription == nil {
		return ""
	}

	descriptions := allowance.AllowanceDescription.Descriptions.Description
	if len(descriptions) == 0 {
		return ""
	}

	return descriptions[0].Text.Value
}

// airlineName resolves a carrier code through the indexed segments,
// marketing carrier first. The original implementation fell back to an
// unbounded walk of the whole document; the index is the bounded
// replacement.
func airlineName(idx *ReferenceIndex, code string) string {
	for _, seg := range idx.segments {
		if c := seg.MarketingCarrier; c != nil && c.AirlineID.Value == code && c.Name != "" {
			return c.Name
		}
	}

	for _, seg := range idx.segments {
		if c := seg.OperatingCarrier; c != nil && c.AirlineID.Value == code && c.Name != "" {
			return c.Name
		}
	}

	return "Airline " + code
}

// OfferCurrency resolves the currency of one identified offer in a raw
// document, for callers replaying the document to the pricing endpoint. The
// lookup derives each candidate's identifier through the same preference
// chain normalization uses (OfferID, then OfferItemID, then the synthesized
// form), so every identifier returned from a search resolves here. Split-leg
// identifiers resolve to their parent offer.
func OfferCurrency(rs *AirShoppingRS, offerID string) (string, bool) {
	offerID = strings.TrimSuffix(offerID, "-"+DirectionOutbound)
	offerID = strings.TrimSuffix(offerID, "-"+DirectionReturn)

	for i := range rs.OffersGroup.AirlineOffers {
		group := &rs.OffersGroup.AirlineOffers[i]

		airlineCode := group.Owner.Value
		if airlineCode == "" {
			airlineCode = "Unknown"
		}

		for j := range group.AirlineOffer {
			candidate := &group.AirlineOffer[j]
			if len(candidate.PricedOffer.OfferPrice) == 0 {
				continue
			}

			offerPrice := &candidate.PricedOffer.OfferPrice[0]
			price, currency := extractPrice(offerPrice, candidate)

			if candidateOfferID(candidate, offerPrice, airlineCode, price) != offerID {
				continue
			}

			return currency, true
		}
	}

	return "", false
}

// candidateOfferID is the unlogged twin of resolveOfferID, re-deriving the
// identifier a candidate offer normalized to.
func candidateOfferID(offer *AirlineOffer, offerPrice *OfferPrice, airlineCode string, price float64) string {
	if offer.OfferID != nil && offer.OfferID.Value != "" {
		return offer.OfferID.Value
	}

	if offerPrice.OfferItemID != "" {
		return offerPrice.OfferItemID
	}

	var segmentRefs []string

	for _, assoc := range offerAssociations(offer, offerPrice) {
		for _, segRef := range assoc.ApplicableFlight.FlightSegmentReference {
			if segRef.Ref != "" {
				segmentRefs = append(segmentRefs, segRef.Ref)
			}
		}
	}

	return synthesizedOfferID(airlineCode, segmentRefs, price)
}

func offerKeyForLog(offer *AirlineOffer) string {
	if offer.OfferID != nil && offer.OfferID.Value != "" {
		return offer.OfferID.Value
	}

	return "(unidentified)"
}
