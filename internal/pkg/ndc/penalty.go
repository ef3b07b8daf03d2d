package ndc

import (
	"context"
	"log/slog"
	"strings"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

// Applicability is the departure-window classification of one penalty
// detail. The code mapping is load-bearing: a wrong mapping silently
// corrupts the refund and penalty amounts shown to users.
type Applicability string

const (
	ApplicabilityAfterDepartureNoShow  Applicability = "after-departure-no-show"  // code 1
	ApplicabilityPriorToDeparture      Applicability = "prior-to-departure"       // code 2
	ApplicabilityAfterDeparture        Applicability = "after-departure"          // code 3
	ApplicabilityBeforeDepartureNoShow Applicability = "before-departure-no-show" // code 4
)

// DefaultApplicabilityCodes is the vendor's documented code table. It is
// injected through Config so tests can exercise alternate vendor datasets.
func DefaultApplicabilityCodes() map[string]Applicability {
	return map[string]Applicability{
		"1": ApplicabilityAfterDepartureNoShow,
		"2": ApplicabilityPriorToDeparture,
		"3": ApplicabilityAfterDeparture,
		"4": ApplicabilityBeforeDepartureNoShow,
	}
}

// Label is the human-readable form carried on the flat penalty list.
func (a Applicability) Label() string {
	switch a {
	case ApplicabilityAfterDepartureNoShow:
		return "After Departure No Show"
	case ApplicabilityPriorToDeparture:
		return "Prior to Departure"
	case ApplicabilityAfterDeparture:
		return "After Departure"
	case ApplicabilityBeforeDepartureNoShow:
		return "Before Departure No Show"
	default:
		return string(a)
	}
}

const (
	ActionCancel = "cancel"
	ActionChange = "change"
)

// PenaltyRecord is one classified raw rule. When the upstream supplies only
// a single amount, that amount is carried as both bounds: absence of a range
// means the single value is the ceiling.
type PenaltyRecord struct {
	Action        string
	Applicability Applicability
	Currency      string
	Min           float64
	Max           float64
	ExplicitRange bool
	Remarks       []string
	Refundable    bool
	CancelFee     bool
	SegmentRefs   []string
}

// parseStatus is the tagged result of parsing one raw sub-structure, so the
// fallback chains stay exhaustive instead of relying on presence checks.
type parseStatus int

const (
	parseFound parseStatus = iota
	parseMissing
	parseMalformed
)

// collectPenaltyRecords resolves the offer's penalty references and
// classifies every Detail sub-record. A reference absent from the index is a
// hard failure for the offer; a malformed detail only excludes that detail.
func (e *Engine) collectPenaltyRecords(
	ctx context.Context,
	offerPrice *OfferPrice,
	offerSegmentRefs []string,
	idx *ReferenceIndex,
) ([]PenaltyRecord, []dto.Penalty, error) {
	if offerPrice.FareDetail == nil {
		return nil, nil, nil
	}

	var (
		records []PenaltyRecord
		flat    []dto.Penalty
	)

	for _, component := range offerPrice.FareDetail.FareComponent {
		if component.FareRules == nil || component.FareRules.Penalty == nil {
			continue
		}

		segmentRefs := component.SegmentRefs
		if len(segmentRefs) == 0 {
			segmentRefs = offerSegmentRefs
		}

		for _, ref := range component.FareRules.Penalty.Refs {
			raw, ok := idx.Penalty(ref)
			if !ok {
				return nil, nil, ReferenceMissingError{Kind: "penalty", Ref: ref}
			}

			if raw.Details == nil {
				continue
			}

			for _, detail := range raw.Details.Detail {
				record, status, reason := e.parsePenaltyDetail(raw, &detail, segmentRefs)

				switch status {
				case parseMissing:
					continue
				case parseMalformed:
					slog.WarnContext(ctx, "excluding malformed penalty record",
						slog.String("object_key", raw.ObjectKey),
						slog.String("reason", reason))

					continue
				}

				records = append(records, record)
				flat = append(flat, dto.Penalty{
					Type:        titleAction(record.Action),
					Application: record.Applicability.Label(),
					Amount:      record.Max,
					Currency:    record.Currency,
					Remarks:     record.Remarks,
					Refundable:  record.Refundable,
					CancelFee:   record.CancelFee,
				})
			}
		}
	}

	return records, flat, nil
}

func (e *Engine) parsePenaltyDetail(
	raw *RawPenalty,
	detail *PenaltyDetail,
	segmentRefs []string,
) (PenaltyRecord, parseStatus, string) {
	var action string

	switch {
	case strings.Contains(strings.ToLower(detail.Type), ActionCancel):
		action = ActionCancel
	case strings.Contains(strings.ToLower(detail.Type), ActionChange):
		action = ActionChange
	default:
		return PenaltyRecord{}, parseMalformed, "unknown penalty action type " + detail.Type
	}

	if detail.Application == nil || detail.Application.Code == "" {
		return PenaltyRecord{}, parseMalformed, "missing applicability code"
	}

	applicability, ok := e.cfg.ApplicabilityCodes[detail.Application.Code]
	if !ok {
		return PenaltyRecord{}, parseMalformed, "unmapped applicability code " + detail.Application.Code
	}

	if detail.Amounts == nil || len(detail.Amounts.Amount) == 0 {
		return PenaltyRecord{}, parseMalformed, "no amount and no min/max pair"
	}

	record := PenaltyRecord{
		Action:        action,
		Applicability: applicability,
		Refundable:    raw.RefundableInd,
		CancelFee:     raw.CancelFeeInd,
		SegmentRefs:   segmentRefs,
	}

	var (
		single   float64
		hasMin   bool
		hasMax   bool
		hasValue bool
	)

	for _, amount := range detail.Amounts.Amount {
		value := amount.CurrencyAmountValue.Value
		if amount.CurrencyAmountValue.Code != "" {
			record.Currency = amount.CurrencyAmountValue.Code
		}

		switch strings.ToUpper(amount.AmountApplication) {
		case "MIN":
			record.Min = value
			hasMin = true
		case "MAX":
			record.Max = value
			hasMax = true
		default:
			single = value
			hasValue = true
		}

		if amount.ApplicableFeeRemarks != nil {
			for _, remark := range amount.ApplicableFeeRemarks.Remark {
				if remark.Value != "" {
					record.Remarks = append(record.Remarks, remark.Value)
				}
			}
		}
	}

	switch {
	case hasMin && hasMax:
		record.ExplicitRange = true
	case hasMin:
		record.Max = record.Min
	case hasMax:
		record.Min = record.Max
	case hasValue:
		// Single amount: the value is the ceiling, and serves as the
		// displayed lower bound as well.
		record.Min = single
		record.Max = single
	default:
		return PenaltyRecord{}, parseMalformed, "no amount and no min/max pair"
	}

	return record, parseFound, ""
}

// AggregateFareRules computes the OD-level penalty view for one offer: the
// MIN of all applicable record minimums and the MAX of all maximums across
// the segments composing the offer's leg set. For split round trips the
// caller passes only the leg's own segment references, so outbound and
// return are never mixed.
func AggregateFareRules(records []PenaltyRecord, legSegmentRefs []string, baseFare float64) dto.FareRules {
	var rules dto.FareRules

	type bucket struct {
		rule *dto.FareRule
		seen bool
	}

	buckets := map[string]*bucket{
		"change-before": {},
		"change-after":  {},
		"cancel-before": {},
		"cancel-after":  {},
	}

	for _, record := range records {
		if !appliesToLeg(record, legSegmentRefs) {
			continue
		}

		key := record.Action + "-after"
		if record.Applicability == ApplicabilityPriorToDeparture {
			key = record.Action + "-before"
		}

		b := buckets[key]
		if b == nil {
			continue
		}

		if !b.seen {
			b.seen = true
			b.rule = &dto.FareRule{
				Allowed:  true,
				Fee:      dto.FeeRange{Min: record.Min, Max: record.Max},
				Currency: record.Currency,
			}
		} else {
			if record.Min < b.rule.Fee.Min {
				b.rule.Fee.Min = record.Min
			}

			if record.Max > b.rule.Fee.Max {
				b.rule.Fee.Max = record.Max
			}
		}

		if len(record.Remarks) > 0 {
			conditions := strings.Join(record.Remarks, ", ")
			if b.rule.Conditions == nil {
				b.rule.Conditions = &conditions
			}
		}

		switch record.Action {
		case ActionChange:
			rules.Exchangeable = true

			if record.Max > 0 {
				rules.ChangeFee = true
			}
		case ActionCancel:
			if record.Refundable {
				rules.Refundable = true
			}
		}
	}

	if b := buckets["change-before"]; b.seen {
		rules.ChangeBeforeDeparture = b.rule
	}

	if b := buckets["change-after"]; b.seen {
		rules.ChangeAfterDeparture = b.rule
	}

	if b := buckets["cancel-before"]; b.seen {
		b.rule.RefundPercentage = refundPercentage(b.rule.Fee, baseFare, true)
		rules.CancelBeforeDeparture = b.rule
	}

	if b := buckets["cancel-after"]; b.seen {
		b.rule.RefundPercentage = refundPercentage(b.rule.Fee, baseFare, false)
		rules.CancelAfterDeparture = b.rule
	}

	return rules
}

// refundPercentage: a free cancellation prior to departure refunds in full;
// otherwise the refund is proportional to the fee against the base fare when
// the base fare is known, and omitted when it is not.
func refundPercentage(fee dto.FeeRange, baseFare float64, beforeDeparture bool) *float64 {
	if beforeDeparture && fee.Max == 0 {
		full := 100.0

		return &full
	}

	if baseFare <= 0 {
		return nil
	}

	pct := (baseFare - fee.Max) / baseFare * 100
	if pct < 0 {
		pct = 0
	}

	return &pct
}

func titleAction(action string) string {
	if action == "" {
		return ""
	}

	return strings.ToUpper(action[:1]) + action[1:]
}

func appliesToLeg(record PenaltyRecord, legSegmentRefs []string) bool {
	if len(record.SegmentRefs) == 0 || len(legSegmentRefs) == 0 {
		return true
	}

	for _, ref := range record.SegmentRefs {
		for _, leg := range legSegmentRefs {
			if ref == leg {
				return true
			}
		}
	}

	return false
}
