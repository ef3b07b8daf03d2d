package ndc

import (
	"encoding/json"
	"fmt"
)

// The distribution API represents relationships by reference: offers point
// at entries in the DataLists sub-lists by identifier. The types below model
// only the paths the engine reads; everything else in the document is
// ignored by the decoder.

// RawDocument holds one shopping response in both its typed and generic
// forms. The typed form drives normalization, the generic form drives the
// bounded path extraction of fields whose nesting is not fixed across
// response variants.
type RawDocument struct {
	Response AirShoppingRS
	Root     map[string]interface{}
}

// ParseDocument decodes a raw shopping response payload once into both
// representations.
func ParseDocument(payload []byte) (*RawDocument, error) {
	var doc RawDocument

	if err := json.Unmarshal(payload, &doc.Response); err != nil {
		return nil, fmt.Errorf("decode shopping response: %w", err)
	}

	if err := json.Unmarshal(payload, &doc.Root); err != nil {
		return nil, fmt.Errorf("decode shopping response document: %w", err)
	}

	return &doc, nil
}

type AirShoppingRS struct {
	OffersGroup OffersGroup `json:"OffersGroup"`
	DataLists   DataLists   `json:"DataLists"`

	// Observed at the document root in shopping responses, inside
	// DataLists in pricing responses. Both are accepted.
	OriginDestinationList *OriginDestinationList `json:"OriginDestinationList,omitempty"`
}

type OffersGroup struct {
	AirlineOffers []AirlineOfferGroup `json:"AirlineOffers"`
}

type AirlineOfferGroup struct {
	Owner        CodeValue      `json:"Owner"`
	AirlineOffer []AirlineOffer `json:"AirlineOffer"`
}

type AirlineOffer struct {
	OfferID     *OfferID      `json:"OfferID,omitempty"`
	TotalPrice  *TotalPrice   `json:"TotalPrice,omitempty"`
	PricedOffer PricedOffer   `json:"PricedOffer"`
	TimeLimits  *TimeLimits   `json:"TimeLimits,omitempty"`
}

type OfferID struct {
	Value string `json:"value"`
	Owner string `json:"Owner,omitempty"`
}

// Payment and PaymentTimeLimit are the same deadline under two observed
// spellings.
type TimeLimits struct {
	OfferExpiration  *DateTimeValue `json:"OfferExpiration,omitempty"`
	PaymentTimeLimit *DateTimeValue `json:"PaymentTimeLimit,omitempty"`
	Payment          *DateTimeValue `json:"Payment,omitempty"`
}

type DateTimeValue struct {
	DateTime string `json:"DateTime"`
}

type PricedOffer struct {
	OfferPrice   []OfferPrice  `json:"OfferPrice"`
	TotalPrice   *TotalPrice   `json:"TotalPrice,omitempty"`
	Associations []Association `json:"Associations,omitempty"`
}

type OfferPrice struct {
	OfferItemID   string        `json:"OfferItemID,omitempty"`
	RequestedDate RequestedDate `json:"RequestedDate"`
	FareDetail    *FareDetail   `json:"FareDetail,omitempty"`
}

type RequestedDate struct {
	PriceDetail  *PriceDetail  `json:"PriceDetail,omitempty"`
	Associations []Association `json:"Associations,omitempty"`
}

type PriceDetail struct {
	TotalAmount SimpleCurrencyWrap `json:"TotalAmount"`
	BaseAmount  *CurrencyValue     `json:"BaseAmount,omitempty"`
	Taxes       *Taxes             `json:"Taxes,omitempty"`
	Discount    []Discount         `json:"Discount,omitempty"`
}

type Discount struct {
	DiscountAmount CurrencyValue `json:"DiscountAmount"`
}

type SimpleCurrencyWrap struct {
	SimpleCurrencyPrice CurrencyValue `json:"SimpleCurrencyPrice"`
}

type TotalPrice struct {
	SimpleCurrencyPrice CurrencyValue `json:"SimpleCurrencyPrice"`
}

type Taxes struct {
	Total CurrencyValue `json:"Total"`
}

type CurrencyValue struct {
	Value float64 `json:"value"`
	Code  string  `json:"Code,omitempty"`
}

type CodeValue struct {
	Value string `json:"value"`
}

type Association struct {
	ApplicableFlight   ApplicableFlight     `json:"ApplicableFlight"`
	AssociatedTraveler *AssociatedTraveler  `json:"AssociatedTraveler,omitempty"`
	PriceClass         *PriceClassReference `json:"PriceClass,omitempty"`
}

type AssociatedTraveler struct {
	TravelerReferences []string `json:"TravelerReferences"`
}

type PriceClassReference struct {
	PriceClassReference string `json:"PriceClassReference"`
}

type ApplicableFlight struct {
	FlightSegmentReference      []FlightSegmentReference `json:"FlightSegmentReference,omitempty"`
	OriginDestinationReferences []string                 `json:"OriginDestinationReferences,omitempty"`
}

type FlightSegmentReference struct {
	Ref                  string                `json:"ref"`
	BagDetailAssociation *BagDetailAssociation `json:"BagDetailAssociation,omitempty"`
}

type BagDetailAssociation struct {
	CarryOnReferences    []string `json:"CarryOnReferences,omitempty"`
	CheckedBagReferences []string `json:"CheckedBagReferences,omitempty"`
}

type FareDetail struct {
	FareComponent []FareComponent `json:"FareComponent"`
}

type FareComponent struct {
	SegmentRefs []string   `json:"refs,omitempty"`
	FareBasis   *FareBasis `json:"FareBasis,omitempty"`
	FareRules   *FareRules `json:"FareRules,omitempty"`
}

type FareBasis struct {
	FareBasisCode FareBasisCode `json:"FareBasisCode"`
}

type FareBasisCode struct {
	Code string `json:"Code"`
}

type FareRules struct {
	Penalty *PenaltyRefs `json:"Penalty,omitempty"`
}

type PenaltyRefs struct {
	Refs []string `json:"refs"`
}

type DataLists struct {
	FlightSegmentList       *FlightSegmentList       `json:"FlightSegmentList,omitempty"`
	FlightList              *FlightList              `json:"FlightList,omitempty"`
	OriginDestinationList   *OriginDestinationList   `json:"OriginDestinationList,omitempty"`
	CarryOnAllowanceList    *CarryOnAllowanceList    `json:"CarryOnAllowanceList,omitempty"`
	CheckedBagAllowanceList *CheckedBagAllowanceList `json:"CheckedBagAllowanceList,omitempty"`
	PenaltyList             *PenaltyList             `json:"PenaltyList,omitempty"`
	AnonymousTravelerList   *AnonymousTravelerList   `json:"AnonymousTravelerList,omitempty"`
	PriceClassList          *PriceClassList          `json:"PriceClassList,omitempty"`
	ServiceList             *ServiceList             `json:"ServiceList,omitempty"`
}

type AnonymousTravelerList struct {
	AnonymousTraveler []AnonymousTraveler `json:"AnonymousTraveler"`
}

type AnonymousTraveler struct {
	ObjectKey string    `json:"ObjectKey"`
	PTC       CodeValue `json:"PTC"`
}

type PriceClassList struct {
	PriceClass []PriceClass `json:"PriceClass"`
}

// ServiceList is the alternate carrier spelling of PriceClassList; entries
// share the PriceClass shape.
type ServiceList struct {
	Service []PriceClass `json:"Service"`
}

type PriceClass struct {
	ObjectKey    string        `json:"ObjectKey"`
	Descriptions *Descriptions `json:"Descriptions,omitempty"`
}

type FlightSegmentList struct {
	FlightSegment []FlightSegment `json:"FlightSegment"`
}

type FlightSegment struct {
	SegmentKey       string         `json:"SegmentKey"`
	Departure        SegmentEnd     `json:"Departure"`
	Arrival          SegmentEnd     `json:"Arrival"`
	MarketingCarrier *Carrier       `json:"MarketingCarrier,omitempty"`
	OperatingCarrier *Carrier       `json:"OperatingCarrier,omitempty"`
	Equipment        *Equipment     `json:"Equipment,omitempty"`
	FlightDetail     *FlightDetail  `json:"FlightDetail,omitempty"`
}

type SegmentEnd struct {
	AirportCode CodeValue `json:"AirportCode"`
	Date        string    `json:"Date,omitempty"`
	Time        string    `json:"Time,omitempty"`
	Terminal    *Terminal `json:"Terminal,omitempty"`
}

type Terminal struct {
	Name string `json:"Name"`
}

type Carrier struct {
	AirlineID    CodeValue  `json:"AirlineID"`
	Name         string     `json:"Name,omitempty"`
	FlightNumber *CodeValue `json:"FlightNumber,omitempty"`
}

type Equipment struct {
	AircraftCode string `json:"AircraftCode"`
}

type FlightDetail struct {
	FlightDuration *FlightDuration `json:"FlightDuration,omitempty"`
}

type FlightDuration struct {
	Value string `json:"Value"`
}

type FlightList struct {
	Flight []Flight `json:"Flight"`
}

type Flight struct {
	FlightKey         string            `json:"FlightKey"`
	SegmentReferences SegmentReferences `json:"SegmentReferences"`
}

type SegmentReferences struct {
	Value []string `json:"value"`
}

type OriginDestinationList struct {
	OriginDestination []OriginDestination `json:"OriginDestination"`
}

type OriginDestination struct {
	OriginDestinationKey string            `json:"OriginDestinationKey"`
	Departure            *ODEndpoint       `json:"Departure,omitempty"`
	Arrival              *ODEndpoint       `json:"Arrival,omitempty"`
	FlightReferences     SegmentReferences `json:"FlightReferences"`
}

type ODEndpoint struct {
	AirportCode string `json:"AirportCode"`
	AirportName string `json:"AirportName,omitempty"`
	Terminal    string `json:"Terminal,omitempty"`
}

type CarryOnAllowanceList struct {
	CarryOnAllowance []BaggageAllowance `json:"CarryOnAllowance"`
}

type CheckedBagAllowanceList struct {
	CheckedBagAllowance []BaggageAllowance `json:"CheckedBagAllowance"`
}

type BaggageAllowance struct {
	ListKey              string                `json:"ListKey"`
	AllowanceDescription *AllowanceDescription `json:"AllowanceDescription,omitempty"`
}

type AllowanceDescription struct {
	Descriptions Descriptions `json:"Descriptions"`
}

type Descriptions struct {
	Description []Description `json:"Description"`
}

type Description struct {
	Text CodeValue `json:"Text"`
}

type PenaltyList struct {
	Penalty []RawPenalty `json:"Penalty"`
}

// RawPenalty is one penalty list entry. A single entry may describe several
// Detail sub-records, each with its own applicability code; that one-to-many
// shape is preserved here and flattened only by the aggregator.
type RawPenalty struct {
	ObjectKey     string          `json:"ObjectKey"`
	RefundableInd bool            `json:"RefundableInd"`
	CancelFeeInd  bool            `json:"CancelFeeInd"`
	Details       *PenaltyDetails `json:"Details,omitempty"`
}

type PenaltyDetails struct {
	Detail []PenaltyDetail `json:"Detail"`
}

type PenaltyDetail struct {
	Type        string          `json:"Type"`
	Application *Application    `json:"Application,omitempty"`
	Amounts     *PenaltyAmounts `json:"Amounts,omitempty"`
}

type Application struct {
	Code string `json:"Code"`
}

type PenaltyAmounts struct {
	Amount []PenaltyAmount `json:"Amount"`
}

type PenaltyAmount struct {
	CurrencyAmountValue  CurrencyValue  `json:"CurrencyAmountValue"`
	AmountApplication    string         `json:"AmountApplication,omitempty"`
	ApplicableFeeRemarks *RemarksHolder `json:"ApplicableFeeRemarks,omitempty"`
}

type RemarksHolder struct {
	Remark []CodeValue `json:"Remark"`
}
