package ndc

// AirportInfo is resolved airport reference data: the document's
// OriginDestinationList entries merged with the injected airport-name
// dataset.
type AirportInfo struct {
	Code     string
	Name     string
	Terminal string
}

// ReferenceIndex maps the raw document's internal identifiers to their
// sub-list entries. Built once per document, read-only afterward. Lookups
// report misses explicitly so callers can apply fallback policy
// deterministically.
type ReferenceIndex struct {
	segments   map[string]*FlightSegment
	flights    map[string][]string
	odFlights  map[string][]string
	airports   map[string]AirportInfo
	carryOn    map[string]*BaggageAllowance
	checkedBag map[string]*BaggageAllowance
	penalties  map[string]*RawPenalty
}

// BuildReferenceIndex indexes every sub-list entry present in the document.
// airportNames is the injected code-to-name table; document-supplied names
// take precedence over it.
func BuildReferenceIndex(rs *AirShoppingRS, airportNames map[string]string) *ReferenceIndex {
	idx := &ReferenceIndex{
		segments:   make(map[string]*FlightSegment),
		flights:    make(map[string][]string),
		odFlights:  make(map[string][]string),
		airports:   make(map[string]AirportInfo),
		carryOn:    make(map[string]*BaggageAllowance),
		checkedBag: make(map[string]*BaggageAllowance),
		penalties:  make(map[string]*RawPenalty),
	}

	for code, name := range airportNames {
		idx.airports[code] = AirportInfo{Code: code, Name: name}
	}

	if list := rs.DataLists.FlightSegmentList; list != nil {
		for i := range list.FlightSegment {
			seg := &list.FlightSegment[i]
			if seg.SegmentKey != "" {
				idx.segments[seg.SegmentKey] = seg
			}
		}
	}

	if list := rs.DataLists.FlightList; list != nil {
		for _, flight := range list.Flight {
			if flight.FlightKey != "" {
				idx.flights[flight.FlightKey] = flight.SegmentReferences.Value
			}
		}
	}

	// Root-level list first, DataLists variant second.
	odList := rs.OriginDestinationList
	if odList == nil {
		odList = rs.DataLists.OriginDestinationList
	}

	if odList != nil {
		for _, od := range odList.OriginDestination {
			idx.addODEndpoint(od.Departure)
			idx.addODEndpoint(od.Arrival)

			if od.OriginDestinationKey != "" {
				idx.odFlights[od.OriginDestinationKey] = od.FlightReferences.Value
			}
		}
	}

	if list := rs.DataLists.CarryOnAllowanceList; list != nil {
		for i := range list.CarryOnAllowance {
			allowance := &list.CarryOnAllowance[i]
			if allowance.ListKey != "" {
				idx.carryOn[allowance.ListKey] = allowance
			}
		}
	}

	if list := rs.DataLists.CheckedBagAllowanceList; list != nil {
		for i := range list.CheckedBagAllowance {
			allowance := &list.CheckedBagAllowance[i]
			if allowance.ListKey != "" {
				idx.checkedBag[allowance.ListKey] = allowance
			}
		}
	}

	if list := rs.DataLists.PenaltyList; list != nil {
		for i := range list.Penalty {
			penalty := &list.Penalty[i]
			if penalty.ObjectKey != "" {
				idx.penalties[penalty.ObjectKey] = penalty
			}
		}
	}

	return idx
}

func (idx *ReferenceIndex) addODEndpoint(end *ODEndpoint) {
	if end == nil || end.AirportCode == "" {
		return
	}

	info := AirportInfo{
		Code:     end.AirportCode,
		Name:     end.AirportName,
		Terminal: end.Terminal,
	}

	if info.Name == "" {
		if existing, ok := idx.airports[end.AirportCode]; ok {
			info.Name = existing.Name
		}
	}

	if info.Name == "" {
		info.Name = end.AirportCode
	}

	idx.airports[end.AirportCode] = info
}

func (idx *ReferenceIndex) Segment(key string) (*FlightSegment, bool) {
	seg, ok := idx.segments[key]

	return seg, ok
}

// FlightSegments returns the segment keys composing one FlightList entry.
func (idx *ReferenceIndex) FlightSegments(key string) ([]string, bool) {
	refs, ok := idx.flights[key]

	return refs, ok
}

// ODFlights returns the flight keys composing one origin-destination entry.
func (idx *ReferenceIndex) ODFlights(key string) ([]string, bool) {
	refs, ok := idx.odFlights[key]

	return refs, ok
}

// Airport never misses: unknown codes resolve to a code-only descriptor so
// presentation always has something to show.
func (idx *ReferenceIndex) Airport(code string) AirportInfo {
	if info, ok := idx.airports[code]; ok {
		return info
	}

	return AirportInfo{Code: code, Name: code}
}

func (idx *ReferenceIndex) CarryOnAllowance(key string) (*BaggageAllowance, bool) {
	allowance, ok := idx.carryOn[key]

	return allowance, ok
}

func (idx *ReferenceIndex) CheckedBagAllowance(key string) (*BaggageAllowance, bool) {
	allowance, ok := idx.checkedBag[key]

	return allowance, ok
}

// Penalty returns one penalty list entry with its one-to-many Detail shape
// intact; flattening is the aggregator's call.
func (idx *ReferenceIndex) Penalty(key string) (*RawPenalty, bool) {
	penalty, ok := idx.penalties[key]

	return penalty, ok
}

func (idx *ReferenceIndex) SegmentCount() int { return len(idx.segments) }

func (idx *ReferenceIndex) PenaltyCount() int { return len(idx.penalties) }
