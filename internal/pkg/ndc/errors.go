package ndc

import (
	"errors"
	"fmt"
)

// ErrIdentifierNotFound is returned when the shopping response id cannot be
// located at any candidate path. Every downstream pricing call needs this
// identifier, so the whole transformation fails rather than defaulting.
var ErrIdentifierNotFound = errors.New("shopping response id not found at any candidate path")

// ErrMalformedDataLists is terminal for the whole call: without usable
// top-level sub-lists every offer's references would dangle.
var ErrMalformedDataLists = errors.New("malformed top-level data lists")

// ErrSplitDetection signals that a round-trip-flagged offer had no
// detectable leg boundary. The offer is returned unsplit, never dropped.
var ErrSplitDetection = errors.New("no round-trip leg boundary detected")

// ReferenceMissingError reports an offer referencing a sub-list entry absent
// from the index. The offer carrying the reference is dropped; siblings
// proceed.
type ReferenceMissingError struct {
	Kind string
	Ref  string
}

func (e ReferenceMissingError) Error() string {
	return fmt.Sprintf("unresolvable %s reference %q", e.Kind, e.Ref)
}

func (e ReferenceMissingError) Is(target error) bool {
	var other ReferenceMissingError
	if !errors.As(target, &other) {
		return false
	}

	return (other.Kind == "" || other.Kind == e.Kind) &&
		(other.Ref == "" || other.Ref == e.Ref)
}

// MissingPriceError reports an offer with no price at any fallback level.
type MissingPriceError struct {
	OfferID string
}

func (e MissingPriceError) Error() string {
	return fmt.Sprintf("offer %q has no price at any fallback level", e.OfferID)
}

// MalformedPenaltyError reports a penalty detail that carries neither a
// single amount nor a min/max pair. The record is excluded from
// aggregation; the rest of the offer is unaffected.
type MalformedPenaltyError struct {
	ObjectKey string
	Reason    string
}

func (e MalformedPenaltyError) Error() string {
	return fmt.Sprintf("malformed penalty record %q: %s", e.ObjectKey, e.Reason)
}
