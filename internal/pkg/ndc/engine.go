package ndc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

const shoppingResponseIDField = "ShoppingResponseID"

// Config carries the engine's injected lookup tables and its fan-out bound.
// Lookup tables are configuration, not embedded constants, so alternate
// vendor datasets can be exercised in tests.
type Config struct {
	ApplicabilityCodes map[string]Applicability
	AirportNames       map[string]string
	Workers            int
}

type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.ApplicabilityCodes == nil {
		cfg.ApplicabilityCodes = DefaultApplicabilityCodes()
	}

	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}

	return &Engine{cfg: cfg}
}

// Options are the per-call flags of one transformation.
// EnableRoundtripSplit only takes effect when TripType is round-trip;
// one-way and multi-city journeys have no outbound/return decomposition
// and pass through unsplit.
type Options struct {
	EnableRoundtripSplit bool
	TripType             string
}

// Result is the canonical offer set for one raw shopping response, plus the
// extracted session identifier and drop diagnostics.
type Result struct {
	Offers             []dto.CanonicalOffer
	ShoppingResponseID string
	MatchedPath        string
	DroppedOffers      int
}

type offerJob struct {
	airlineCode string
	offer       *AirlineOffer
}

type offerResult struct {
	offers []dto.CanonicalOffer
	err    error
}

// Transform converts one raw shopping response into the canonical offer
// set. Failures local to one offer drop that offer and continue; a missing
// session identifier or malformed top-level sub-lists fail the whole call.
func (e *Engine) Transform(ctx context.Context, doc *RawDocument, opts Options) (Result, error) {
	match, err := ExtractScalar(doc.Root, shoppingResponseIDField)
	if err != nil {
		return Result{}, err
	}

	idx := BuildReferenceIndex(&doc.Response, e.cfg.AirportNames)

	jobs := collectJobs(&doc.Response)
	if len(jobs) > 0 && idx.SegmentCount() == 0 {
		return Result{}, fmt.Errorf("%w: offers present but flight segment list is empty", ErrMalformedDataLists)
	}

	result := Result{
		ShoppingResponseID: match.Value,
		MatchedPath:        match.Path,
	}

	for _, res := range e.fanOut(ctx, jobs, idx, opts) {
		if res.err != nil {
			result.DroppedOffers++

			slog.WarnContext(ctx, "dropping offer",
				slog.String("reason", res.err.Error()))

			continue
		}

		result.Offers = append(result.Offers, res.offers...)
	}

	return result, nil
}

// fanOut runs per-offer normalization over a bounded worker pool. Offers
// within one response are independent once the index is built, and the
// output collection is unordered by contract.
func (e *Engine) fanOut(ctx context.Context, jobs []offerJob, idx *ReferenceIndex, opts Options) []offerResult {
	jobCh := make(chan offerJob)
	resultCh := make(chan offerResult, len(jobs))

	var wg sync.WaitGroup

	workers := e.cfg.Workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			for job := range jobCh {
				resultCh <- e.processOffer(ctx, job, idx, opts)
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}

	close(jobCh)
	wg.Wait()
	close(resultCh)

	results := make([]offerResult, 0, len(jobs))
	for res := range resultCh {
		results = append(results, res)
	}

	return results
}

func (e *Engine) processOffer(ctx context.Context, job offerJob, idx *ReferenceIndex, opts Options) offerResult {
	normalized, err := e.normalizeOffer(ctx, job.airlineCode, job.offer, idx)
	if err != nil {
		return offerResult{err: err}
	}

	normalized.Offer.TripType = opts.TripType

	if opts.EnableRoundtripSplit && opts.TripType == TripTypeRoundTrip {
		outbound, inbound, splitErr := SplitRoundTrip(normalized)
		if splitErr != nil {
			// Never dropped: the parent form is returned instead.
			slog.WarnContext(ctx, "returning offer unsplit",
				slog.String("offer_id", normalized.Offer.ID),
				slog.String("reason", splitErr.Error()))
		} else {
			return offerResult{offers: []dto.CanonicalOffer{
				e.finalizeOffer(outbound),
				e.finalizeOffer(inbound),
			}}
		}
	}

	return offerResult{offers: []dto.CanonicalOffer{e.finalizeOffer(normalized)}}
}

// finalizeOffer aggregates fare rules once the offer's leg grouping is
// final.
func (e *Engine) finalizeOffer(normalized normalizedOffer) dto.CanonicalOffer {
	normalized.Offer.FareRules = AggregateFareRules(
		normalized.Records,
		normalized.SegmentRefs,
		normalized.Offer.PriceBreakdown.BaseFare,
	)

	return normalized.Offer
}

func collectJobs(rs *AirShoppingRS) []offerJob {
	var jobs []offerJob

	for i := range rs.OffersGroup.AirlineOffers {
		group := &rs.OffersGroup.AirlineOffers[i]

		airlineCode := group.Owner.Value
		if airlineCode == "" {
			airlineCode = "Unknown"
		}

		for j := range group.AirlineOffer {
			jobs = append(jobs, offerJob{
				airlineCode: airlineCode,
				offer:       &group.AirlineOffer[j],
			})
		}
	}

	return jobs
}
