package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelora/flight-booking-service/internal/app/dto"
	"github.com/avelora/flight-booking-service/internal/pkg/logger"
	"github.com/avelora/flight-booking-service/internal/pkg/ndc"
	"github.com/avelora/flight-booking-service/internal/pkg/offer"
)

// DistributionClient is the upstream NDC distribution gateway.
type DistributionClient interface {
	AirShopping(ctx context.Context, criteria dto.SearchCriteria) ([]byte, error)
	FlightPrice(ctx context.Context, offerID, shoppingResponseID, currency string) (json.RawMessage, error)
}

// OfferTransformer turns raw upstream documents into their canonical forms:
// shopping responses into offers, pricing responses into per passenger-type
// breakdowns.
type OfferTransformer interface {
	Transform(ctx context.Context, doc *ndc.RawDocument, opts ndc.Options) (ndc.Result, error)
	TransformPricing(ctx context.Context, rs *ndc.FlightPriceRS) ([]dto.PricedOfferBreakdown, error)
}

type OfferCacher interface {
	GetLockKey(req dto.SearchCriteria) string
	GetCacheKey(req dto.SearchCriteria) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetOffers(ctx context.Context, key string) ([]dto.CanonicalOffer, error)
	GetMetadata(ctx context.Context, key string) (dto.Metadata, error)
	SetOffers(ctx context.Context,
		key string,
		offers []dto.CanonicalOffer,
		metadata dto.Metadata,
		expiration time.Duration,
	) error
	SetRawDocument(ctx context.Context, shoppingResponseID string, raw []byte, expiration time.Duration) error
	GetRawDocument(ctx context.Context, shoppingResponseID string) ([]byte, error)
}

type ShoppingService struct {
	Distribution         DistributionClient
	Engine               OfferTransformer
	Cache                OfferCacher
	OfferCacheExpiration time.Duration
	OfferLockTimeout     time.Duration
}

func NewShoppingService(distribution DistributionClient,
	engine OfferTransformer, cache OfferCacher,
	offerCacheExpiration time.Duration,
	offerLockTimeout time.Duration) *ShoppingService {
	return &ShoppingService{
		Distribution:         distribution,
		Engine:               engine,
		Cache:                cache,
		OfferCacheExpiration: offerCacheExpiration,
		OfferLockTimeout:     offerLockTimeout,
	}
}

// SearchOffers runs an air shopping request against the distribution system,
// normalizes the raw response into canonical offers, and caches both the
// offers and the raw document so the pricing endpoint can replay it later.
// SearchOffers godoc
// @Summary      Search offers
// @Tags         Offers
// @Description  Search bookable offers and return them in canonical form
// @Param        request  body      dto.SearchCriteria  true  "Search Criteria"
// @Success      200      {object}  dto.SearchOffersResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/offers/search [post]
func (s *ShoppingService) SearchOffers(
	ctx context.Context,
	req dto.SearchCriteria,
) (dto.SearchOffersResponse, error) {
	var (
		offers   []dto.CanonicalOffer
		metadata dto.Metadata
	)

	startTime := time.Now()
	cacheHit := false

	cacheKey := s.Cache.GetCacheKey(req)
	lockKey := s.Cache.GetLockKey(req)

	offers, err := s.Cache.GetOffers(ctx, cacheKey)
	if err == nil {
		cacheHit = true
	} else {
		slog.WarnContext(ctx, "failed to get offers from cache", slog.String("error", err.Error()))
	}

	metadata, err = s.Cache.GetMetadata(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to get metadata from cache", slog.String("error", err.Error()))
	}

	// cache miss: shop upstream, normalize, store to cache
	if !cacheHit {
		// concurrent requests with the same criteria race for the lock;
		// only the winner writes the cache, the rest still serve the
		// freshly transformed result they already hold
		offers, metadata, err = s.shopAndTransform(ctx, req)
		if err != nil {
			return dto.SearchOffersResponse{}, err
		}

		// every log record from here on carries the session id
		ctx = context.WithValue(ctx, logger.SessionIDKey, metadata.ShoppingResponseID)

		acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.OfferLockTimeout)
		if err != nil {
			return dto.SearchOffersResponse{}, fmt.Errorf("failed to acquire lock: %w", err)
		}
		defer s.Cache.ReleaseLock(ctx, lockKey)

		if acquired {
			err = s.Cache.SetOffers(ctx, cacheKey, offers, metadata, s.OfferCacheExpiration)
			if err != nil {
				return dto.SearchOffersResponse{}, fmt.Errorf("failed to set offers to cache: %w", err)
			}
		}
	}

	filteredOffers := offer.FilterOffers(offers, req.FilterOption)
	sortedOffers := offer.SortOffers(filteredOffers, req.SortOption)

	metadata.TotalResults = len(sortedOffers)
	metadata.SearchTimeMs = int(time.Since(startTime).Milliseconds())
	metadata.CacheHit = cacheHit

	if len(sortedOffers) == 0 {
		return dto.SearchOffersResponse{}, ErrNoOffersFound
	}

	return dto.SearchOffersResponse{
		Offers:         sortedOffers,
		SearchCriteria: req,
		Metadata:       metadata,
	}, nil
}

func (s *ShoppingService) shopAndTransform(ctx context.Context,
	req dto.SearchCriteria,
) ([]dto.CanonicalOffer, dto.Metadata, error) {
	raw, err := s.Distribution.AirShopping(ctx, req)
	if err != nil {
		return nil, dto.Metadata{}, fmt.Errorf("failed to shop offers: %w", err)
	}

	doc, err := ndc.ParseDocument(raw)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse shopping response", slog.Any("error", err))

		return nil, dto.Metadata{}, ErrInvalidUpstreamResponse.WithCause(err)
	}

	result, err := s.Engine.Transform(ctx, doc, ndc.Options{
		EnableRoundtripSplit: req.EnableRoundtripSplit,
		TripType:             req.TripType,
	})
	if err != nil {
		if errors.Is(err, ndc.ErrIdentifierNotFound) || errors.Is(err, ndc.ErrMalformedDataLists) {
			slog.ErrorContext(ctx, "unusable shopping response", slog.Any("error", err))

			return nil, dto.Metadata{}, ErrInvalidUpstreamResponse.WithCause(err)
		}

		return nil, dto.Metadata{}, fmt.Errorf("failed to transform offers: %w", err)
	}

	metadata := dto.Metadata{
		DroppedOffers:      result.DroppedOffers,
		ShoppingResponseID: result.ShoppingResponseID,
	}

	ctx = context.WithValue(ctx, logger.SessionIDKey, result.ShoppingResponseID)

	// keep the raw document around so FlightPrice can reference it
	err = s.Cache.SetRawDocument(ctx, result.ShoppingResponseID, raw, s.OfferCacheExpiration)
	if err != nil {
		slog.WarnContext(ctx, "failed to store raw shopping document",
			slog.String("error", err.Error()))
	}

	return result.Offers, metadata, nil
}

// PriceOffer reprices one offer from an earlier shopping session.
// PriceOffer godoc
// @Summary      Price offer
// @Tags         Offers
// @Description  Reprice a previously returned offer through the distribution system
// @Param        request  body      dto.PriceCriteria  true  "Price Criteria"
// @Success      200      {object}  dto.PriceOfferResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/offers/price [post]
func (s *ShoppingService) PriceOffer(
	ctx context.Context,
	req dto.PriceCriteria,
) (dto.PriceOfferResponse, error) {
	raw, err := s.Cache.GetRawDocument(ctx, req.ShoppingResponseID)
	if err != nil {
		slog.WarnContext(ctx, "shopping session not found",
			slog.String("shopping_response_id", req.ShoppingResponseID),
			slog.String("error", err.Error()))

		return dto.PriceOfferResponse{}, ErrSessionNotFound
	}

	doc, err := ndc.ParseDocument(raw)
	if err != nil {
		return dto.PriceOfferResponse{}, fmt.Errorf("failed to parse stored document: %w", err)
	}

	currency, found := ndc.OfferCurrency(&doc.Response, req.OfferID)
	if !found {
		return dto.PriceOfferResponse{}, ErrOfferNotFound
	}

	pricing, err := s.Distribution.FlightPrice(ctx, req.OfferID, req.ShoppingResponseID, currency)
	if err != nil {
		return dto.PriceOfferResponse{}, fmt.Errorf("failed to price offer: %w", err)
	}

	pricingDoc, err := ndc.ParsePricingDocument(pricing)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse pricing response", slog.Any("error", err))

		return dto.PriceOfferResponse{}, ErrInvalidUpstreamResponse.WithCause(err)
	}

	breakdowns, err := s.Engine.TransformPricing(ctx, pricingDoc)
	if err != nil {
		slog.ErrorContext(ctx, "unusable pricing response", slog.Any("error", err))

		return dto.PriceOfferResponse{}, ErrInvalidUpstreamResponse.WithCause(err)
	}

	return dto.PriceOfferResponse{
		OfferID:            req.OfferID,
		ShoppingResponseID: req.ShoppingResponseID,
		PricedOffers:       breakdowns,
	}, nil
}
