package offer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// OfferCache is the only storage in the system and it is transient: canonical
// offer sets cached per search criteria, and the verbatim raw document kept
// per shopping session so the later pricing call can replay it upstream.
type OfferCache struct {
	redis RedisClient
}

func NewOfferCache(redis RedisClient) *OfferCache {
	return &OfferCache{
		redis: redis,
	}
}

func criteriaKey(req dto.SearchCriteria) string {
	segments := make([]string, 0, len(req.ODSegments))
	for _, seg := range req.ODSegments {
		segments = append(segments, fmt.Sprintf("%s-%s-%s", seg.Origin, seg.Destination, seg.DepartureDate))
	}

	return fmt.Sprintf("%s:%s:%s:%d:%d:%d",
		req.TripType, strings.Join(segments, ","), req.CabinPreference,
		req.NumAdults, req.NumChildren, req.NumInfants)
}

func (c *OfferCache) GetLockKey(req dto.SearchCriteria) string {
	return "offer:lock:" + criteriaKey(req)
}

func (c *OfferCache) GetCacheKey(req dto.SearchCriteria) string {
	return "offer:cache:" + criteriaKey(req)
}

func (c *OfferCache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *OfferCache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *OfferCache) SetOffers(ctx context.Context,
	key string,
	offers []dto.CanonicalOffer,
	metadata dto.Metadata,
	expiration time.Duration,
) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("failed to marshal offers: %w", err)
	}

	err = c.redis.Set(ctx, key, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set offers: %w", err)
	}

	metadataBytes, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	err = c.redis.Set(ctx, key+":metadata", metadataBytes, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

func (c *OfferCache) GetOffers(ctx context.Context, key string) ([]dto.CanonicalOffer, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var offers []dto.CanonicalOffer
	if err := json.Unmarshal(data, &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

func (c *OfferCache) GetMetadata(ctx context.Context, key string) (dto.Metadata, error) {
	metadataBytes, err := c.redis.Get(ctx, key+":metadata").Bytes()
	if err != nil {
		return dto.Metadata{}, err
	}

	var metadata dto.Metadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return dto.Metadata{}, err
	}

	return metadata, nil
}

// SetRawDocument keeps the raw shopping response under its session
// identifier. Stored verbatim: the pricing call needs the original
// document, not the canonical view.
func (c *OfferCache) SetRawDocument(ctx context.Context,
	shoppingResponseID string,
	document []byte,
	expiration time.Duration,
) error {
	err := c.redis.Set(ctx, "offer:raw:"+shoppingResponseID, document, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set raw document: %w", err)
	}

	return nil
}

func (c *OfferCache) GetRawDocument(ctx context.Context, shoppingResponseID string) ([]byte, error) {
	return c.redis.Get(ctx, "offer:raw:"+shoppingResponseID).Bytes()
}
