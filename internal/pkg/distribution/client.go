package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/avelora/flight-booking-service/internal/app/dto"
)

const (
	airShoppingPath = "/airshopping"
	flightPricePath = "/flightprice"

	rateLimitKey = "limit:distribution"
)

// Config for the upstream NDC gateway client.
type Config struct {
	APIBaseURL   string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      *redis_rate.Limiter
}

// Client talks to the upstream distribution ("NDC") API. Token acquisition
// and refresh are handled by the oauth2 client-credentials source, which
// caches tokens until expiry.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxRetries   int
	rateLimitRPS int
	limiter      *redis_rate.Limiter
}

func NewClient(cfg Config) *Client {
	credentials := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}

	httpClient := credentials.Client(context.Background())
	httpClient.Timeout = cfg.Timeout

	return &Client{
		baseURL:      cfg.APIBaseURL,
		httpClient:   httpClient,
		maxRetries:   cfg.MaxRetries,
		rateLimitRPS: cfg.RateLimitRPS,
		limiter:      cfg.Limiter,
	}
}

// AirShopping runs one shopping call and returns the raw response document
// verbatim; normalization is the engine's job, not the client's.
func (c *Client) AirShopping(ctx context.Context, criteria dto.SearchCriteria) ([]byte, error) {
	payload := buildAirShoppingPayload(criteria)

	return c.post(ctx, airShoppingPath, payload)
}

// FlightPrice prices one offer out of a previous shopping response, keyed by
// (offer id, shopping response id).
func (c *Client) FlightPrice(ctx context.Context, offerID, shoppingResponseID, currency string) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"ShoppingResponseID": shoppingResponseID,
		"SelectedOffers": []map[string]interface{}{
			{"OfferID": offerID},
		},
		"PricingPreferences": map[string]string{
			"CurrencyCode": currency,
		},
		"RequestID": uuid.New().String(),
	}

	return c.post(ctx, flightPricePath, payload)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	if err := c.allow(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request payload: %w", err)
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		response, err := c.doPost(ctx, path, body)
		if err == nil {
			return response, nil
		}

		lastErr = err

		slog.WarnContext(ctx, "distribution API call failed",
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))

		if attempt < c.maxRetries {
			// Exponential backoff: 200ms * 2^attempt
			backoff := time.Duration(200*(1<<attempt)) * time.Millisecond

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %s", ErrRetryExceeded, c.maxRetries+1, lastErr)
}

func (c *Client) doPost(ctx context.Context, path string, body []byte) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("call distribution API: %w", err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if response.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, response.StatusCode)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("distribution API returned status %d: %s", response.StatusCode, payload)
	}

	return payload, nil
}

func (c *Client) allow(ctx context.Context) error {
	if c.limiter == nil || c.rateLimitRPS <= 0 {
		return nil
	}

	res, err := c.limiter.Allow(ctx, rateLimitKey, redis_rate.PerSecond(c.rateLimitRPS))
	if err != nil {
		return fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return ErrRateLimitExceeded
	}

	return nil
}

// buildAirShoppingPayload mirrors the upstream AirShopping request grammar:
// one OriginDestination per requested leg, cabin preference, and seat counts
// per passenger type code.
func buildAirShoppingPayload(criteria dto.SearchCriteria) map[string]interface{} {
	originDestinations := make([]map[string]interface{}, 0, len(criteria.ODSegments))

	for _, seg := range criteria.ODSegments {
		originDestinations = append(originDestinations, map[string]interface{}{
			"OriginLocation":      map[string]string{"LocationCode": seg.Origin},
			"DestinationLocation": map[string]string{"LocationCode": seg.Destination},
			"DepartureDateTime":   seg.DepartureDate,
		})
	}

	cabin := criteria.CabinPreference
	if cabin == "" {
		cabin = "ECONOMY"
	}

	seats := []map[string]interface{}{
		{"Code": "ADT", "Quantity": criteria.NumAdults},
	}

	if criteria.NumChildren > 0 {
		seats = append(seats, map[string]interface{}{"Code": "CHD", "Quantity": criteria.NumChildren})
	}

	if criteria.NumInfants > 0 {
		seats = append(seats, map[string]interface{}{"Code": "INF", "Quantity": criteria.NumInfants})
	}

	return map[string]interface{}{
		"OriginDestinations": originDestinations,
		"TravelPreferences": map[string]interface{}{
			"CabinPref": []map[string]string{
				{"CabinType": cabin, "PreferLevel": "Preferred"},
			},
		},
		"TravelerInfoSummary": map[string]interface{}{
			"SeatsRequested": seats,
		},
	}
}
