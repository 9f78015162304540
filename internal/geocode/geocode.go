package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/armandonoel2022/srcapp-sub001/internal/geo"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	// Cached addresses outlive any realistic tracker session.
	cacheTTL = 24 * time.Hour

	// The provider rate-limits aggressively; batch lookups go out
	// sequentially at this pace.
	requestsPerSecond = 1
)

// Client resolves coordinates to street addresses. Lookups are memoized in
// redis, deduplicated in flight, and paced to the provider's rate limit.
// Resolution is best effort: any failure yields an empty address, never an
// error, because an address is decoration on the history screen.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	rdb        *redis.Client
	group      singleflight.Group
	limiter    *rate.Limiter
	logger     *zap.Logger
}

func NewClient(httpClient *http.Client, baseURL, apiKey string, rdb *redis.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		rdb:        rdb,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:     zap.L().Named("geocode.client"),
	}
}

// Reverse returns the street address for the point, or "" when unresolvable.
func (c *Client) Reverse(ctx context.Context, point geo.GeoPoint) string {
	if c.apiKey == "" {
		return ""
	}

	key := cacheKey(point)
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, key).Result(); err == nil {
			return cached
		}
	}

	// Concurrent lookups of the same point share one provider request.
	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		return c.fetch(ctx, point)
	})
	if err != nil {
		c.logger.Warn("reverse geocode failed",
			zap.Float64("latitude", point.Latitude),
			zap.Float64("longitude", point.Longitude),
			zap.Error(err),
		)
		return ""
	}

	address := result.(string)
	if address != "" && c.rdb != nil {
		if err := c.rdb.Set(ctx, key, address, cacheTTL).Err(); err != nil {
			c.logger.Warn("geocode cache write failed", zap.Error(err))
		}
	}
	return address
}

// ReverseBatch resolves the points in order. The limiter spaces the calls
// out so a full trace never bursts the provider.
func (c *Client) ReverseBatch(ctx context.Context, points []geo.GeoPoint) []string {
	addresses := make([]string, len(points))
	for i, p := range points {
		addresses[i] = c.Reverse(ctx, p)
	}
	return addresses
}

type reverseResponse struct {
	Address string `json:"address"`
}

func (c *Client) fetch(ctx context.Context, point geo.GeoPoint) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%s&lng=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%.5f", point.Latitude)),
		url.QueryEscape(fmt.Sprintf("%.5f", point.Longitude)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode provider returned %d", resp.StatusCode)
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.Address, nil
}

// cacheKey rounds to 5 decimal places (about a meter) so nearby fixes share
// one cache entry.
func cacheKey(point geo.GeoPoint) string {
	return fmt.Sprintf("geocode:%.5f,%.5f", point.Latitude, point.Longitude)
}
