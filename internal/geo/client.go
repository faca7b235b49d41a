// Package geo resolves a visitor's IP to a country code through an external
// geolocation service. Lookups are strictly best-effort: any failure yields
// the worldwide sentinel and never blocks page rendering or a redirect.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fastmoney/fastmoney/internal/domain"
	"github.com/fastmoney/fastmoney/internal/httpclient"
	"github.com/fastmoney/fastmoney/internal/logger"
)

// Location is the result of one geolocation lookup.
type Location struct {
	IP      string `json:"ip"`
	Country string `json:"country_code"`
}

// Unknown is the sentinel returned when a lookup fails or times out.
func Unknown(ip string) Location {
	if ip == "" {
		ip = domain.IPUnknown
	}
	return Location{IP: ip, Country: domain.CountryWorldwide}
}

// Client queries an ipapi.co-compatible endpoint, optionally caching
// answers in Redis keyed by IP.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewClient creates a geolocation client. cache may be nil; the client then
// hits the upstream service for every lookup.
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpclient.New(&httpclient.Config{Timeout: timeout}),
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Lookup resolves ip to a country code. On any error it returns the
// worldwide sentinel and a nil error; callers never need to branch on
// failure.
func (c *Client) Lookup(ctx context.Context, ip string) Location {
	if ip == "" {
		return Unknown(ip)
	}

	if loc, ok := c.cached(ctx, ip); ok {
		return loc
	}

	loc, err := c.fetch(ctx, ip)
	if err != nil {
		c.logger.Debug("Geolocation lookup failed",
			logger.String("ip", ip),
			logger.Error(err),
		)
		return Unknown(ip)
	}

	c.store(ctx, ip, loc)
	return loc
}

// fetch queries the upstream service.
func (c *Client) fetch(ctx context.Context, ip string) (Location, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, ip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Location{}, fmt.Errorf("build geo request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("geo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geo request: unexpected status %d", resp.StatusCode)
	}

	var loc Location
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return Location{}, fmt.Errorf("decode geo response: %w", err)
	}

	if loc.IP == "" {
		loc.IP = ip
	}
	if loc.Country == "" {
		loc.Country = domain.CountryWorldwide
	}
	loc.Country = strings.ToUpper(loc.Country)

	return loc, nil
}

func cacheKey(ip string) string {
	return "geo:" + ip
}

// cached returns a previously stored location. Cache errors are treated as
// misses.
func (c *Client) cached(ctx context.Context, ip string) (Location, bool) {
	if c.cache == nil {
		return Location{}, false
	}

	data, err := c.cache.Get(ctx, cacheKey(ip)).Bytes()
	if err != nil {
		return Location{}, false
	}

	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return Location{}, false
	}

	return loc, true
}

// store writes a location to the cache. Failures are logged and dropped;
// the lookup result is returned regardless.
func (c *Client) store(ctx context.Context, ip string, loc Location) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return
	}

	if err := c.cache.Set(ctx, cacheKey(ip), data, c.cacheTTL).Err(); err != nil {
		c.logger.Debug("Geolocation cache write failed",
			logger.String("ip", ip),
			logger.Error(err),
		)
	}
}
