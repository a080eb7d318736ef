package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	redis_client "buildmap/internal/redis"
)

const (
	cachePrefix = "geocode:"
	cacheTTL    = 24 * time.Hour
	userAgent   = "buildmap/1.0"
)

// ErrUnavailable wraps transport and server failures of the geocoding
// service. An address that simply has no match is not an error: Geocode
// returns (nil, nil) for it.
var ErrUnavailable = errors.New("geocoding service unavailable")

// Location is a geocoded address.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
}

// Client queries a Nominatim-compatible geocoding endpoint. Successful
// lookups are cached in Redis when a connection is available.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client for the given Nominatim base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// searchResult mirrors the fields of a Nominatim /search entry we use.
// Coordinates come back as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-text address to a location. Returns
// (nil, nil) when the address has no match and an ErrUnavailable-wrapped
// error when the service cannot be reached.
func (c *Client) Geocode(ctx context.Context, address string) (*Location, error) {
	if cached := c.fromCache(address); cached != nil {
		return cached, nil
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude %q", ErrUnavailable, results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude %q", ErrUnavailable, results[0].Lon)
	}

	location := &Location{
		Latitude:    lat,
		Longitude:   lng,
		DisplayName: results[0].DisplayName,
	}
	c.toCache(address, location)

	return location, nil
}

// fromCache returns a previously resolved location, or nil. Cache
// problems only cost a lookup, never fail a request.
func (c *Client) fromCache(address string) *Location {
	if redis_client.GetClient() == nil {
		return nil
	}

	data, err := redis_client.Get(cachePrefix + address)
	if err != nil {
		return nil
	}

	var location Location
	if err := json.Unmarshal([]byte(data), &location); err != nil {
		return nil
	}
	return &location
}

func (c *Client) toCache(address string, location *Location) {
	if redis_client.GetClient() == nil {
		return
	}

	data, err := json.Marshal(location)
	if err != nil {
		return
	}
	if err := redis_client.Set(cachePrefix+address, data, cacheTTL); err != nil {
		log.Printf("failed to cache geocode result for %q: %v", address, err)
	}
}
