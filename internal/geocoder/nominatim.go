// Package geocoder resolves place names to coordinates using the OpenStreetMap Nominatim search API.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tacitus-api/internal/models"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 10 * time.Second

// Client geocodes free-text place names.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMinInterval spaces outgoing requests at least d apart. The public Nominatim
// usage policy allows one request per second. Zero disables the limit.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// NewClient creates a Nominatim client. userAgent identifies the application to the service.
func NewClient(baseURL, userAgent string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResult is the subset of a Nominatim search hit the client reads.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve returns the coordinates of the first candidate for placeName.
// It fails with models.ErrLocationNotFound when there are no candidates and
// models.ErrUpstreamUnavailable on network or service errors.
func (c *Client) Resolve(ctx context.Context, placeName string) (models.Coordinates, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.Coordinates{}, fmt.Errorf("geocoder: %w: %w", models.ErrUpstreamUnavailable, err)
		}
	}

	params := url.Values{}
	params.Set("q", placeName)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoder: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoder: %w: %w", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("geocoder: %w: unexpected status: %s", models.ErrUpstreamUnavailable, resp.Status)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoder: %w: decode response: %w", models.ErrUpstreamUnavailable, err)
	}

	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("geocoder: no results for %q: %w", placeName, models.ErrLocationNotFound)
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoder: %w: invalid latitude %q", models.ErrUpstreamUnavailable, first.Lat)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoder: %w: invalid longitude %q", models.ErrUpstreamUnavailable, first.Lon)
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
