// Package wikipedia looks up reference articles through the MediaWiki action API.
package wikipedia

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
)

const (
	// DefaultBaseURL is the English Wikipedia host.
	DefaultBaseURL = "https://en.wikipedia.org"
	// ArticleBaseURL prefixes every article URL the client produces.
	ArticleBaseURL = "https://en.wikipedia.org/wiki/"
	// DefaultRadiusMeters is the geosearch radius used when none is given.
	DefaultRadiusMeters = 10000
	// MaxResults caps both search modes.
	MaxResults = 10
)

// Client searches Wikipedia for articles by title text or by coordinates.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client against baseURL (DefaultBaseURL when empty).
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
		GeoSearch []struct {
			Title string  `json:"title"`
			Dist  float64 `json:"dist"`
		} `json:"geosearch"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// SearchByText returns up to MaxResults article URLs matching name, in relevance order.
func (c *Client) SearchByText(ctx context.Context, name string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", name)
	params.Set("srlimit", strconv.Itoa(MaxResults))
	params.Set("format", "json")
	params.Set("utf8", "1")

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("wikipedia: text search %q: %w", name, err)
	}

	urls := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		urls = append(urls, ArticleURL(hit.Title))
	}
	return limit(urls), nil
}

// SearchByCoordinates returns up to MaxResults article URLs within radiusMeters of the
// given point, nearest first. A non-positive radius uses DefaultRadiusMeters.
func (c *Client) SearchByCoordinates(ctx context.Context, lat, lon float64, radiusMeters int) ([]string, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "geosearch")
	params.Set("gscoord", strconv.FormatFloat(lat, 'f', -1, 64)+"|"+strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("gsradius", strconv.Itoa(radiusMeters))
	params.Set("gslimit", strconv.Itoa(MaxResults))
	params.Set("format", "json")

	resp, err := c.query(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("wikipedia: geo search (%f, %f): %w", lat, lon, err)
	}

	urls := make([]string, 0, len(resp.Query.GeoSearch))
	for _, hit := range resp.Query.GeoSearch {
		urls = append(urls, ArticleURL(hit.Title))
	}
	return limit(urls), nil
}

func (c *Client) query(ctx context.Context, params url.Values) (*searchResponse, error) {
	reqURL := fmt.Sprintf("%s/w/api.php?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status: %s", models.ErrUpstreamUnavailable, resp.Status)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", models.ErrUpstreamUnavailable, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("%w: api error %s: %s", models.ErrUpstreamUnavailable, out.Error.Code, out.Error.Info)
	}
	return &out, nil
}

// ArticleURL builds the canonical article URL for a title.
func ArticleURL(title string) string {
	return ArticleBaseURL + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func limit(urls []string) []string {
	if len(urls) > MaxResults {
		return urls[:MaxResults]
	}
	return urls
}
