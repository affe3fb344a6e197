// Implements the Places API client with fixed-interval pacing.

package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// BaseURL is the Places API base URL.
	BaseURL = "https://places.googleapis.com/v1"
	// DefaultInterval is the pause between two lookups.
	DefaultInterval = 300 * time.Millisecond
	// DefaultMaxWidth is the requested width of fetched photos.
	DefaultMaxWidth = 800
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second

	coordinatesMask = "places.id,places.displayName,places.location"
	photosMask      = "places.id,places.displayName,places.photos"
	maxErrorBody    = 200
)

// Options configures a Client.
type Options struct {
	APIKey string
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string
	// Region is appended to every query as extra free-text context.
	Region   string
	Interval time.Duration
	Timeout  time.Duration
	MaxWidth int
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client is a paced Places API client.
type Client struct {
	apiKey     string
	baseURL    string
	region     string
	maxWidth   int
	httpClient *http.Client
	pacer      *Pacer
}

// NewClient creates a new Places API client.
func NewClient(opts Options) *Client {
	c := &Client{
		apiKey:     opts.APIKey,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		region:     opts.Region,
		maxWidth:   opts.MaxWidth,
		httpClient: opts.HTTPClient,
		pacer:      NewPacer(opts.Interval),
	}
	if c.baseURL == "" {
		c.baseURL = BaseURL
	}
	if c.maxWidth <= 0 {
		c.maxWidth = DefaultMaxWidth
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

// Query returns the free-text query for a venue.
func (c *Client) Query(name, group string) string {
	parts := []string{name}
	for _, p := range []string{group, c.region} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// FindCoordinates returns the location of the best match for the venue, or
// nil when there is no match, the match has no location, or the call failed.
func (c *Client) FindCoordinates(ctx context.Context, name, group string) *Location {
	p := c.findFirst(ctx, name, group, coordinatesMask)
	if p == nil || p.Location == nil {
		return nil
	}
	loc := &Location{Lat: p.Location.Latitude, Lng: p.Location.Longitude}
	if p.DisplayName != nil {
		loc.PlaceName = p.DisplayName.Text
	}
	return loc
}

// FindPhotos returns the photo references of the best match for the venue in
// ranking order, or nil when there is none or the call failed.
func (c *Client) FindPhotos(ctx context.Context, name, group string) []Photo {
	p := c.findFirst(ctx, name, group, photosMask)
	if p == nil || len(p.Photos) == 0 {
		return nil
	}
	return p.Photos
}

// MediaURL returns the URL serving the bytes of the photo reference.
func (c *Client) MediaURL(photoName string) string {
	v := url.Values{}
	v.Set("maxWidthPx", strconv.Itoa(c.maxWidth))
	v.Set("key", c.apiKey)
	return c.baseURL + "/" + strings.TrimPrefix(photoName, "/") + "/media?" + v.Encode()
}

// findFirst runs one paced search and logs any failure.
func (c *Client) findFirst(ctx context.Context, name, group, fieldMask string) *Place {
	if err := c.pacer.Wait(ctx); err != nil {
		return nil
	}
	query := c.Query(name, group)
	p, err := c.searchText(ctx, query, fieldMask)
	if err != nil {
		slog.WarnContext(ctx, "Place search failed", "query", query, "err", err)
		return nil
	}
	return p
}

// searchText returns the first ranked match for query, or nil.
func (c *Client) searchText(ctx context.Context, query, fieldMask string) (*Place, error) {
	data, err := json.Marshal(&searchTextRequest{TextQuery: query, MaxResultCount: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == nil {
			return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(body), maxErrorBody))
		}
		return nil, apiErr.Error
	}

	var out searchTextResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if len(out.Places) == 0 {
		return nil, nil
	}
	return &out.Places[0], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
