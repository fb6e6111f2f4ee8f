// Package place implements the place-lookup collaborator against a
// Nominatim-compatible geocoding endpoint. The rest of the application only
// sees the candidate shape — swap the provider by swapping this package's
// client.
package place

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/adventurego/backend/internal/domain"
)

// userAgent identifies the application to the provider, as Nominatim's usage
// policy requires.
const userAgent = "adventurego-api/1.0"

// Client is a Nominatim-backed place lookup.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a Client for the given base URL (no trailing slash).
// Pass nil to use a default http.Client with a 5-second timeout; every search
// also respects the caller's context deadline.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// nominatimResult is the subset of a Nominatim /search response the client
// consumes. Coordinates arrive as strings.
type nominatimResult struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	OsmType     string `json:"osm_type"`
	OsmID       int64  `json:"osm_id"`
}

// Search returns candidate places for a free-text query.
// Transport failures and timeouts surface as domain.ErrUnavailable so the
// caller knows a retry is safe; malformed provider output does not.
func (c *Client) Search(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("limit", "10")
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("place.Client.Search: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("place.Client.Search: %w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("place.Client.Search: %w: provider returned %d",
			domain.ErrUnavailable, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("place.Client.Search: decode response: %w", err)
	}

	candidates := make([]domain.PlaceCandidate, 0, len(results))
	for _, r := range results {
		c, err := toCandidate(r)
		if err != nil {
			// Skip entries with unparseable coordinates rather than failing
			// the whole search.
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func toCandidate(r nominatimResult) (domain.PlaceCandidate, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.PlaceCandidate{}, errors.New("bad latitude")
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.PlaceCandidate{}, errors.New("bad longitude")
	}

	name := r.Name
	if name == "" {
		name = r.DisplayName
	}

	return domain.PlaceCandidate{
		Name:       name,
		Latitude:   lat,
		Longitude:  lon,
		Provider:   "nominatim",
		ProviderID: r.OsmType + "/" + strconv.FormatInt(r.OsmID, 10),
	}, nil
}
