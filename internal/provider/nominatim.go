package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// PlaceResult is a provider lookup candidate for creating a place
type PlaceResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"place,omitempty"`
	URL     string  `json:"url,omitempty"`
}

// PlaceLookup resolves a free-text query into place candidates
type PlaceLookup interface {
	Search(ctx context.Context, query string, bounds *spatial.BoundingBox) ([]PlaceResult, error)
}

// NominatimClient looks places up on an OSM Nominatim instance
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimClient creates a client for the given Nominatim base URL
func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search queries Nominatim. When bounds is non-nil, results outside the box
// are dropped (the provider's viewbox is only a hint, not a hard filter).
func (c *NominatimClient) Search(ctx context.Context, query string, bounds *spatial.BoundingBox) ([]PlaceResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "10")
	if bounds != nil {
		params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f",
			bounds.Southwest.Lng, bounds.Northeast.Lat,
			bounds.Northeast.Lng, bounds.Southwest.Lat))
	}

	requestURL := buildQueryURL(c.baseURL, "/search", params)
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "tripfolio-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("geocoding API error %d", resp.StatusCode)
	}

	var raw []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}

	results := make([]PlaceResult, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		if bounds != nil && !spatial.InBoundingBox(lat, lng, bounds) {
			continue
		}
		name := r.Name
		if name == "" {
			name = r.DisplayName
		}
		results = append(results, PlaceResult{
			Name:    name,
			Lat:     lat,
			Lng:     lng,
			Address: r.DisplayName,
		})
	}

	return results, nil
}
