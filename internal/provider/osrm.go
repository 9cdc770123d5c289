// Package provider wraps the third-party lookup services the planner
// completes data from: OSRM routing, Nominatim geocoding, Google My Maps
// KML and Takeout CSV imports. Failures are isolated per request; callers
// degrade to partial results rather than aborting.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/tripfolio/tripfolio-backend-go/internal/routing"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// OSRMClient queries an OSRM instance for point-to-point routes
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMClient creates a client for the given OSRM base URL
func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry string  `json:"geometry"`
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// RouteResult is a resolved route between two points
type RouteResult struct {
	Geometry        []spatial.Point `json:"geometry"`
	DistanceMeters  float64         `json:"distance"`
	DurationSeconds float64         `json:"duration"`
	Profile         routing.Profile `json:"profile"`
}

// Route queries OSRM for a route between two points with the given profile
func (c *OSRMClient) Route(ctx context.Context, from, to spatial.Point, profile routing.Profile) (*RouteResult, error) {
	requestURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full",
		c.baseURL, profile, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("routing API error %d: %s", resp.StatusCode, string(body))
	}

	var response osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}
	if response.Code != "Ok" || len(response.Routes) == 0 {
		return nil, fmt.Errorf("no route found (code %s)", response.Code)
	}

	route := response.Routes[0]
	coords, _, err := polyline.DecodeCoords([]byte(route.Geometry))
	if err != nil {
		return nil, fmt.Errorf("failed to decode route geometry: %w", err)
	}

	geometry := make([]spatial.Point, 0, len(coords))
	for _, c := range coords {
		geometry = append(geometry, spatial.Point{Lat: c[0], Lng: c[1]})
	}

	return &RouteResult{
		Geometry:        geometry,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
		Profile:         profile,
	}, nil
}

// buildQueryURL is shared by the lookup clients
func buildQueryURL(base, path string, params url.Values) string {
	return fmt.Sprintf("%s%s?%s", base, path, params.Encode())
}
