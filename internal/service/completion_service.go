package service

import (
	"context"
	"io"

	"github.com/tripfolio/tripfolio-backend-go/internal/provider"
	"github.com/tripfolio/tripfolio-backend-go/internal/routing"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// CompletionService resolves external data into place candidates and
// routes: geocoding searches, Google Takeout and My Maps imports, and
// point-to-point routing.
type CompletionService struct {
	lookup  provider.PlaceLookup
	routing *provider.OSRMClient
}

// NewCompletionService creates a new completion service
func NewCompletionService(lookup provider.PlaceLookup, osrm *provider.OSRMClient) *CompletionService {
	return &CompletionService{lookup: lookup, routing: osrm}
}

// SearchPlaces resolves a free-text query into place candidates,
// optionally restricted to a bounding box
func (s *CompletionService) SearchPlaces(ctx context.Context, query string, bounds *spatial.BoundingBox) ([]provider.PlaceResult, error) {
	return s.lookup.Search(ctx, query, bounds)
}

// ImportTakeout resolves a Google Takeout "Saved Places" CSV into place
// candidates. Partial results are returned even when some chunks fail.
func (s *CompletionService) ImportTakeout(ctx context.Context, r io.Reader) (*provider.ImportSummary, error) {
	importer := provider.NewTakeoutImporter(s.lookup)
	return importer.Import(ctx, r)
}

// ImportKML extracts place candidates from a Google My Maps KML export.
// URL-only placemarks are resolved through the lookup provider; failures
// there drop the candidate rather than failing the import.
func (s *CompletionService) ImportKML(ctx context.Context, r io.Reader) ([]provider.PlaceResult, error) {
	results, err := provider.ParseMyMapsKML(r)
	if err != nil {
		return nil, err
	}

	resolved := make([]provider.PlaceResult, 0, len(results))
	for _, res := range results {
		if res.URL == "" {
			resolved = append(resolved, res)
			continue
		}
		candidates, err := s.lookup.Search(ctx, res.Name, nil)
		if err != nil || len(candidates) == 0 {
			continue
		}
		hit := candidates[0]
		hit.Name = res.Name
		hit.URL = res.URL
		resolved = append(resolved, hit)
	}

	return resolved, nil
}

// GetRoute resolves a route between two points. The profile is chosen
// from the straight-line distance: car above the threshold, foot below.
func (s *CompletionService) GetRoute(ctx context.Context, from, to spatial.Point) (*provider.RouteResult, string, error) {
	profile := routing.ChooseProfile(from, to)
	result, err := s.routing.Route(ctx, from, to, profile)
	if err != nil {
		return nil, "", err
	}
	return result, routing.RouteID(from, to, profile), nil
}
