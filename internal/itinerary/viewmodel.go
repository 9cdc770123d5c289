// Package itinerary derives display-ready view models from raw trip data.
// All derivations are pure and side-effect free; they may be recomputed any
// number of times. Rendering side effects live in the mapview package.
package itinerary

import (
	"math"
	"sort"
	"strings"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// ViewItem is a trip item enriched with its resolved status and the
// distance in kilometers from the previous located item of the day
type ViewItem struct {
	models.TripItem
	ResolvedStatus *models.TripStatus `json:"resolved_status,omitempty"`
	Distance       *float64           `json:"distance,omitempty"`
}

// DayStats aggregates display statistics for one day
type DayStats struct {
	Count     int     `json:"count"`
	Cost      float64 `json:"cost"`
	HasPlaces bool    `json:"hasPlaces"`
}

// DayViewModel is the display model for one day of a trip
type DayViewModel struct {
	Day   models.TripDay `json:"day"`
	Items []ViewItem     `json:"items"`
	Stats DayStats       `json:"stats"`
}

// statusTable resolves plain status labels to their display form
func statusTable() map[string]models.TripStatus {
	table := make(map[string]models.TripStatus, len(models.Statuses))
	for _, s := range models.Statuses {
		table[s.Label] = s
	}
	return table
}

// EffectiveCoordinate resolves an item's coordinate: the item's own lat/lng
// when present, otherwise the linked place's. ok is false when neither is set.
func EffectiveCoordinate(item models.TripItem) (lat, lng float64, ok bool) {
	if item.Lat != nil && item.Lng != nil {
		return *item.Lat, *item.Lng, true
	}
	if item.Place != nil {
		return item.Place.Lat, item.Place.Lng, true
	}
	return 0, 0, false
}

// BuildViewModel derives per-day display models from a trip's raw days and
// a free-text search query.
//
// Per day: items are filtered by the query (text, linked place name,
// comment), sorted by time (stable, lexicographic on zero-padded HH:MM),
// then walked once carrying the previous located coordinate to compute
// inter-stop distances. A day left empty by an active query is dropped
// from the output entirely.
//
// The distance chain advances only on located items: an unlocated item
// between two located ones does not break the chain, so the second located
// item's distance is measured from the first.
func BuildViewModel(trip *models.Trip, query string) []DayViewModel {
	if trip == nil || len(trip.Days) == 0 {
		return []DayViewModel{}
	}

	query = strings.ToLower(strings.TrimSpace(query))
	hasQuery := query != ""
	statuses := statusTable()

	out := make([]DayViewModel, 0, len(trip.Days))

	for _, day := range trip.Days {
		items := day.Items

		if hasQuery {
			filtered := make([]models.TripItem, 0, len(items))
			for _, item := range items {
				if matchesQuery(item, query) {
					filtered = append(filtered, item)
				}
			}
			if len(filtered) == 0 {
				continue
			}
			items = filtered
		}

		sorted := make([]models.TripItem, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Time < sorted[j].Time
		})

		var prevLat, prevLng float64
		havePrev := false
		var totalCost float64
		hasPlaces := false

		viewItems := make([]ViewItem, 0, len(sorted))
		for _, item := range sorted {
			vi := ViewItem{TripItem: item}

			if item.Status != "" {
				if s, ok := statuses[item.Status]; ok {
					vi.ResolvedStatus = &s
				}
			}

			if lat, lng, ok := EffectiveCoordinate(item); ok {
				if havePrev {
					d := math.Round(spatial.HaversineDistanceKm(prevLat, prevLng, lat, lng)*10) / 10
					vi.Distance = &d
				}
				prevLat, prevLng = lat, lng
				havePrev = true
			}

			totalCost += item.Price
			if item.Place != nil {
				hasPlaces = true
			}

			viewItems = append(viewItems, vi)
		}

		out = append(out, DayViewModel{
			Day:   day,
			Items: viewItems,
			Stats: DayStats{
				Count:     len(viewItems),
				Cost:      totalCost,
				HasPlaces: hasPlaces,
			},
		})
	}

	return out
}

func matchesQuery(item models.TripItem, query string) bool {
	if strings.Contains(strings.ToLower(item.Text), query) {
		return true
	}
	if item.Place != nil && strings.Contains(strings.ToLower(item.Place.Name), query) {
		return true
	}
	return item.Comment != "" && strings.Contains(strings.ToLower(item.Comment), query)
}

// TotalPrice sums item prices across every day of the trip, regardless of
// any active search filter
func TotalPrice(trip *models.Trip) float64 {
	if trip == nil {
		return 0
	}
	var total float64
	for _, day := range trip.Days {
		for _, item := range day.Items {
			total += item.Price
		}
	}
	return total
}

// UsedPlaceIDs returns the set of place ids referenced by any item across
// all days. Used to refuse unlinking a place that is still planned and to
// filter "unplanned places".
func UsedPlaceIDs(trip *models.Trip) map[int64]bool {
	used := make(map[int64]bool)
	if trip == nil {
		return used
	}
	for _, day := range trip.Days {
		for _, item := range day.Items {
			if item.PlaceID != nil {
				used[*item.PlaceID] = true
			} else if item.Place != nil {
				used[item.Place.ID] = true
			}
		}
	}
	return used
}

// UnplannedPlaces filters a trip's linked places down to the ones not yet
// referenced by any item
func UnplannedPlaces(trip *models.Trip) []models.Place {
	if trip == nil {
		return nil
	}
	used := UsedPlaceIDs(trip)
	out := make([]models.Place, 0, len(trip.Places))
	for _, p := range trip.Places {
		if !used[p.ID] {
			out = append(out, p)
		}
	}
	return out
}
