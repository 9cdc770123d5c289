package mapview

import (
	"github.com/tripfolio/tripfolio-backend-go/internal/itinerary"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// AllDays is the sentinel day id selecting every day of the trip
const AllDays int64 = -1

// HighlightColors is the fixed palette cycled over day indexes when
// highlighting all days; also shared with routing overlays.
var HighlightColors = []string{
	"#e6194b",
	"#2c8638",
	"#4363d8",
	"#9a6324",
	"#b56024",
	"#911eb4",
	"#268383",
	"#cb2ac3",
	"#617f06",
	"#906e6e",
	"#008080",
	"#856e93",
	"#7a7a00",
}

const singleDayColor = "#0000FF"

// PathSpec describes one connecting path between a day's stops
type PathSpec struct {
	Coords []spatial.Point `json:"coords"`
	Color  string          `json:"color"`
	Weight int             `json:"weight"`
	Delay  int             `json:"delay"`
}

// HighlightData is the overlay geometry derived for a highlighted day (or
// all days): connecting paths, standalone markers for items without a
// linked place, raw GPX tracks, and the points the map should fit to.
type HighlightData struct {
	Paths     []PathSpec        `json:"paths"`
	Markers   []models.TripItem `json:"markers"`
	GPXTracks []string          `json:"gpx_tracks"`
	Bounds    []spatial.Point   `json:"bounds"`
}

// HighlightLayer derives the overlay for the selected day id, or for every
// day when dayID is AllDays. Returns nil when the combined bounds would
// hold fewer than 2 points and no paths were built — nothing worth fitting
// the map to.
func HighlightLayer(trip *models.Trip, dayID int64) *HighlightData {
	if trip == nil || len(trip.Days) == 0 {
		return nil
	}

	data := &HighlightData{}

	processDay := func(day models.TripDay, color string, singleDay bool) {
		var coords []spatial.Point

		for _, item := range day.Items {
			lat, lng, ok := itinerary.EffectiveCoordinate(item)
			if !ok {
				continue
			}

			// Items with a linked place are already represented by
			// the place marker; only free-floating items get one
			if item.Place == nil && item.PlaceID == nil {
				data.Markers = append(data.Markers, item)
			}
			if item.GPX != "" {
				data.GPXTracks = append(data.GPXTracks, item.GPX)
			}
			data.Bounds = append(data.Bounds, spatial.Point{Lat: lat, Lng: lng})
			coords = append(coords, spatial.Point{Lat: lat, Lng: lng})
		}

		// Fewer than 3 located stops would draw a degenerate
		// single-segment "path"
		if len(coords) > 2 {
			delay := 600
			if singleDay {
				delay = 400
			}
			data.Paths = append(data.Paths, PathSpec{
				Coords: coords,
				Color:  color,
				Weight: 5,
				Delay:  delay,
			})
		}
	}

	if dayID == AllDays {
		for idx, day := range trip.Days {
			color := HighlightColors[idx%len(HighlightColors)]
			processDay(day, color, false)
		}
	} else {
		for _, day := range trip.Days {
			if day.ID == dayID {
				processDay(day, singleDayColor, true)
				break
			}
		}
	}

	if len(data.Bounds) >= 2 || len(data.Paths) > 0 {
		return data
	}
	return nil
}
