// Package gpx extracts ordered track points from raw GPX documents.
// Point extraction is the only supported operation; no other GPX
// semantics (waypoints, metadata, extensions) are interpreted.
package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

type trkpt struct {
	Lat float64 `xml:"lat,attr"`
	Lon float64 `xml:"lon,attr"`
}

// ExtractTrackPoints returns the ordered list of (lat,lng) points found in
// the document's <trkpt> elements. A malformed document returns an error
// and no points; callers must not commit a partial overlay.
func ExtractTrackPoints(raw string) ([]spatial.Point, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))

	var points []spatial.Point
	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("malformed track file: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "trkpt" {
			continue
		}

		var pt trkpt
		if err := decoder.DecodeElement(&pt, &start); err != nil {
			return nil, fmt.Errorf("malformed track point: %w", err)
		}
		points = append(points, spatial.Point{Lat: pt.Lat, Lng: pt.Lon})
	}

	return points, nil
}

// TrackLength returns the total length in meters of the track contained in
// a raw GPX document
func TrackLength(raw string) (float64, error) {
	points, err := ExtractTrackPoints(raw)
	if err != nil {
		return 0, err
	}
	return spatial.PathLength(points), nil
}
