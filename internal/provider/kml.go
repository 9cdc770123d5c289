package provider

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var mapsURLPattern = regexp.MustCompile(`https://[^\s<>"]+`)

// Minimal My Maps KML schema. Only the elements the import reads are
// mapped; styles, extended data and non-point geometry are ignored.
type kmlDocument struct {
	Document struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Folders    []struct {
			Placemarks []kmlPlacemark `xml:"Placemark"`
		} `xml:"Folder"`
	} `xml:"Document"`
}

type kmlPlacemark struct {
	Name        string `xml:"name"`
	Description string `xml:"description"`
	Point       *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
}

// ParseMyMapsKML extracts place candidates from a Google My Maps KML
// export. Placemarks with a Point become coordinate results; placemarks
// whose description only carries a Maps URL become URL results the caller
// can resolve through a lookup provider.
func ParseMyMapsKML(r io.Reader) ([]PlaceResult, error) {
	var doc kmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse KML: %w", err)
	}

	var results []PlaceResult

	collect := func(placemarks []kmlPlacemark) {
		for i := range placemarks {
			if res := placemarkResult(&placemarks[i]); res != nil {
				results = append(results, *res)
			}
		}
	}

	collect(doc.Document.Placemarks)
	for _, folder := range doc.Document.Folders {
		collect(folder.Placemarks)
	}

	return results, nil
}

func placemarkResult(placemark *kmlPlacemark) *PlaceResult {
	name := strings.TrimSpace(placemark.Name)
	if name == "" {
		return nil
	}

	if placemark.Point != nil {
		if lat, lng, ok := parseKMLCoordinate(placemark.Point.Coordinates); ok {
			return &PlaceResult{Name: name, Lat: lat, Lng: lng}
		}
	}

	if url := mapsURLPattern.FindString(placemark.Description); url != "" {
		return &PlaceResult{Name: name, URL: url}
	}

	return nil
}

// parseKMLCoordinate reads the first tuple of a KML coordinates string.
// KML tuples are "longitude,latitude[,altitude]".
func parseKMLCoordinate(raw string) (lat, lng float64, ok bool) {
	first := strings.Fields(strings.TrimSpace(raw))
	if len(first) == 0 {
		return 0, 0, false
	}
	parts := strings.Split(first[0], ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	lng, errLng := strconv.ParseFloat(parts[0], 64)
	lat, errLat := strconv.ParseFloat(parts[1], 64)
	if errLng != nil || errLat != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
