package spatial

import (
	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	EarthRadiusKm     = 6371.0    // Earth's mean radius in kilometers
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LatLng is a named coordinate pair used in bounding boxes
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox represents a rectangular region. Northeast/Southwest follow
// the provider convention; a box whose southwest longitude is greater than
// its northeast longitude wraps around the antimeridian.
type BoundingBox struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// HaversineDistance calculates the great-circle distance between two points
// in meters using the Haversine formula
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// HaversineDistanceKm calculates the great-circle distance between two
// points in kilometers
func HaversineDistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return HaversineDistance(lat1, lng1, lat2, lng2) / 1000.0
}

// InBoundingBox reports whether a coordinate lies within a bounding box.
// Returns false for a nil box. The longitude test handles boxes that cross
// the antimeridian: when sw.lng > ne.lng the valid interval is the union
// [sw.lng, 180] ∪ [-180, ne.lng].
func InBoundingBox(lat, lng float64, box *BoundingBox) bool {
	if box == nil {
		return false
	}

	ne := box.Northeast
	sw := box.Southwest

	if lat < sw.Lat || lat > ne.Lat {
		return false
	}

	if sw.Lng <= ne.Lng {
		return lng >= sw.Lng && lng <= ne.Lng
	}
	return lng >= sw.Lng || lng <= ne.Lng
}

// BoundsOf calculates the bounding box of a set of points.
// Returns nil for an empty set.
func BoundsOf(points []Point) *BoundingBox {
	if len(points) == 0 {
		return nil
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lng < minLng {
			minLng = p.Lng
		}
		if p.Lng > maxLng {
			maxLng = p.Lng
		}
	}

	return &BoundingBox{
		Northeast: LatLng{Lat: maxLat, Lng: maxLng},
		Southwest: LatLng{Lat: minLat, Lng: minLng},
	}
}

// PathLength calculates the total length of a path (sequence of points) in meters
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		totalDist += HaversineDistance(points[i-1].Lat, points[i-1].Lng, points[i].Lat, points[i].Lng)
	}

	return totalDist
}
