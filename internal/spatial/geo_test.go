package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineDistance(t *testing.T) {
	// Paris to London, roughly 344 km
	d := HaversineDistanceKm(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 344, d, 5)

	// Zero distance
	assert.Equal(t, 0.0, HaversineDistance(48.8566, 2.3522, 48.8566, 2.3522))
}

func TestInBoundingBox(t *testing.T) {
	box := &BoundingBox{
		Northeast: LatLng{Lat: 49, Lng: 3},
		Southwest: LatLng{Lat: 48, Lng: 2},
	}

	tests := []struct {
		name string
		lat  float64
		lng  float64
		box  *BoundingBox
		want bool
	}{
		{"inside", 48.5, 2.5, box, true},
		{"on edge", 48, 2, box, true},
		{"north of box", 49.5, 2.5, box, false},
		{"west of box", 48.5, 1.5, box, false},
		{"nil box", 48.5, 2.5, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InBoundingBox(tt.lat, tt.lng, tt.box))
		})
	}
}

func TestInBoundingBoxAntimeridian(t *testing.T) {
	// Fiji area: box wraps from 177E to 177W
	box := &BoundingBox{
		Northeast: LatLng{Lat: -15, Lng: -177},
		Southwest: LatLng{Lat: -20, Lng: 177},
	}

	assert.True(t, InBoundingBox(-17, 179, box))
	assert.True(t, InBoundingBox(-17, -179, box))
	assert.False(t, InBoundingBox(-17, 0, box))
	assert.False(t, InBoundingBox(-25, 179, box))
}

func TestBoundsOf(t *testing.T) {
	assert.Nil(t, BoundsOf(nil))

	box := BoundsOf([]Point{
		{Lat: 48, Lng: 2},
		{Lat: 49, Lng: 3},
		{Lat: 48.5, Lng: 2.5},
	})
	require.NotNil(t, box)
	assert.Equal(t, LatLng{Lat: 49, Lng: 3}, box.Northeast)
	assert.Equal(t, LatLng{Lat: 48, Lng: 2}, box.Southwest)
}

func TestPathLength(t *testing.T) {
	assert.Equal(t, 0.0, PathLength(nil))
	assert.Equal(t, 0.0, PathLength([]Point{{Lat: 48, Lng: 2}}))

	// Two segments should sum
	points := []Point{
		{Lat: 48.8566, Lng: 2.3522},
		{Lat: 51.5074, Lng: -0.1278},
		{Lat: 48.8566, Lng: 2.3522},
	}
	total := PathLength(points)
	single := HaversineDistance(48.8566, 2.3522, 51.5074, -0.1278)
	assert.InDelta(t, 2*single, total, 0.001)
}
