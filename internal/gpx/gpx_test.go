package gpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test">
  <trk>
    <name>Morning walk</name>
    <trkseg>
      <trkpt lat="48.8566" lon="2.3522"><ele>35</ele></trkpt>
      <trkpt lat="48.8600" lon="2.3500"></trkpt>
      <trkpt lat="48.8650" lon="2.3450"></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestExtractTrackPoints(t *testing.T) {
	points, err := ExtractTrackPoints(sampleGPX)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 48.8566, points[0].Lat)
	assert.Equal(t, 2.3522, points[0].Lng)
	assert.Equal(t, 48.8650, points[2].Lat)
}

func TestExtractTrackPointsEmpty(t *testing.T) {
	points, err := ExtractTrackPoints(`<gpx version="1.1"></gpx>`)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestExtractTrackPointsMalformed(t *testing.T) {
	_, err := ExtractTrackPoints(`<gpx><trkpt lat="48.85"`)
	assert.Error(t, err)
}

func TestTrackLength(t *testing.T) {
	length, err := TrackLength(sampleGPX)
	require.NoError(t, err)
	assert.Greater(t, length, 0.0)

	// Two short hops across central Paris: roughly a kilometer and change
	assert.InDelta(t, 1100, length, 400)
}
