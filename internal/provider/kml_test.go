package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>Paris picks</name>
    <Placemark>
      <name>Eiffel Tower</name>
      <Point>
        <coordinates>2.2945,48.8584,0</coordinates>
      </Point>
    </Placemark>
    <Placemark>
      <name>Some saved link</name>
      <description><![CDATA[See https://maps.google.com/?cid=123]]></description>
    </Placemark>
    <Placemark>
      <name></name>
      <Point><coordinates>2.35,48.85,0</coordinates></Point>
    </Placemark>
    <Folder>
      <name>Museums</name>
      <Placemark>
        <name>Louvre</name>
        <Point>
          <coordinates>
            2.3376,48.8606,0
          </coordinates>
        </Point>
      </Placemark>
    </Folder>
  </Document>
</kml>`

func TestParseMyMapsKML(t *testing.T) {
	results, err := ParseMyMapsKML(strings.NewReader(sampleKML))
	require.NoError(t, err)
	require.Len(t, results, 3, "unnamed placemark is skipped")

	// Coordinates are longitude-first in KML, latitude-first in results
	assert.Equal(t, "Eiffel Tower", results[0].Name)
	assert.Equal(t, 48.8584, results[0].Lat)
	assert.Equal(t, 2.2945, results[0].Lng)
	assert.Empty(t, results[0].URL)

	// URL-only placemarks keep the URL for later resolution
	assert.Equal(t, "Some saved link", results[1].Name)
	assert.Equal(t, "https://maps.google.com/?cid=123", results[1].URL)
	assert.Zero(t, results[1].Lat)

	// Folder placemarks are collected too
	assert.Equal(t, "Louvre", results[2].Name)
	assert.Equal(t, 48.8606, results[2].Lat)
}

func TestParseMyMapsKMLMalformed(t *testing.T) {
	_, err := ParseMyMapsKML(strings.NewReader("<kml><Document>"))
	assert.Error(t, err)
}

func TestParseMyMapsKMLEmptyDocument(t *testing.T) {
	results, err := ParseMyMapsKML(strings.NewReader(`<kml xmlns="http://www.opengis.net/kml/2.2"><Document/></kml>`))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseKMLCoordinate(t *testing.T) {
	lat, lng, ok := parseKMLCoordinate("2.2945,48.8584,0")
	assert.True(t, ok)
	assert.Equal(t, 48.8584, lat)
	assert.Equal(t, 2.2945, lng)

	_, _, ok = parseKMLCoordinate("")
	assert.False(t, ok)

	_, _, ok = parseKMLCoordinate("not,numbers")
	assert.False(t, ok)
}
