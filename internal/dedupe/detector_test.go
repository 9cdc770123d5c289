package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		source string
		target string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"louvre", "louvre", 0},
		{"louvre", "le louvre", 3},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.source, tt.target), "%q vs %q", tt.source, tt.target)
	}
}

func TestFindDuplicateByName(t *testing.T) {
	existing := []models.Place{
		{ID: 1, Name: "Eiffel Tower", Lat: 48.8584, Lng: 2.2945},
		{ID: 2, Name: "Louvre", Lat: 48.8606, Lng: 2.3376},
	}

	d := NewDetector(DefaultNameThreshold)

	// Case-insensitive exact match
	dup := d.FindDuplicate(models.Place{Name: "eiffel tower", Lat: 0, Lng: 0}, existing)
	require.NotNil(t, dup)
	assert.Equal(t, int64(1), dup.ID)

	// Within edit distance
	dup = d.FindDuplicate(models.Place{Name: "Louvr", Lat: 0, Lng: 0}, existing)
	require.NotNil(t, dup)
	assert.Equal(t, int64(2), dup.ID)

	// Clearly different
	assert.Nil(t, d.FindDuplicate(models.Place{Name: "Sacré-Cœur Basilica", Lat: 0, Lng: 0}, existing))
}

func TestFindDuplicateByProximity(t *testing.T) {
	existing := []models.Place{
		{ID: 1, Name: "Eiffel Tower", Lat: 48.8584, Lng: 2.2945},
	}

	d := NewDetector(DefaultNameThreshold)

	// Same spot, unrelated name
	dup := d.FindDuplicate(models.Place{Name: "Champ de Mars Viewpoint", Lat: 48.85845, Lng: 2.29455}, existing)
	require.NotNil(t, dup)
	assert.Equal(t, int64(1), dup.ID)

	// Just outside the proximity window on one axis
	assert.Nil(t, d.FindDuplicate(models.Place{Name: "Champ de Mars Viewpoint", Lat: 48.8590, Lng: 2.2945}, existing))
}

func TestEmptyNameMatchesOnlyEmptyName(t *testing.T) {
	d := NewDetector(DefaultNameThreshold)

	// "Inn" is within edit distance 5 of "", but a nameless candidate
	// must not be flagged against named places — even nearby ones
	existing := []models.Place{
		{ID: 1, Name: "Inn", Lat: 48.8584, Lng: 2.2945},
	}
	assert.Nil(t, d.FindDuplicate(models.Place{Name: "", Lat: 48.8584, Lng: 2.2945}, existing))

	// Two nameless places are still the same place
	existing = []models.Place{
		{ID: 2, Name: "", Lat: 48.8606, Lng: 2.3376},
	}
	dup := d.FindDuplicate(models.Place{Name: "", Lat: 0, Lng: 0}, existing)
	require.NotNil(t, dup)
	assert.Equal(t, int64(2), dup.ID)
}

func TestZeroThresholdDisablesDetection(t *testing.T) {
	existing := []models.Place{
		{ID: 1, Name: "Eiffel Tower", Lat: 48.8584, Lng: 2.2945},
	}

	d := NewDetector(0)

	// Even an identical candidate passes: 0 turns the whole check off,
	// proximity included
	assert.Nil(t, d.FindDuplicate(models.Place{Name: "Eiffel Tower", Lat: 48.8584, Lng: 2.2945}, existing))
}
