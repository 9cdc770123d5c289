package dedupe

import (
	"math"
	"strings"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// Default thresholds. Kept configurable; values match observed behavior
// of the production data set, not a derived optimum.
const (
	DefaultNameThreshold = 5
	ProximityDegrees     = 0.0001 // ~11m at the equator
)

// Detector finds near-duplicate places by name similarity or proximity
type Detector struct {
	// Levenshtein distance below which two names are considered the
	// same place. 0 disables name-based matching entirely.
	NameThreshold int
}

// NewDetector creates a detector with the given name threshold
func NewDetector(nameThreshold int) *Detector {
	return &Detector{NameThreshold: nameThreshold}
}

// FindDuplicate returns the first existing place considered a duplicate of
// the candidate, or nil. A place is a duplicate if its name is within the
// edit-distance threshold (case-insensitive) or both coordinates are within
// ProximityDegrees. Linear scan; fine at the expected scale of hundreds of
// places per user.
func (d *Detector) FindDuplicate(candidate models.Place, existing []models.Place) *models.Place {
	if d.NameThreshold == 0 {
		return nil
	}

	source := strings.ToLower(candidate.Name)

	for i := range existing {
		p := &existing[i]
		target := strings.ToLower(p.Name)

		if source == target {
			return p
		}

		// A nameless candidate matches only another nameless place,
		// which the equality check above already caught
		if source == "" {
			continue
		}

		closeName := levenshtein(source, target) < d.NameThreshold

		latDiff := math.Abs(p.Lat - candidate.Lat)
		lngDiff := math.Abs(p.Lng - candidate.Lng)
		closeLocation := latDiff < ProximityDegrees && lngDiff < ProximityDegrees

		if closeName || closeLocation {
			return p
		}
	}

	return nil
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming formulation (insert/delete/substitute cost 1)
func levenshtein(source, target string) int {
	s := []rune(source)
	t := []rune(target)

	if len(s) == 0 {
		return len(t)
	}
	if len(t) == 0 {
		return len(s)
	}

	previousRow := make([]int, len(t)+1)
	currentRow := make([]int, len(t)+1)
	for j := range previousRow {
		previousRow[j] = j
	}

	for i := 1; i <= len(s); i++ {
		currentRow[0] = i
		for j := 1; j <= len(t); j++ {
			substitutionCost := 1
			if s[i-1] == t[j-1] {
				substitutionCost = 0
			}
			currentRow[j] = min3(
				previousRow[j]+1,
				currentRow[j-1]+1,
				previousRow[j-1]+substitutionCost,
			)
		}
		previousRow, currentRow = currentRow, previousRow
	}

	return previousRow[len(t)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
