package provider

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// fakeLookup resolves every query to a fixed coordinate, optionally
// failing specific queries
type fakeLookup struct {
	calls   []string
	failing map[string]bool
}

func (f *fakeLookup) Search(ctx context.Context, query string, bounds *spatial.BoundingBox) ([]PlaceResult, error) {
	f.calls = append(f.calls, query)
	if f.failing[query] {
		return nil, fmt.Errorf("lookup failed for %q", query)
	}
	return []PlaceResult{{Name: "resolved " + query, Lat: 48.85, Lng: 2.35}}, nil
}

func takeoutCSV(rows ...string) string {
	return "Title,Note,URL\n" + strings.Join(rows, "\n")
}

func TestTakeoutImport(t *testing.T) {
	lookup := &fakeLookup{}
	imp := &TakeoutImporter{Lookup: lookup, BatchSize: 2, Delay: 0}

	csv := takeoutCSV(
		`Louvre,,https://maps.google.com/?q=!1sabc`,
		`No Token,,https://maps.google.com/?q=plain`,
		`Orsay,,https://maps.google.com/?q=!1sdef`,
		`Pompidou,,https://maps.google.com/?q=!1sghi`,
	)

	summary, err := imp.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	// The row without a place token is filtered before batching
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 0, summary.FailedChunks)
	require.Len(t, summary.Results, 3)

	// The original title and URL survive resolution
	assert.Equal(t, "Louvre", summary.Results[0].Name)
	assert.Equal(t, "https://maps.google.com/?q=!1sabc", summary.Results[0].URL)
	assert.Equal(t, 48.85, summary.Results[0].Lat)
}

func TestTakeoutImportFailedChunkContinues(t *testing.T) {
	lookup := &fakeLookup{failing: map[string]bool{"Orsay": true}}
	imp := &TakeoutImporter{Lookup: lookup, BatchSize: 1, Delay: 0}

	csv := takeoutCSV(
		`Louvre,,https://maps.google.com/?q=!1sabc`,
		`Orsay,,https://maps.google.com/?q=!1sdef`,
		`Pompidou,,https://maps.google.com/?q=!1sghi`,
	)

	summary, err := imp.Import(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	// The failing chunk contributes nothing but does not abort the rest
	assert.Equal(t, 1, summary.FailedChunks)
	assert.Equal(t, 3, summary.Processed)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, "Louvre", summary.Results[0].Name)
	assert.Equal(t, "Pompidou", summary.Results[1].Name)
}

func TestTakeoutImportCanceled(t *testing.T) {
	lookup := &fakeLookup{}
	imp := &TakeoutImporter{Lookup: lookup, BatchSize: 1, Delay: DefaultBatchDelay}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	csv := takeoutCSV(
		`Louvre,,https://maps.google.com/?q=!1sabc`,
		`Orsay,,https://maps.google.com/?q=!1sdef`,
	)

	_, err := imp.Import(ctx, strings.NewReader(csv))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTakeoutImportEmpty(t *testing.T) {
	imp := NewTakeoutImporter(&fakeLookup{})

	summary, err := imp.Import(context.Background(), strings.NewReader("Title,Note,URL\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, summary.Results)
}

func TestTakeoutImportBadHeader(t *testing.T) {
	imp := NewTakeoutImporter(&fakeLookup{})

	_, err := imp.Import(context.Background(), strings.NewReader("Foo,Bar\n1,2\n"))
	assert.Error(t, err)
}
