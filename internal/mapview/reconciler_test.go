package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// recordingLayer records bulk operations for assertions
type recordingLayer struct {
	added   []MarkerSpec
	removed []int64
}

func (l *recordingLayer) AddMarkers(markers []MarkerSpec) {
	l.added = append(l.added, markers...)
}

func (l *recordingLayer) RemoveMarkers(ids []int64) {
	l.removed = append(l.removed, ids...)
}

func (l *recordingLayer) reset() {
	l.added = nil
	l.removed = nil
}

func placeFixture(id int64, name string) models.Place {
	return models.Place{
		ID:   id,
		Name: name,
		Category: models.Category{
			ID:    1,
			Color: "#3b82f6",
		},
	}
}

func TestShouldBeDot(t *testing.T) {
	visited := models.Place{Visited: true}
	unvisited := models.Place{}

	tests := []struct {
		name  string
		place models.Place
		flags ModeFlags
		want  bool
	}{
		{"visited + visited mode", visited, ModeFlags{VisitedMode: true}, true},
		{"visited, mode off", visited, ModeFlags{}, false},
		{"unvisited", unvisited, ModeFlags{VisitedMode: true}, false},
		{"show filter overrides", visited, ModeFlags{VisitedMode: true, ShowVisitedFilter: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldBeDot(tt.place, tt.flags))
		})
	}
}

func TestReconcileAddRemoveUntouched(t *testing.T) {
	layer := &recordingLayer{}
	r := NewReconciler(layer)

	a := placeFixture(1, "a")
	b := placeFixture(2, "b")
	c := placeFixture(3, "c")

	r.Reconcile([]models.Place{a, b, c}, ModeFlags{})
	assert.Len(t, layer.added, 3)
	assert.Empty(t, layer.removed)
	assert.Equal(t, 3, r.MarkerCount())

	// Drop b, keep a and c unchanged: exactly one removal, no re-adds
	layer.reset()
	r.Reconcile([]models.Place{a, c}, ModeFlags{})
	assert.Empty(t, layer.added)
	assert.Len(t, layer.removed, 1)
	assert.Equal(t, 2, r.MarkerCount())

	// Identical target: nothing happens at all
	layer.reset()
	r.Reconcile([]models.Place{a, c}, ModeFlags{})
	assert.Empty(t, layer.added)
	assert.Empty(t, layer.removed)
}

func TestReconcileRebuildOnDotTransition(t *testing.T) {
	layer := &recordingLayer{}
	r := NewReconciler(layer)

	p := placeFixture(1, "a")
	p.Visited = true

	r.Reconcile([]models.Place{p}, ModeFlags{})
	require.Len(t, layer.added, 1)
	assert.False(t, layer.added[0].IsDot)

	// Turning visited mode on flips the marker to a dot: remove + add
	layer.reset()
	r.Reconcile([]models.Place{p}, ModeFlags{VisitedMode: true})
	assert.Len(t, layer.removed, 1)
	require.Len(t, layer.added, 1)
	assert.True(t, layer.added[0].IsDot)
}

func TestReconcileRebuildOnRenderInputChange(t *testing.T) {
	layer := &recordingLayer{}
	r := NewReconciler(layer)

	p := placeFixture(1, "a")
	r.Reconcile([]models.Place{p}, ModeFlags{})

	// Category color change invalidates the full marker icon
	layer.reset()
	p.Category.Color = "#ff0000"
	r.Reconcile([]models.Place{p}, ModeFlags{})
	assert.Len(t, layer.removed, 1)
	assert.Len(t, layer.added, 1)

	// Low-network toggle invalidates it too
	layer.reset()
	r.Reconcile([]models.Place{p}, ModeFlags{LowNetwork: true})
	assert.Len(t, layer.removed, 1)
	assert.Len(t, layer.added, 1)
}

func TestReconcileDotMarkersIgnoreIconDetail(t *testing.T) {
	layer := &recordingLayer{}
	r := NewReconciler(layer)

	p := placeFixture(1, "a")
	p.Visited = true
	flags := ModeFlags{VisitedMode: true}

	r.Reconcile([]models.Place{p}, flags)
	require.Len(t, layer.added, 1)
	require.True(t, layer.added[0].IsDot)

	// Dots carry no image or color: these changes must not rebuild
	layer.reset()
	p.Category.Color = "#ff0000"
	p.ImageID = 42
	r.Reconcile([]models.Place{p}, flags)
	assert.Empty(t, layer.added)
	assert.Empty(t, layer.removed)
}

func TestReconcileBindsHandlers(t *testing.T) {
	layer := &recordingLayer{}
	r := NewReconciler(layer)

	var clicked []int64
	r.OnClick = func(p models.Place) { clicked = append(clicked, p.ID) }

	r.Reconcile([]models.Place{placeFixture(1, "a"), placeFixture(2, "b")}, ModeFlags{})
	require.Len(t, layer.added, 2)

	for _, spec := range layer.added {
		require.NotNil(t, spec.OnClick)
		spec.OnClick()
	}
	assert.ElementsMatch(t, []int64{1, 2}, clicked)
}

func TestClear(t *testing.T) {
	layer := &recordingLayer{}
	r := NewReconciler(layer)

	r.Reconcile([]models.Place{placeFixture(1, "a"), placeFixture(2, "b")}, ModeFlags{})
	layer.reset()

	r.Clear()
	assert.Len(t, layer.removed, 2)
	assert.Equal(t, 0, r.MarkerCount())

	// Clearing an empty reconciler is a no-op
	layer.reset()
	r.Clear()
	assert.Empty(t, layer.removed)
}
