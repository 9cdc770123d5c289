// Package mapview computes the minimal set of map layer mutations needed to
// bring rendered state in line with target data. Derivation packages
// (itinerary) stay pure; this is the explicitly-invoked reconciliation step
// that applies side effects, keeping untouched markers untouched so cluster
// animation state survives a refresh.
package mapview

import (
	"sync"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// ModeFlags are the global display flags that affect marker rendering
type ModeFlags struct {
	VisitedMode       bool // settings.mode_display_visited
	ShowVisitedFilter bool // "always show visited" display filter
	LowNetwork        bool // settings.mode_low_network
	GPXInline         bool // settings.mode_gpx_in_place
}

// RenderSnapshot captures the rendering-relevant inputs a marker's icon was
// baked from. Icons are immutable once created, so any change here forces a
// remove-and-recreate rather than an in-place mutation.
type RenderSnapshot struct {
	IsDot           bool
	LowNetwork      bool
	GPXInline       bool
	PlaceImageID    int64
	CategoryColor   string
	CategoryImageID int64
}

// MarkerSpec describes a marker to be created on the layer. The handlers
// are bound to the originating place at creation time.
type MarkerSpec struct {
	ID            int64
	Place         models.Place
	IsDot         bool
	OnClick       func()
	OnContextMenu func()
}

// MarkerLayer is the rendering port the reconciler mutates. Implementations
// wrap the clustered marker layer of whatever mapping library renders the
// result; AddMarkers and RemoveMarkers are bulk operations.
type MarkerLayer interface {
	AddMarkers(markers []MarkerSpec)
	RemoveMarkers(ids []int64)
}

type markerState struct {
	placeID  int64
	snapshot RenderSnapshot
}

// Reconciler keeps a marker layer in sync with a target place list. Marker
// metadata lives in a side table keyed by marker id rather than on the
// rendering library's own objects.
type Reconciler struct {
	mu      sync.Mutex
	layer   MarkerLayer
	markers map[int64]markerState
	nextID  int64

	// OnClick and OnContextMenu are bound to every newly created marker
	OnClick       func(models.Place)
	OnContextMenu func(models.Place)
}

// NewReconciler creates a reconciler mutating the given layer
func NewReconciler(layer MarkerLayer) *Reconciler {
	return &Reconciler{
		layer:   layer,
		markers: make(map[int64]markerState),
		nextID:  1,
	}
}

// shouldBeDot reports whether a place renders as a minimal colored dot
// instead of a full image pin
func shouldBeDot(p models.Place, flags ModeFlags) bool {
	return p.Visited && flags.VisitedMode && !flags.ShowVisitedFilter
}

// snapshotFor computes the render snapshot a marker for p would be created
// with under the given flags
func snapshotFor(p models.Place, flags ModeFlags) RenderSnapshot {
	return RenderSnapshot{
		IsDot:           shouldBeDot(p, flags),
		LowNetwork:      flags.LowNetwork,
		GPXInline:       flags.GPXInline,
		PlaceImageID:    p.ImageID,
		CategoryColor:   p.Category.Color,
		CategoryImageID: p.Category.ImageID,
	}
}

// needsRebuild reports whether an existing marker must be removed and
// recreated for place p under the given flags
func needsRebuild(state markerState, p models.Place, flags ModeFlags) bool {
	targetDot := shouldBeDot(p, flags)
	if targetDot != state.snapshot.IsDot {
		return true
	}
	if targetDot {
		// Dot icons carry no image or color detail worth diffing
		return false
	}
	s := state.snapshot
	return s.LowNetwork != flags.LowNetwork ||
		s.GPXInline != flags.GPXInline ||
		s.PlaceImageID != p.ImageID ||
		s.CategoryColor != p.Category.Color ||
		s.CategoryImageID != p.Category.ImageID
}

// Reconcile diffs the current marker set against the target place list and
// applies the minimal add/remove operations. Markers needing no change are
// not touched at all.
func (r *Reconciler) Reconcile(target []models.Place, flags ModeFlags) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targetByID := make(map[int64]models.Place, len(target))
	for _, p := range target {
		targetByID[p.ID] = p
	}

	var toRemove []int64
	for id, state := range r.markers {
		p, ok := targetByID[state.placeID]
		if !ok || needsRebuild(state, p, flags) {
			toRemove = append(toRemove, id)
		}
	}

	if len(toRemove) > 0 {
		r.layer.RemoveMarkers(toRemove)
		for _, id := range toRemove {
			delete(r.markers, id)
		}
	}

	existing := make(map[int64]bool, len(r.markers))
	for _, state := range r.markers {
		existing[state.placeID] = true
	}

	var toAdd []MarkerSpec
	for _, p := range target {
		if existing[p.ID] {
			continue
		}
		id := r.nextID
		r.nextID++
		spec := MarkerSpec{
			ID:    id,
			Place: p,
			IsDot: shouldBeDot(p, flags),
		}
		if r.OnClick != nil {
			place := p
			spec.OnClick = func() { r.OnClick(place) }
		}
		if r.OnContextMenu != nil {
			place := p
			spec.OnContextMenu = func() { r.OnContextMenu(place) }
		}
		toAdd = append(toAdd, spec)
		r.markers[id] = markerState{
			placeID:  p.ID,
			snapshot: snapshotFor(p, flags),
		}
	}

	if len(toAdd) > 0 {
		r.layer.AddMarkers(toAdd)
	}
}

// Clear removes every marker from the layer
func (r *Reconciler) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.markers) == 0 {
		return
	}
	ids := make([]int64, 0, len(r.markers))
	for id := range r.markers {
		ids = append(ids, id)
	}
	r.layer.RemoveMarkers(ids)
	r.markers = make(map[int64]markerState)
}

// MarkerCount returns the number of markers currently rendered
func (r *Reconciler) MarkerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.markers)
}
