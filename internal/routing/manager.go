// Package routing caches and visually manages point-to-point routing
// overlays, independent of the itinerary/day model.
package routing

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/tripfolio/tripfolio-backend-go/internal/mapview"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
)

// Profile is a routing profile
type Profile string

// Routing profiles
const (
	ProfileCar  Profile = "car"
	ProfileFoot Profile = "foot"
)

// CarThresholdKm is the straight-line distance above which routing defaults
// to the car profile
const CarThresholdKm = 5.0

// ProfileIcons maps each profile to its badge glyph
var ProfileIcons = map[Profile]string{
	ProfileCar:  "🚗",
	ProfileFoot: "🚶",
}

// ChooseProfile picks the routing profile from the straight-line distance
// between the two points
func ChooseProfile(from, to spatial.Point) Profile {
	d := spatial.HaversineDistanceKm(from.Lat, from.Lng, to.Lat, to.Lng)
	if d > CarThresholdKm {
		return ProfileCar
	}
	return ProfileFoot
}

// RouteID builds the deterministic cache key for a route request.
// Coordinates are rounded to 6 decimals so the same logical request maps to
// the same slot regardless of floating point jitter beyond that.
func RouteID(from, to spatial.Point, profile Profile) string {
	return fmt.Sprintf("%s_%.6f-%.6f_%.6f-%.6f", profile, from.Lat, from.Lng, to.Lat, to.Lng)
}

// RouteData is the input to AddRoute
type RouteData struct {
	ID              string
	Geometry        []spatial.Point
	DistanceMeters  float64
	DurationSeconds float64
	Profile         Profile
}

// BadgeSpec describes the floating badge rendered on a route: its anchor
// point, formatted text, and a delete affordance wired back to the manager
type BadgeSpec struct {
	Anchor   spatial.Point
	Text     string
	Color    string
	OnRemove func()
}

// RouteLayer is the visual layer a rendered route owns
type RouteLayer interface {
	Remove()
}

// Route is a cached routing overlay
type Route struct {
	ID              string
	Geometry        []spatial.Point
	DistanceMeters  float64
	DurationSeconds float64
	Profile         Profile
	Color           string
	Layer           RouteLayer
}

// Manager requests, caches and manages routing overlays. Renderer, when
// set, turns a route plus its badge into a visual layer; a nil Renderer
// leaves routes layerless, which the library tests rely on.
type Manager struct {
	mu     sync.Mutex
	routes map[string]*Route

	Renderer func(Route, BadgeSpec) RouteLayer
}

// NewManager creates an empty route manager
func NewManager() *Manager {
	return &Manager{routes: make(map[string]*Route)}
}

// AddRoute caches a route overlay. An existing route with the same id is
// removed first (replace, not accumulate). The color prefers a palette
// entry not currently in use; once the palette is exhausted it falls back
// to a uniform random pick from the full palette, collisions permitted.
func (m *Manager) AddRoute(data RouteData) *Route {
	m.mu.Lock()
	if _, ok := m.routes[data.ID]; ok {
		m.removeLocked(data.ID)
	}

	color := m.pickColorLocked()
	route := &Route{
		ID:              data.ID,
		Geometry:        data.Geometry,
		DistanceMeters:  data.DistanceMeters,
		DurationSeconds: data.DurationSeconds,
		Profile:         data.Profile,
		Color:           color,
	}
	m.routes[data.ID] = route
	renderer := m.Renderer
	m.mu.Unlock()

	if renderer != nil {
		badge := BadgeSpec{
			Anchor:   badgeAnchor(data.Geometry),
			Text:     BadgeText(data.Profile, data.DistanceMeters, data.DurationSeconds),
			Color:    color,
			OnRemove: func() { m.RemoveRoute(data.ID) },
		}
		layer := renderer(*route, badge)

		m.mu.Lock()
		// The route may have been replaced or removed while rendering
		if current, ok := m.routes[data.ID]; ok && current == route {
			current.Layer = layer
		} else if layer != nil {
			layer.Remove()
		}
		m.mu.Unlock()
	}

	return route
}

// RemoveRoute detaches the route's visual layer and evicts the cache
// entry; no-op when the id is unknown
func (m *Manager) RemoveRoute(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(id)
}

func (m *Manager) removeLocked(id string) {
	route, ok := m.routes[id]
	if !ok {
		return
	}
	if route.Layer != nil {
		route.Layer.Remove()
	}
	delete(m.routes, id)
}

// GetRoute returns the cached route for id, or nil
func (m *Manager) GetRoute(id string) *Route {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.routes[id]
}

// ClearAll removes every cached route and its layer
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range m.routes {
		m.removeLocked(id)
	}
}

// Count returns the number of cached routes
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.routes)
}

func (m *Manager) pickColorLocked() string {
	used := make(map[string]bool, len(m.routes))
	for _, r := range m.routes {
		used[r.Color] = true
	}

	var available []string
	for _, c := range mapview.HighlightColors {
		if !used[c] {
			available = append(available, c)
		}
	}

	if len(available) > 0 {
		return available[rand.Intn(len(available))]
	}
	return mapview.HighlightColors[rand.Intn(len(mapview.HighlightColors))]
}

func badgeAnchor(geometry []spatial.Point) spatial.Point {
	if len(geometry) == 0 {
		return spatial.Point{}
	}
	return geometry[len(geometry)/2]
}

// BadgeText formats the badge label: profile glyph, duration, distance
func BadgeText(profile Profile, distanceMeters, durationSeconds float64) string {
	return fmt.Sprintf("%s %s • %s", ProfileIcons[profile],
		FormatDuration(durationSeconds), FormatDistance(distanceMeters))
}

// FormatDistance renders kilometers at one decimal when ≥1km, meters otherwise
func FormatDistance(meters float64) string {
	km := meters / 1000
	if km >= 1 {
		return fmt.Sprintf("%.1f km", km)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// FormatDuration renders hours+minutes when ≥60min, minutes when ≥1min,
// seconds otherwise
func FormatDuration(seconds float64) string {
	minutes := int(seconds) / 60
	if minutes >= 60 {
		hours := minutes / 60
		remaining := minutes % 60
		if remaining > 0 {
			return fmt.Sprintf("%dh %dm", hours, remaining)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%.0fs", seconds)
}
