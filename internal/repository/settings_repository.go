package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/dedupe"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// SettingsRepository handles per-user settings storage
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves a user's settings, creating defaults on first access
func (r *SettingsRepository) GetSettings(username string) (*models.Settings, error) {
	s, err := r.querySettings(username)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	_, err = r.db.Exec(`INSERT INTO settings (username, duplicate_dist) VALUES (?, ?)`,
		username, dedupe.DefaultNameThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to insert default settings: %w", err)
	}
	return r.querySettings(username)
}

func (r *SettingsRepository) querySettings(username string) (*models.Settings, error) {
	var s models.Settings
	err := r.db.QueryRow(`SELECT username, map_lat, map_lng, currency, tile_layer,
		mode_low_network, mode_dark, mode_gpx_in_place, mode_display_visited,
		mode_map_position, map_provider, duplicate_dist
		FROM settings WHERE username = ?`, username).
		Scan(&s.Username, &s.MapLat, &s.MapLng, &s.Currency, &s.TileLayer,
			&s.ModeLowNetwork, &s.ModeDark, &s.ModeGPXInPlace, &s.ModeDisplayVisited,
			&s.ModeMapPosition, &s.MapProvider, &s.DuplicateDist)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	return &s, nil
}

// UpdateSettings applies a partial update to a user's settings
func (r *SettingsRepository) UpdateSettings(username string, update models.SettingsUpdate) (*models.Settings, error) {
	if _, err := r.GetSettings(username); err != nil {
		return nil, err
	}

	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.MapLat != nil {
		set("map_lat", *update.MapLat)
	}
	if update.MapLng != nil {
		set("map_lng", *update.MapLng)
	}
	if update.Currency != nil {
		set("currency", *update.Currency)
	}
	if update.TileLayer != nil {
		set("tile_layer", *update.TileLayer)
	}
	if update.ModeLowNetwork != nil {
		set("mode_low_network", *update.ModeLowNetwork)
	}
	if update.ModeDark != nil {
		set("mode_dark", *update.ModeDark)
	}
	if update.ModeGPXInPlace != nil {
		set("mode_gpx_in_place", *update.ModeGPXInPlace)
	}
	if update.ModeDisplayVisited != nil {
		set("mode_display_visited", *update.ModeDisplayVisited)
	}
	if update.ModeMapPosition != nil {
		set("mode_map_position", *update.ModeMapPosition)
	}
	if update.MapProvider != nil {
		set("map_provider", *update.MapProvider)
	}
	if update.DuplicateDist != nil {
		set("duplicate_dist", *update.DuplicateDist)
	}

	if len(sets) > 0 {
		query := "UPDATE settings SET " + joinSets(sets) + " WHERE username = ?"
		args = append(args, username)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update settings: %w", err)
		}
	}

	return r.querySettings(username)
}
