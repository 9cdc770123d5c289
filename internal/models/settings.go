package models

// Settings represents per-user display and behavior settings
type Settings struct {
	Username  string  `json:"username" db:"username"`
	MapLat    float64 `json:"map_lat" db:"map_lat"`
	MapLng    float64 `json:"map_lng" db:"map_lng"`
	Currency  string  `json:"currency" db:"currency"`
	TileLayer string  `json:"tile_layer,omitempty" db:"tile_layer"`

	ModeLowNetwork     bool `json:"mode_low_network" db:"mode_low_network"`
	ModeDark           bool `json:"mode_dark" db:"mode_dark"`
	ModeGPXInPlace     bool `json:"mode_gpx_in_place" db:"mode_gpx_in_place"`
	ModeDisplayVisited bool `json:"mode_display_visited" db:"mode_display_visited"`
	ModeMapPosition    bool `json:"mode_map_position" db:"mode_map_position"`

	MapProvider string `json:"map_provider,omitempty" db:"map_provider"`

	// Levenshtein threshold for duplicate place detection; 0 disables
	// name-based matching entirely
	DuplicateDist int `json:"duplicate_dist" db:"duplicate_dist"`
}

// SettingsUpdate represents a partial update of user settings
type SettingsUpdate struct {
	MapLat             *float64 `json:"map_lat"`
	MapLng             *float64 `json:"map_lng"`
	Currency           *string  `json:"currency"`
	TileLayer          *string  `json:"tile_layer"`
	ModeLowNetwork     *bool    `json:"mode_low_network"`
	ModeDark           *bool    `json:"mode_dark"`
	ModeGPXInPlace     *bool    `json:"mode_gpx_in_place"`
	ModeDisplayVisited *bool    `json:"mode_display_visited"`
	ModeMapPosition    *bool    `json:"mode_map_position"`
	MapProvider        *string  `json:"map_provider"`
	DuplicateDist      *int     `json:"duplicate_dist"`
}
