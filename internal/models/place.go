package models

// Place represents a point of interest with coordinates and a category
type Place struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	Lat  float64 `json:"lat" db:"lat"`
	Lng  float64 `json:"lng" db:"lng"`

	// Free-text address
	Place      string   `json:"place,omitempty" db:"place"`
	CategoryID int64    `json:"category_id" db:"category_id"`
	Category   Category `json:"category"`

	User        string  `json:"user,omitempty" db:"user"`
	Image       string  `json:"image,omitempty" db:"image"`
	ImageID     int64   `json:"image_id,omitempty" db:"image_id"`
	Description string  `json:"description,omitempty" db:"description"`
	Price       float64 `json:"price,omitempty" db:"price"`
	Duration    float64 `json:"duration,omitempty" db:"duration"`

	Visited  bool `json:"visited" db:"visited"`
	Favorite bool `json:"favorite" db:"favorite"`
	Restroom bool `json:"restroom" db:"restroom"`
	AllowDog bool `json:"allowdog" db:"allowdog"`

	// Raw track-point XML, rendered as a polyline when present
	GPX string `json:"gpx,omitempty" db:"gpx"`
}

// PlaceCreate represents the payload for creating a place
type PlaceCreate struct {
	Name        string  `json:"name" binding:"required"`
	Lat         float64 `json:"lat" binding:"required"`
	Lng         float64 `json:"lng" binding:"required"`
	Place       string  `json:"place"`
	CategoryID  int64   `json:"category_id" binding:"required"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    float64 `json:"duration"`
	Visited     bool    `json:"visited"`
	Favorite    bool    `json:"favorite"`
	Restroom    bool    `json:"restroom"`
	AllowDog    bool    `json:"allowdog"`
	GPX         string  `json:"gpx"`
}

// PlaceUpdate represents a partial update of a place.
// Nil fields are left untouched.
type PlaceUpdate struct {
	Name        *string  `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Place       *string  `json:"place"`
	CategoryID  *int64   `json:"category_id"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *float64 `json:"duration"`
	Visited     *bool    `json:"visited"`
	Favorite    *bool    `json:"favorite"`
	Restroom    *bool    `json:"restroom"`
	AllowDog    *bool    `json:"allowdog"`
	GPX         *string  `json:"gpx"`
}

// PlaceFilter represents filter parameters for querying places
type PlaceFilter struct {
	CategoryID int64  `form:"categoryId"`
	Visited    *bool  `form:"visited"`
	Favorite   *bool  `form:"favorite"`
	Query      string `form:"query"`
}

// DuplicateCheckRequest asks whether a candidate place duplicates an
// existing one. Advisory only, never blocks creation.
type DuplicateCheckRequest struct {
	Name string  `json:"name" binding:"required"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}
