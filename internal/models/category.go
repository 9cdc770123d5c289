package models

// Category represents a place category (marker tint and glyph)
type Category struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Color   string `json:"color" db:"color"`
	Image   string `json:"image,omitempty" db:"image"`
	ImageID int64  `json:"image_id,omitempty" db:"image_id"`
}

// CategoryCreate represents the payload for creating a category
type CategoryCreate struct {
	Name    string `json:"name" binding:"required"`
	Color   string `json:"color" binding:"required"`
	Image   string `json:"image"`
	ImageID int64  `json:"image_id"`
}

// CategoryUpdate represents a partial update of a category
type CategoryUpdate struct {
	Name    *string `json:"name"`
	Color   *string `json:"color"`
	Image   *string `json:"image"`
	ImageID *int64  `json:"image_id"`
}
