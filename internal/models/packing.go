package models

// PackingItem represents one row of a trip's packing list
type PackingItem struct {
	ID       int64  `json:"id" db:"id"`
	TripID   int64  `json:"trip_id" db:"trip_id"`
	Text     string `json:"text" db:"text"`
	Category string `json:"category" db:"category"`
	Qt       int    `json:"qt,omitempty" db:"qt"`
	Packed   bool   `json:"packed" db:"packed"`
}

// Packing list categories
const (
	PackingClothes    = "clothes"
	PackingToiletries = "toiletries"
	PackingTech       = "tech"
	PackingDocuments  = "documents"
	PackingOther      = "other"
)

// PackingItemCreate represents the payload for creating a packing item
type PackingItemCreate struct {
	Text     string `json:"text" binding:"required"`
	Category string `json:"category" binding:"required"`
	Qt       int    `json:"qt"`
}

// PackingItemUpdate represents a partial update of a packing item
type PackingItemUpdate struct {
	Text     *string `json:"text"`
	Category *string `json:"category"`
	Qt       *int    `json:"qt"`
	Packed   *bool   `json:"packed"`
}

// ChecklistItem represents one row of a trip's checklist
type ChecklistItem struct {
	ID      int64  `json:"id" db:"id"`
	TripID  int64  `json:"trip_id" db:"trip_id"`
	Text    string `json:"text" db:"text"`
	Checked bool   `json:"checked" db:"checked"`
}

// ChecklistItemCreate represents the payload for creating a checklist item
type ChecklistItemCreate struct {
	Text string `json:"text" binding:"required"`
}

// ChecklistItemUpdate represents a partial update of a checklist item
type ChecklistItemUpdate struct {
	Text    *string `json:"text"`
	Checked *bool   `json:"checked"`
}
