package models

// TripItem represents a single planned activity/stop within a day,
// optionally linked to a place
type TripItem struct {
	ID    int64  `json:"id" db:"id"`
	DayID int64  `json:"day_id" db:"day_id"`
	Time  string `json:"time" db:"time"` // HH:MM, 24h, zero-padded
	Text  string `json:"text" db:"text"`

	Comment string `json:"comment,omitempty" db:"comment"`

	// Direct coordinate; the linked place's coordinate is the fallback
	Lat *float64 `json:"lat,omitempty" db:"lat"`
	Lng *float64 `json:"lng,omitempty" db:"lng"`

	PlaceID *int64 `json:"place_id,omitempty" db:"place_id"`
	Place   *Place `json:"place,omitempty"`

	Price  float64 `json:"price,omitempty" db:"price"`
	PaidBy string  `json:"paid_by,omitempty" db:"paid_by"`
	Status string  `json:"status,omitempty" db:"status"`

	GPX         string           `json:"gpx,omitempty" db:"gpx"`
	ImageID     int64            `json:"image_id,omitempty" db:"image_id"`
	Attachments []TripAttachment `json:"attachments,omitempty"`
}

// ItemCreate represents the payload for creating a trip item
type ItemCreate struct {
	Time    string   `json:"time" binding:"required"`
	Text    string   `json:"text" binding:"required"`
	Comment string   `json:"comment"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	PlaceID *int64   `json:"place"`
	Price   float64  `json:"price"`
	PaidBy  string   `json:"paid_by"`
	Status  string   `json:"status"`
	GPX     string   `json:"gpx"`
}

// ItemUpdate represents a partial update of a trip item
type ItemUpdate struct {
	Time    *string  `json:"time"`
	Text    *string  `json:"text"`
	Comment *string  `json:"comment"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	PlaceID *int64   `json:"place"`
	Price   *float64 `json:"price"`
	PaidBy  *string  `json:"paid_by"`
	Status  *string  `json:"status"`
	GPX     *string  `json:"gpx"`
}

// Item status constants
const (
	StatusPending    = "pending"
	StatusConfirmed  = "booked"
	StatusConstraint = "constraint"
	StatusOptional   = "optional"
)

// TripStatus is a status label resolved with its display color
type TripStatus struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Statuses is the fixed status table used to resolve plain labels
var Statuses = []TripStatus{
	{Label: StatusPending, Color: "#f59e0b"},
	{Label: StatusConfirmed, Color: "#22c55e"},
	{Label: StatusConstraint, Color: "#ef4444"},
	{Label: StatusOptional, Color: "#64748b"},
}
