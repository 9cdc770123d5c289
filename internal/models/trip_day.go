package models

// TripDay represents one day (dated or unscheduled) within a trip.
// Labels are unique within their trip.
type TripDay struct {
	ID     int64  `json:"id" db:"id"`
	TripID int64  `json:"trip_id" db:"trip_id"`
	Dt     string `json:"dt,omitempty" db:"dt"` // YYYY-MM-DD
	Label  string `json:"label" db:"label"`
	Notes  string `json:"notes,omitempty" db:"notes"`

	Items []TripItem `json:"items"`
}

// DayCreate represents the payload for creating a trip day
type DayCreate struct {
	Dt    string `json:"dt"`
	Label string `json:"label" binding:"required"`
	Notes string `json:"notes"`
}

// DayUpdate represents a partial update of a trip day
type DayUpdate struct {
	Dt    *string `json:"dt"`
	Label *string `json:"label"`
	Notes *string `json:"notes"`
}
