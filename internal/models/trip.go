package models

import "time"

// Trip represents a named itinerary composed of days, linked places,
// collaborators and ancillary lists
type Trip struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	User     string `json:"user" db:"user"`
	Currency string `json:"currency,omitempty" db:"currency"`
	Image    string `json:"image,omitempty" db:"image"`
	Notes    string `json:"notes,omitempty" db:"notes"`

	Archived       bool   `json:"archived" db:"archived"`
	ArchivalReview string `json:"archival_review,omitempty" db:"archival_review"`

	Days          []TripDay        `json:"days"`
	Places        []Place          `json:"places"`
	PlaceIDs      []int64          `json:"place_ids"`
	Collaborators []TripMember     `json:"collaborators"`
	Attachments   []TripAttachment `json:"attachments,omitempty"`

	// True when a read-only share token exists for this trip
	Shared bool `json:"shared"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TripCreate represents the payload for creating a trip
type TripCreate struct {
	Name     string      `json:"name" binding:"required"`
	Currency string      `json:"currency"`
	Notes    string      `json:"notes"`
	Days     []DayCreate `json:"days"`
	PlaceIDs []int64     `json:"place_ids"`
}

// TripUpdate represents a partial update of a trip
type TripUpdate struct {
	Name           *string `json:"name"`
	Currency       *string `json:"currency"`
	Notes          *string `json:"notes"`
	Archived       *bool   `json:"archived"`
	ArchivalReview *string `json:"archival_review"`
	PlaceIDs       []int64 `json:"place_ids"`
}

// TripMember represents a collaborator on a trip
type TripMember struct {
	User      string  `json:"user" db:"user"`
	InvitedBy string  `json:"invited_by" db:"invited_by"`
	InvitedAt string  `json:"invited_at" db:"invited_at"`
	JoinedAt  string  `json:"joined_at,omitempty" db:"joined_at"`
	Balance   float64 `json:"balance,omitempty"`
}

// TripShare represents a read-only share token for a trip
type TripShare struct {
	ID     int64  `json:"id" db:"id"`
	TripID int64  `json:"trip_id" db:"trip_id"`
	Token  string `json:"token" db:"token"`
}

// SharedTripURL is returned when a share token is created or queried
type SharedTripURL struct {
	URL string `json:"url"`
}

// TripAttachment represents a file attached to a trip or a trip item
type TripAttachment struct {
	ID         int64  `json:"id" db:"id"`
	TripID     int64  `json:"trip_id" db:"trip_id"`
	Filename   string `json:"filename" db:"filename"`
	FileSize   int64  `json:"file_size" db:"file_size"`
	UploadedBy string `json:"uploaded_by" db:"uploaded_by"`
}

// MemberBalance summarizes what a member has paid across a trip
type MemberBalance struct {
	User    string  `json:"user"`
	Balance float64 `json:"balance"`
}
