package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// ShareRepository handles share tokens and trip membership
type ShareRepository struct {
	db *sql.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *sql.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// GetShare returns the share for a trip, or nil
func (r *ShareRepository) GetShare(tripID int64) (*models.TripShare, error) {
	var s models.TripShare
	err := r.db.QueryRow(`SELECT id, trip_id, token FROM trip_shares WHERE trip_id = ?`, tripID).
		Scan(&s.ID, &s.TripID, &s.Token)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query share: %w", err)
	}
	return &s, nil
}

// GetShareByToken resolves an opaque share token, or nil when unknown
func (r *ShareRepository) GetShareByToken(token string) (*models.TripShare, error) {
	var s models.TripShare
	err := r.db.QueryRow(`SELECT id, trip_id, token FROM trip_shares WHERE token = ?`, token).
		Scan(&s.ID, &s.TripID, &s.Token)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query share token: %w", err)
	}
	return &s, nil
}

// CreateShare stores a share token for a trip, replacing any previous one
func (r *ShareRepository) CreateShare(tripID int64, token string) (*models.TripShare, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trip_shares WHERE trip_id = ?`, tripID); err != nil {
		return nil, fmt.Errorf("failed to clear previous share: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO trip_shares (trip_id, token) VALUES (?, ?)`, tripID, token); err != nil {
		return nil, fmt.Errorf("failed to insert share: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit share: %w", err)
	}

	return r.GetShare(tripID)
}

// DeleteShare revokes a trip's share token; no-op when none exists
func (r *ShareRepository) DeleteShare(tripID int64) error {
	_, err := r.db.Exec(`DELETE FROM trip_shares WHERE trip_id = ?`, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	return nil
}

// InviteMember records a pending invitation
func (r *ShareRepository) InviteMember(tripID int64, user, invitedBy string) error {
	invitedAt := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Exec(`INSERT INTO trip_members (trip_id, user, invited_by, invited_at) VALUES (?, ?, ?, ?)`,
		tripID, user, invitedBy, invitedAt)
	if err != nil {
		return fmt.Errorf("failed to invite member: %w", err)
	}
	return nil
}

// RemoveMember removes a member or pending invitation
func (r *ShareRepository) RemoveMember(tripID int64, user string) error {
	_, err := r.db.Exec(`DELETE FROM trip_members WHERE trip_id = ? AND user = ?`, tripID, user)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// AcceptInvite marks a pending invitation as joined
func (r *ShareRepository) AcceptInvite(tripID int64, user string) error {
	joinedAt := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`UPDATE trip_members SET joined_at = ? WHERE trip_id = ? AND user = ? AND joined_at = ''`,
		joinedAt, tripID, user)
	if err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check invite: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no pending invitation")
	}
	return nil
}

// GetInvitations lists trips with a pending invitation for the user
func (r *ShareRepository) GetInvitations(user string) ([]models.Trip, error) {
	rows, err := r.db.Query(`SELECT t.id, t.name, t.user, t.currency, t.image, t.notes,
		t.archived, t.archival_review, t.created_at, t.updated_at
		FROM trips t
		JOIN trip_members m ON m.trip_id = t.id
		WHERE m.user = ? AND m.joined_at = ''
		ORDER BY m.invited_at DESC`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}
