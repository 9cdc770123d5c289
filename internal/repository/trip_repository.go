package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, name, user, currency, image, notes, archived, archival_review, created_at, updated_at`

func scanTrip(scanner interface{ Scan(...interface{}) error }) (*models.Trip, error) {
	var t models.Trip
	err := scanner.Scan(
		&t.ID, &t.Name, &t.User, &t.Currency, &t.Image, &t.Notes,
		&t.Archived, &t.ArchivalReview, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTrips retrieves trips the user owns or collaborates on
func (r *TripRepository) GetTrips(user string) ([]models.Trip, error) {
	rows, err := r.db.Query(`SELECT `+tripColumns+` FROM trips
		WHERE user = ?
		   OR id IN (SELECT trip_id FROM trip_members WHERE user = ? AND joined_at != '')
		ORDER BY created_at DESC`, user, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}

	return trips, rows.Err()
}

// GetTripByID retrieves a fully assembled trip: days with ordered items,
// linked places, collaborators, attachments and share state
func (r *TripRepository) GetTripByID(id int64) (*models.Trip, error) {
	row := r.db.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	trip, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trip: %w", err)
	}

	if err := r.loadPlaces(trip); err != nil {
		return nil, err
	}
	if err := r.loadDays(trip); err != nil {
		return nil, err
	}
	if err := r.loadMembers(trip); err != nil {
		return nil, err
	}
	if err := r.loadAttachments(trip); err != nil {
		return nil, err
	}

	var shareCount int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM trip_shares WHERE trip_id = ?`, id).Scan(&shareCount); err != nil {
		return nil, fmt.Errorf("failed to query trip share: %w", err)
	}
	trip.Shared = shareCount > 0

	return trip, nil
}

func (r *TripRepository) loadPlaces(trip *models.Trip) error {
	rows, err := r.db.Query(`SELECT `+placeColumns+`
		FROM trip_place tp
		JOIN places p ON p.id = tp.place_id
		JOIN categories c ON c.id = p.category_id
		WHERE tp.trip_id = ?
		ORDER BY p.name`, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to query trip places: %w", err)
	}
	defer rows.Close()

	trip.Places = []models.Place{}
	trip.PlaceIDs = []int64{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return fmt.Errorf("failed to scan trip place: %w", err)
		}
		trip.Places = append(trip.Places, *p)
		trip.PlaceIDs = append(trip.PlaceIDs, p.ID)
	}
	return rows.Err()
}

func (r *TripRepository) loadDays(trip *models.Trip) error {
	rows, err := r.db.Query(`SELECT id, trip_id, dt, label, notes
		FROM trip_days WHERE trip_id = ? ORDER BY dt, id`, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to query trip days: %w", err)
	}
	defer rows.Close()

	trip.Days = []models.TripDay{}
	for rows.Next() {
		var d models.TripDay
		if err := rows.Scan(&d.ID, &d.TripID, &d.Dt, &d.Label, &d.Notes); err != nil {
			return fmt.Errorf("failed to scan trip day: %w", err)
		}
		trip.Days = append(trip.Days, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	placesByID := make(map[int64]models.Place, len(trip.Places))
	for _, p := range trip.Places {
		placesByID[p.ID] = p
	}

	for i := range trip.Days {
		items, err := r.loadItems(trip.Days[i].ID, placesByID)
		if err != nil {
			return err
		}
		trip.Days[i].Items = items
	}
	return nil
}

func (r *TripRepository) loadItems(dayID int64, placesByID map[int64]models.Place) ([]models.TripItem, error) {
	// Ordered by time with id as the stable tiebreaker (insertion order)
	rows, err := r.db.Query(`SELECT id, day_id, time, text, comment, lat, lng,
		place_id, price, paid_by, status, gpx, image_id
		FROM trip_items WHERE day_id = ? ORDER BY time, id`, dayID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip items: %w", err)
	}
	defer rows.Close()

	items := []models.TripItem{}
	for rows.Next() {
		var item models.TripItem
		var lat, lng sql.NullFloat64
		var placeID sql.NullInt64
		err := rows.Scan(&item.ID, &item.DayID, &item.Time, &item.Text, &item.Comment,
			&lat, &lng, &placeID, &item.Price, &item.PaidBy, &item.Status,
			&item.GPX, &item.ImageID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip item: %w", err)
		}
		if lat.Valid {
			item.Lat = &lat.Float64
		}
		if lng.Valid {
			item.Lng = &lng.Float64
		}
		if placeID.Valid {
			item.PlaceID = &placeID.Int64
			if p, ok := placesByID[placeID.Int64]; ok {
				place := p
				item.Place = &place
			}
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *TripRepository) loadMembers(trip *models.Trip) error {
	rows, err := r.db.Query(`SELECT user, invited_by, invited_at, joined_at
		FROM trip_members WHERE trip_id = ? ORDER BY invited_at`, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to query trip members: %w", err)
	}
	defer rows.Close()

	trip.Collaborators = []models.TripMember{}
	for rows.Next() {
		var m models.TripMember
		if err := rows.Scan(&m.User, &m.InvitedBy, &m.InvitedAt, &m.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan trip member: %w", err)
		}
		trip.Collaborators = append(trip.Collaborators, m)
	}
	return rows.Err()
}

func (r *TripRepository) loadAttachments(trip *models.Trip) error {
	rows, err := r.db.Query(`SELECT id, trip_id, filename, file_size, uploaded_by
		FROM trip_attachments WHERE trip_id = ? ORDER BY id`, trip.ID)
	if err != nil {
		return fmt.Errorf("failed to query trip attachments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.TripAttachment
		if err := rows.Scan(&a.ID, &a.TripID, &a.Filename, &a.FileSize, &a.UploadedBy); err != nil {
			return fmt.Errorf("failed to scan trip attachment: %w", err)
		}
		trip.Attachments = append(trip.Attachments, a)
	}
	return rows.Err()
}

// CreateTrip inserts a new trip with its initial days and place links
func (r *TripRepository) CreateTrip(user string, create models.TripCreate) (*models.Trip, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO trips (name, user, currency, notes) VALUES (?, ?, ?, ?)`,
		create.Name, user, create.Currency, create.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trip: %w", err)
	}
	tripID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get trip id: %w", err)
	}

	for _, day := range create.Days {
		_, err := tx.Exec(`INSERT INTO trip_days (trip_id, dt, label, notes) VALUES (?, ?, ?, ?)`,
			tripID, day.Dt, day.Label, day.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to insert trip day: %w", err)
		}
	}

	for _, placeID := range create.PlaceIDs {
		_, err := tx.Exec(`INSERT INTO trip_place (trip_id, place_id) VALUES (?, ?)`, tripID, placeID)
		if err != nil {
			return nil, fmt.Errorf("failed to link place: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trip: %w", err)
	}

	return r.GetTripByID(tripID)
}

// UpdateTrip applies a partial update; PlaceIDs, when non-nil, replaces
// the linked place set
func (r *TripRepository) UpdateTrip(id int64, update models.TripUpdate) (*models.Trip, error) {
	var sets []string
	var args []interface{}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Currency != nil {
		sets = append(sets, "currency = ?")
		args = append(args, *update.Currency)
	}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *update.Notes)
	}
	if update.Archived != nil {
		sets = append(sets, "archived = ?")
		args = append(args, *update.Archived)
	}
	if update.ArchivalReview != nil {
		sets = append(sets, "archival_review = ?")
		args = append(args, *update.ArchivalReview)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if len(sets) > 0 {
		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
		query := "UPDATE trips SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := tx.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update trip: %w", err)
		}
	}

	if update.PlaceIDs != nil {
		if _, err := tx.Exec(`DELETE FROM trip_place WHERE trip_id = ?`, id); err != nil {
			return nil, fmt.Errorf("failed to clear place links: %w", err)
		}
		for _, placeID := range update.PlaceIDs {
			if _, err := tx.Exec(`INSERT INTO trip_place (trip_id, place_id) VALUES (?, ?)`, id, placeID); err != nil {
				return nil, fmt.Errorf("failed to link place: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit trip update: %w", err)
	}

	return r.GetTripByID(id)
}

// DeleteTrip removes a trip and everything it owns
func (r *TripRepository) DeleteTrip(id int64) error {
	_, err := r.db.Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// GetUsedPlaceIDs returns the place ids referenced by any item of the trip
func (r *TripRepository) GetUsedPlaceIDs(tripID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(`SELECT DISTINCT ti.place_id
		FROM trip_items ti
		JOIN trip_days td ON td.id = ti.day_id
		WHERE td.trip_id = ? AND ti.place_id IS NOT NULL`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query used places: %w", err)
	}
	defer rows.Close()

	used := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan used place: %w", err)
		}
		used[id] = true
	}
	return used, rows.Err()
}

// GetMemberBalances sums item prices by payer across the trip
func (r *TripRepository) GetMemberBalances(tripID int64) ([]models.MemberBalance, error) {
	rows, err := r.db.Query(`SELECT ti.paid_by, SUM(ti.price)
		FROM trip_items ti
		JOIN trip_days td ON td.id = ti.day_id
		WHERE td.trip_id = ? AND ti.paid_by != ''
		GROUP BY ti.paid_by
		ORDER BY ti.paid_by`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	var balances []models.MemberBalance
	for rows.Next() {
		var b models.MemberBalance
		if err := rows.Scan(&b.User, &b.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

// TripUsernames returns the owner plus all joined members of a trip
func (r *TripRepository) TripUsernames(tripID int64) (map[string]bool, error) {
	users := make(map[string]bool)

	var owner string
	err := r.db.QueryRow(`SELECT user FROM trips WHERE id = ?`, tripID).Scan(&owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip owner: %w", err)
	}
	users[owner] = true

	rows, err := r.db.Query(`SELECT user FROM trip_members WHERE trip_id = ? AND joined_at != ''`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trip members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var user string
		if err := rows.Scan(&user); err != nil {
			return nil, fmt.Errorf("failed to scan trip member: %w", err)
		}
		users[user] = true
	}
	return users, rows.Err()
}

// PlaceLinkedToTrip reports whether the place is linked to the trip
func (r *TripRepository) PlaceLinkedToTrip(tripID, placeID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trip_place WHERE trip_id = ? AND place_id = ?`,
		tripID, placeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query place link: %w", err)
	}
	return count > 0, nil
}
