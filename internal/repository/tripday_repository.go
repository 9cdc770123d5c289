package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// ErrDuplicateDayLabel is returned when creating or renaming a day with a
// label already used within the trip
var ErrDuplicateDayLabel = fmt.Errorf("day label already exists in trip")

// TripDayRepository handles database operations for trip days and items
type TripDayRepository struct {
	db *sql.DB
}

// NewTripDayRepository creates a new trip day repository
func NewTripDayRepository(db *sql.DB) *TripDayRepository {
	return &TripDayRepository{db: db}
}

// GetDayByID retrieves a day (without items)
func (r *TripDayRepository) GetDayByID(id int64) (*models.TripDay, error) {
	var d models.TripDay
	err := r.db.QueryRow(`SELECT id, trip_id, dt, label, notes FROM trip_days WHERE id = ?`, id).
		Scan(&d.ID, &d.TripID, &d.Dt, &d.Label, &d.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trip day: %w", err)
	}
	return &d, nil
}

// LabelExists reports whether a day label is already used within a trip,
// optionally excluding one day id (for renames)
func (r *TripDayRepository) LabelExists(tripID int64, label string, excludeDayID int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trip_days WHERE trip_id = ? AND label = ? AND id != ?`,
		tripID, label, excludeDayID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query day label: %w", err)
	}
	return count > 0, nil
}

// CreateDay inserts a new day into a trip
func (r *TripDayRepository) CreateDay(tripID int64, create models.DayCreate) (*models.TripDay, error) {
	exists, err := r.LabelExists(tripID, create.Label, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateDayLabel
	}

	res, err := r.db.Exec(`INSERT INTO trip_days (trip_id, dt, label, notes) VALUES (?, ?, ?, ?)`,
		tripID, create.Dt, create.Label, create.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trip day: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get day id: %w", err)
	}
	return r.GetDayByID(id)
}

// UpdateDay applies a partial update to a day
func (r *TripDayRepository) UpdateDay(id int64, update models.DayUpdate) (*models.TripDay, error) {
	day, err := r.GetDayByID(id)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, nil
	}

	var sets []string
	var args []interface{}

	if update.Dt != nil {
		sets = append(sets, "dt = ?")
		args = append(args, *update.Dt)
	}
	if update.Label != nil {
		exists, err := r.LabelExists(day.TripID, *update.Label, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateDayLabel
		}
		sets = append(sets, "label = ?")
		args = append(args, *update.Label)
	}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *update.Notes)
	}

	if len(sets) > 0 {
		query := "UPDATE trip_days SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update trip day: %w", err)
		}
	}

	return r.GetDayByID(id)
}

// DeleteDay removes a day and its items
func (r *TripDayRepository) DeleteDay(id int64) error {
	_, err := r.db.Exec(`DELETE FROM trip_days WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip day: %w", err)
	}
	return nil
}

// GetItemByID retrieves a single item
func (r *TripDayRepository) GetItemByID(id int64) (*models.TripItem, error) {
	var item models.TripItem
	var lat, lng sql.NullFloat64
	var placeID sql.NullInt64
	err := r.db.QueryRow(`SELECT id, day_id, time, text, comment, lat, lng,
		place_id, price, paid_by, status, gpx, image_id
		FROM trip_items WHERE id = ?`, id).
		Scan(&item.ID, &item.DayID, &item.Time, &item.Text, &item.Comment,
			&lat, &lng, &placeID, &item.Price, &item.PaidBy, &item.Status,
			&item.GPX, &item.ImageID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trip item: %w", err)
	}
	if lat.Valid {
		item.Lat = &lat.Float64
	}
	if lng.Valid {
		item.Lng = &lng.Float64
	}
	if placeID.Valid {
		item.PlaceID = &placeID.Int64
	}
	return &item, nil
}

// CreateItem inserts a new item into a day
func (r *TripDayRepository) CreateItem(dayID int64, create models.ItemCreate) (*models.TripItem, error) {
	res, err := r.db.Exec(`INSERT INTO trip_items
		(day_id, time, text, comment, lat, lng, place_id, price, paid_by, status, gpx)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dayID, create.Time, create.Text, create.Comment,
		nullableFloat(create.Lat), nullableFloat(create.Lng), nullableInt(create.PlaceID),
		create.Price, create.PaidBy, create.Status, create.GPX)
	if err != nil {
		return nil, fmt.Errorf("failed to insert trip item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get item id: %w", err)
	}
	return r.GetItemByID(id)
}

// UpdateItem applies a partial update to an item. A non-nil PlaceID of 0
// clears the place link.
func (r *TripDayRepository) UpdateItem(id int64, update models.ItemUpdate) (*models.TripItem, error) {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.Time != nil {
		set("time", *update.Time)
	}
	if update.Text != nil {
		set("text", *update.Text)
	}
	if update.Comment != nil {
		set("comment", *update.Comment)
	}
	if update.Lat != nil {
		set("lat", *update.Lat)
	}
	if update.Lng != nil {
		set("lng", *update.Lng)
	}
	if update.PlaceID != nil {
		if *update.PlaceID == 0 {
			set("place_id", nil)
		} else {
			set("place_id", *update.PlaceID)
		}
	}
	if update.Price != nil {
		set("price", *update.Price)
	}
	if update.PaidBy != nil {
		set("paid_by", *update.PaidBy)
	}
	if update.Status != nil {
		set("status", *update.Status)
	}
	if update.GPX != nil {
		set("gpx", *update.GPX)
	}

	if len(sets) > 0 {
		query := "UPDATE trip_items SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update trip item: %w", err)
		}
	}

	return r.GetItemByID(id)
}

// DeleteItem removes an item
func (r *TripDayRepository) DeleteItem(id int64) error {
	_, err := r.db.Exec(`DELETE FROM trip_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip item: %w", err)
	}
	return nil
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableInt(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
