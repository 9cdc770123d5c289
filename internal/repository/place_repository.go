package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// ErrPlaceInUse is returned when deleting a place still referenced by a
// trip item
var ErrPlaceInUse = fmt.Errorf("place is in use by a trip item")

// PlaceRepository handles database operations for places
type PlaceRepository struct {
	db *sql.DB
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

const placeColumns = `p.id, p.name, p.lat, p.lng, p.place, p.category_id, p.user,
	p.image, p.image_id, p.description, p.price, p.duration,
	p.visited, p.favorite, p.restroom, p.allowdog, p.gpx,
	c.id, c.name, c.color, c.image, c.image_id`

func scanPlace(scanner interface{ Scan(...interface{}) error }) (*models.Place, error) {
	var p models.Place
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Lat, &p.Lng, &p.Place, &p.CategoryID, &p.User,
		&p.Image, &p.ImageID, &p.Description, &p.Price, &p.Duration,
		&p.Visited, &p.Favorite, &p.Restroom, &p.AllowDog, &p.GPX,
		&p.Category.ID, &p.Category.Name, &p.Category.Color,
		&p.Category.Image, &p.Category.ImageID,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPlaces retrieves a user's places with optional filtering
func (r *PlaceRepository) GetPlaces(user string, filter models.PlaceFilter) ([]models.Place, error) {
	query := `SELECT ` + placeColumns + `
		FROM places p
		JOIN categories c ON c.id = p.category_id`

	conditions := []string{"p.user = ?"}
	args := []interface{}{user}

	if filter.CategoryID > 0 {
		conditions = append(conditions, "p.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Visited != nil {
		conditions = append(conditions, "p.visited = ?")
		args = append(args, *filter.Visited)
	}
	if filter.Favorite != nil {
		conditions = append(conditions, "p.favorite = ?")
		args = append(args, *filter.Favorite)
	}
	if filter.Query != "" {
		conditions = append(conditions, "LOWER(p.name) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
	}

	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY p.name"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []models.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, *p)
	}

	return places, rows.Err()
}

// GetPlaceByID retrieves a single place by ID
func (r *PlaceRepository) GetPlaceByID(id int64) (*models.Place, error) {
	row := r.db.QueryRow(`SELECT `+placeColumns+`
		FROM places p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = ?`, id)

	p, err := scanPlace(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query place: %w", err)
	}
	return p, nil
}

// CreatePlace inserts a new place owned by user
func (r *PlaceRepository) CreatePlace(user string, create models.PlaceCreate) (*models.Place, error) {
	res, err := r.db.Exec(
		`INSERT INTO places (name, lat, lng, place, category_id, user, image,
			description, price, duration, visited, favorite, restroom, allowdog, gpx)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		create.Name, create.Lat, create.Lng, create.Place, create.CategoryID, user,
		create.Image, create.Description, create.Price, create.Duration,
		create.Visited, create.Favorite, create.Restroom, create.AllowDog, create.GPX,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert place: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get place id: %w", err)
	}
	return r.GetPlaceByID(id)
}

// UpdatePlace applies a partial update to a place
func (r *PlaceRepository) UpdatePlace(id int64, update models.PlaceUpdate) (*models.Place, error) {
	var sets []string
	var args []interface{}

	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if update.Name != nil {
		set("name", *update.Name)
	}
	if update.Lat != nil {
		set("lat", *update.Lat)
	}
	if update.Lng != nil {
		set("lng", *update.Lng)
	}
	if update.Place != nil {
		set("place", *update.Place)
	}
	if update.CategoryID != nil {
		set("category_id", *update.CategoryID)
	}
	if update.Image != nil {
		set("image", *update.Image)
	}
	if update.Description != nil {
		set("description", *update.Description)
	}
	if update.Price != nil {
		set("price", *update.Price)
	}
	if update.Duration != nil {
		set("duration", *update.Duration)
	}
	if update.Visited != nil {
		set("visited", *update.Visited)
	}
	if update.Favorite != nil {
		set("favorite", *update.Favorite)
	}
	if update.Restroom != nil {
		set("restroom", *update.Restroom)
	}
	if update.AllowDog != nil {
		set("allowdog", *update.AllowDog)
	}
	if update.GPX != nil {
		set("gpx", *update.GPX)
	}

	if len(sets) > 0 {
		query := "UPDATE places SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update place: %w", err)
		}
	}

	return r.GetPlaceByID(id)
}

// IsPlaceInUse reports whether any trip item references the place
func (r *PlaceRepository) IsPlaceInUse(id int64) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trip_items WHERE place_id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count place references: %w", err)
	}
	return count > 0, nil
}

// DeletePlace removes a place; refused while any trip item references it
func (r *PlaceRepository) DeletePlace(id int64) error {
	inUse, err := r.IsPlaceInUse(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrPlaceInUse
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trip_place WHERE place_id = ?`, id); err != nil {
		return fmt.Errorf("failed to unlink place: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM places WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	return tx.Commit()
}
