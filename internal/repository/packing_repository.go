package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// PackingRepository handles database operations for packing lists and
// checklists
type PackingRepository struct {
	db *sql.DB
}

// NewPackingRepository creates a new packing repository
func NewPackingRepository(db *sql.DB) *PackingRepository {
	return &PackingRepository{db: db}
}

// GetPackingItems retrieves a trip's packing list grouped by category
// order then insertion order
func (r *PackingRepository) GetPackingItems(tripID int64) ([]models.PackingItem, error) {
	rows, err := r.db.Query(`SELECT id, trip_id, text, category, qt, packed
		FROM packing_items WHERE trip_id = ? ORDER BY category, id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query packing items: %w", err)
	}
	defer rows.Close()

	items := []models.PackingItem{}
	for rows.Next() {
		var item models.PackingItem
		if err := rows.Scan(&item.ID, &item.TripID, &item.Text, &item.Category, &item.Qt, &item.Packed); err != nil {
			return nil, fmt.Errorf("failed to scan packing item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetPackingItemByID retrieves a single packing item
func (r *PackingRepository) GetPackingItemByID(id int64) (*models.PackingItem, error) {
	var item models.PackingItem
	err := r.db.QueryRow(`SELECT id, trip_id, text, category, qt, packed
		FROM packing_items WHERE id = ?`, id).
		Scan(&item.ID, &item.TripID, &item.Text, &item.Category, &item.Qt, &item.Packed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query packing item: %w", err)
	}
	return &item, nil
}

// CreatePackingItem inserts a new packing item
func (r *PackingRepository) CreatePackingItem(tripID int64, create models.PackingItemCreate) (*models.PackingItem, error) {
	qt := create.Qt
	if qt <= 0 {
		qt = 1
	}
	res, err := r.db.Exec(`INSERT INTO packing_items (trip_id, text, category, qt) VALUES (?, ?, ?, ?)`,
		tripID, create.Text, create.Category, qt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert packing item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get packing item id: %w", err)
	}
	return r.GetPackingItemByID(id)
}

// UpdatePackingItem applies a partial update to a packing item
func (r *PackingRepository) UpdatePackingItem(id int64, update models.PackingItemUpdate) (*models.PackingItem, error) {
	var sets []string
	var args []interface{}

	if update.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *update.Text)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *update.Category)
	}
	if update.Qt != nil {
		sets = append(sets, "qt = ?")
		args = append(args, *update.Qt)
	}
	if update.Packed != nil {
		sets = append(sets, "packed = ?")
		args = append(args, *update.Packed)
	}

	if len(sets) > 0 {
		query := "UPDATE packing_items SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update packing item: %w", err)
		}
	}

	return r.GetPackingItemByID(id)
}

// DeletePackingItem removes a packing item
func (r *PackingRepository) DeletePackingItem(id int64) error {
	_, err := r.db.Exec(`DELETE FROM packing_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete packing item: %w", err)
	}
	return nil
}

// GetChecklistItems retrieves a trip's checklist in insertion order
func (r *PackingRepository) GetChecklistItems(tripID int64) ([]models.ChecklistItem, error) {
	rows, err := r.db.Query(`SELECT id, trip_id, text, checked
		FROM checklist_items WHERE trip_id = ? ORDER BY id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items: %w", err)
	}
	defer rows.Close()

	items := []models.ChecklistItem{}
	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.TripID, &item.Text, &item.Checked); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetChecklistItemByID retrieves a single checklist item
func (r *PackingRepository) GetChecklistItemByID(id int64) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	err := r.db.QueryRow(`SELECT id, trip_id, text, checked FROM checklist_items WHERE id = ?`, id).
		Scan(&item.ID, &item.TripID, &item.Text, &item.Checked)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist item: %w", err)
	}
	return &item, nil
}

// CreateChecklistItem inserts a new checklist item
func (r *PackingRepository) CreateChecklistItem(tripID int64, create models.ChecklistItemCreate) (*models.ChecklistItem, error) {
	res, err := r.db.Exec(`INSERT INTO checklist_items (trip_id, text) VALUES (?, ?)`,
		tripID, create.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to insert checklist item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist item id: %w", err)
	}
	return r.GetChecklistItemByID(id)
}

// UpdateChecklistItem applies a partial update to a checklist item
func (r *PackingRepository) UpdateChecklistItem(id int64, update models.ChecklistItemUpdate) (*models.ChecklistItem, error) {
	var sets []string
	var args []interface{}

	if update.Text != nil {
		sets = append(sets, "text = ?")
		args = append(args, *update.Text)
	}
	if update.Checked != nil {
		sets = append(sets, "checked = ?")
		args = append(args, *update.Checked)
	}

	if len(sets) > 0 {
		query := "UPDATE checklist_items SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update checklist item: %w", err)
		}
	}

	return r.GetChecklistItemByID(id)
}

// DeleteChecklistItem removes a checklist item
func (r *PackingRepository) DeleteChecklistItem(id int64) error {
	_, err := r.db.Exec(`DELETE FROM checklist_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return nil
}
