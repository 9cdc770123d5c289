package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// ErrCategoryInUse is returned when deleting a category still referenced
// by at least one place
var ErrCategoryInUse = fmt.Errorf("category is referenced by existing places")

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategories retrieves all categories ordered by name
func (r *CategoryRepository) GetCategories() ([]models.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, color, image, image_id FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Image, &c.ImageID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// GetCategoryByID retrieves a single category by ID
func (r *CategoryRepository) GetCategoryByID(id int64) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(`SELECT id, name, color, image, image_id FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color, &c.Image, &c.ImageID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}
	return &c, nil
}

// CreateCategory inserts a new category
func (r *CategoryRepository) CreateCategory(create models.CategoryCreate) (*models.Category, error) {
	res, err := r.db.Exec(
		`INSERT INTO categories (name, color, image, image_id) VALUES (?, ?, ?, ?)`,
		create.Name, create.Color, create.Image, create.ImageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}
	return r.GetCategoryByID(id)
}

// UpdateCategory applies a partial update to a category
func (r *CategoryRepository) UpdateCategory(id int64, update models.CategoryUpdate) (*models.Category, error) {
	var sets []string
	var args []interface{}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *update.Color)
	}
	if update.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, *update.Image)
	}
	if update.ImageID != nil {
		sets = append(sets, "image_id = ?")
		args = append(args, *update.ImageID)
	}

	if len(sets) > 0 {
		query := "UPDATE categories SET " + joinSets(sets) + " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.Exec(query, args...); err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	return r.GetCategoryByID(id)
}

// DeleteCategory removes a category; refused while any place references it
func (r *CategoryRepository) DeleteCategory(id int64) error {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM places WHERE category_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	_, err = r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
