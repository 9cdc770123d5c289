package service

import (
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// CategoryService handles business logic for categories
type CategoryService struct {
	repo *repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]models.Category, error) {
	return s.repo.GetCategories()
}

// GetCategoryByID retrieves a single category by ID
func (s *CategoryService) GetCategoryByID(id int64) (*models.Category, error) {
	return s.repo.GetCategoryByID(id)
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(create models.CategoryCreate) (*models.Category, error) {
	return s.repo.CreateCategory(create)
}

// UpdateCategory applies a partial update to a category
func (s *CategoryService) UpdateCategory(id int64, update models.CategoryUpdate) (*models.Category, error) {
	return s.repo.UpdateCategory(id, update)
}

// DeleteCategory removes a category; refused while any place uses it
func (s *CategoryService) DeleteCategory(id int64) error {
	return s.repo.DeleteCategory(id)
}
