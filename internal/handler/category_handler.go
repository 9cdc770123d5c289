package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// GetCategories handles GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.GetCategories()
	if err != nil {
		respondError(c, err, "Failed to get categories")
		return
	}
	response.Success(c, categories)
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var create models.CategoryCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid category payload")
		return
	}

	category, err := h.service.CreateCategory(create)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	response.Success(c, category)
}

// UpdateCategory handles PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var update models.CategoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid category payload")
		return
	}

	category, err := h.service.UpdateCategory(id, update)
	if err != nil {
		respondError(c, err, "Failed to update category")
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found")
		return
	}
	response.Success(c, category)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(id); err != nil {
		respondError(c, err, "Failed to delete category")
		return
	}
	response.Success(c, nil)
}
