package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// PackingHandler handles packing lists and checklists
type PackingHandler struct {
	service *service.PackingService
}

// NewPackingHandler creates a new packing handler
func NewPackingHandler(service *service.PackingService) *PackingHandler {
	return &PackingHandler{service: service}
}

// GetPackingItems handles GET /api/v1/trips/:id/packing
func (h *PackingHandler) GetPackingItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.GetPackingItems(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get packing list")
		return
	}
	response.Success(c, items)
}

// CreatePackingItem handles POST /api/v1/trips/:id/packing
func (h *PackingHandler) CreatePackingItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var create models.PackingItemCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid packing item payload")
		return
	}

	item, err := h.service.CreatePackingItem(middleware.Username(c), id, create)
	if err != nil {
		respondError(c, err, "Failed to create packing item")
		return
	}
	response.Success(c, item)
}

// UpdatePackingItem handles PUT /api/v1/trips/:id/packing/:itemId
func (h *PackingHandler) UpdatePackingItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	var update models.PackingItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid packing item payload")
		return
	}

	item, err := h.service.UpdatePackingItem(middleware.Username(c), id, itemID, update)
	if err != nil {
		respondError(c, err, "Failed to update packing item")
		return
	}
	response.Success(c, item)
}

// DeletePackingItem handles DELETE /api/v1/trips/:id/packing/:itemId
func (h *PackingHandler) DeletePackingItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.DeletePackingItem(middleware.Username(c), id, itemID); err != nil {
		respondError(c, err, "Failed to delete packing item")
		return
	}
	response.Success(c, nil)
}

// GetChecklistItems handles GET /api/v1/trips/:id/checklist
func (h *PackingHandler) GetChecklistItems(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.GetChecklistItems(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get checklist")
		return
	}
	response.Success(c, items)
}

// CreateChecklistItem handles POST /api/v1/trips/:id/checklist
func (h *PackingHandler) CreateChecklistItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var create models.ChecklistItemCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid checklist item payload")
		return
	}

	item, err := h.service.CreateChecklistItem(middleware.Username(c), id, create)
	if err != nil {
		respondError(c, err, "Failed to create checklist item")
		return
	}
	response.Success(c, item)
}

// UpdateChecklistItem handles PUT /api/v1/trips/:id/checklist/:itemId
func (h *PackingHandler) UpdateChecklistItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	var update models.ChecklistItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid checklist item payload")
		return
	}

	item, err := h.service.UpdateChecklistItem(middleware.Username(c), id, itemID, update)
	if err != nil {
		respondError(c, err, "Failed to update checklist item")
		return
	}
	response.Success(c, item)
}

// DeleteChecklistItem handles DELETE /api/v1/trips/:id/checklist/:itemId
func (h *PackingHandler) DeleteChecklistItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.DeleteChecklistItem(middleware.Username(c), id, itemID); err != nil {
		respondError(c, err, "Failed to delete checklist item")
		return
	}
	response.Success(c, nil)
}
