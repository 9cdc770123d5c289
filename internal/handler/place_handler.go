package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// PlaceHandler handles HTTP requests for places
type PlaceHandler struct {
	service *service.PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service *service.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// GetPlaces handles GET /api/v1/places
func (h *PlaceHandler) GetPlaces(c *gin.Context) {
	var filter models.PlaceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	places, err := h.service.GetPlaces(middleware.Username(c), filter)
	if err != nil {
		respondError(c, err, "Failed to get places")
		return
	}
	response.Success(c, places)
}

// GetPlaceByID handles GET /api/v1/places/:id
func (h *PlaceHandler) GetPlaceByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	place, err := h.service.GetPlaceByID(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get place")
		return
	}
	response.Success(c, place)
}

// CreatePlace handles POST /api/v1/places
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var create models.PlaceCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid place payload")
		return
	}

	place, err := h.service.CreatePlace(middleware.Username(c), create)
	if err != nil {
		respondError(c, err, "Failed to create place")
		return
	}
	response.Success(c, place)
}

// UpdatePlace handles PUT /api/v1/places/:id
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var update models.PlaceUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid place payload")
		return
	}

	place, err := h.service.UpdatePlace(middleware.Username(c), id, update)
	if err != nil {
		respondError(c, err, "Failed to update place")
		return
	}
	response.Success(c, place)
}

// DeletePlace handles DELETE /api/v1/places/:id
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePlace(middleware.Username(c), id); err != nil {
		respondError(c, err, "Failed to delete place")
		return
	}
	response.Success(c, nil)
}

// CheckDuplicate handles POST /api/v1/places/check-duplicate. The answer
// is advisory; the client decides whether to create anyway.
func (h *PlaceHandler) CheckDuplicate(c *gin.Context) {
	var req models.DuplicateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid duplicate check payload")
		return
	}

	duplicate, err := h.service.CheckDuplicate(middleware.Username(c), req)
	if err != nil {
		respondError(c, err, "Failed to check for duplicates")
		return
	}
	response.Success(c, gin.H{
		"duplicate": duplicate != nil,
		"place":     duplicate,
	})
}
