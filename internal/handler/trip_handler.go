package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/mapview"
	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// TripHandler handles HTTP requests for trips, their days and items
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	trips, err := h.service.GetTrips(middleware.Username(c))
	if err != nil {
		respondError(c, err, "Failed to get trips")
		return
	}
	response.Success(c, trips)
}

// GetTripByID handles GET /api/v1/trips/:id
func (h *TripHandler) GetTripByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	trip, err := h.service.GetTrip(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get trip")
		return
	}
	response.Success(c, trip)
}

// CreateTrip handles POST /api/v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var create models.TripCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip payload")
		return
	}

	trip, err := h.service.CreateTrip(middleware.Username(c), create)
	if err != nil {
		respondError(c, err, "Failed to create trip")
		return
	}
	response.Success(c, trip)
}

// UpdateTrip handles PUT /api/v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var update models.TripUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trip payload")
		return
	}

	trip, err := h.service.UpdateTrip(middleware.Username(c), id, update)
	if err != nil {
		respondError(c, err, "Failed to update trip")
		return
	}
	response.Success(c, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTrip(middleware.Username(c), id); err != nil {
		respondError(c, err, "Failed to delete trip")
		return
	}
	response.Success(c, nil)
}

// GetViewModel handles GET /api/v1/trips/:id/view?query=
func (h *TripHandler) GetViewModel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	days, err := h.service.GetViewModel(middleware.Username(c), id, c.Query("query"))
	if err != nil {
		respondError(c, err, "Failed to build trip view")
		return
	}
	response.Success(c, days)
}

// GetHighlight handles GET /api/v1/trips/:id/highlight?day=
// day selects one day by id; omitted or -1 highlights every day.
func (h *TripHandler) GetHighlight(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	dayID := mapview.AllDays
	if raw := c.Query("day"); raw != "" {
		parsed, err := parseQueryID(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid day")
			return
		}
		dayID = parsed
	}

	highlight, err := h.service.GetHighlight(middleware.Username(c), id, dayID)
	if err != nil {
		respondError(c, err, "Failed to build highlight")
		return
	}
	response.Success(c, highlight)
}

// GetBalances handles GET /api/v1/trips/:id/balances
func (h *TripHandler) GetBalances(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	balances, err := h.service.GetBalances(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get balances")
		return
	}
	response.Success(c, balances)
}

// GetUnplannedPlaces handles GET /api/v1/trips/:id/unplanned-places
func (h *TripHandler) GetUnplannedPlaces(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	places, err := h.service.GetUnplannedPlaces(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get unplanned places")
		return
	}
	response.Success(c, places)
}

// CreateDay handles POST /api/v1/trips/:id/days
func (h *TripHandler) CreateDay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var create models.DayCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid day payload")
		return
	}

	day, err := h.service.CreateDay(middleware.Username(c), id, create)
	if err != nil {
		respondError(c, err, "Failed to create day")
		return
	}
	response.Success(c, day)
}

// UpdateDay handles PUT /api/v1/trips/:id/days/:dayId
func (h *TripHandler) UpdateDay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dayID, ok := parseID(c, "dayId")
	if !ok {
		return
	}

	var update models.DayUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid day payload")
		return
	}

	day, err := h.service.UpdateDay(middleware.Username(c), id, dayID, update)
	if err != nil {
		respondError(c, err, "Failed to update day")
		return
	}
	response.Success(c, day)
}

// DeleteDay handles DELETE /api/v1/trips/:id/days/:dayId
func (h *TripHandler) DeleteDay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dayID, ok := parseID(c, "dayId")
	if !ok {
		return
	}

	if err := h.service.DeleteDay(middleware.Username(c), id, dayID); err != nil {
		respondError(c, err, "Failed to delete day")
		return
	}
	response.Success(c, nil)
}

// CreateItem handles POST /api/v1/trips/:id/days/:dayId/items
func (h *TripHandler) CreateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	dayID, ok := parseID(c, "dayId")
	if !ok {
		return
	}

	var create models.ItemCreate
	if err := c.ShouldBindJSON(&create); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item payload")
		return
	}

	item, err := h.service.CreateItem(middleware.Username(c), id, dayID, create)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}
	response.Success(c, item)
}

// UpdateItem handles PUT /api/v1/trips/:id/items/:itemId
func (h *TripHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	var update models.ItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid item payload")
		return
	}

	item, err := h.service.UpdateItem(middleware.Username(c), id, itemID, update)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	response.Success(c, item)
}

// DeleteItem handles DELETE /api/v1/trips/:id/items/:itemId
func (h *TripHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(middleware.Username(c), id, itemID); err != nil {
		respondError(c, err, "Failed to delete item")
		return
	}
	response.Success(c, nil)
}
