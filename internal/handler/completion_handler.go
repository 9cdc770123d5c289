package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/internal/spatial"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// CompletionHandler handles provider-backed lookups: geocoding searches,
// bulk imports and routing
type CompletionHandler struct {
	service *service.CompletionService
}

// NewCompletionHandler creates a new completion handler
func NewCompletionHandler(service *service.CompletionService) *CompletionHandler {
	return &CompletionHandler{service: service}
}

type searchQuery struct {
	Query string   `form:"query" binding:"required"`
	NeLat *float64 `form:"neLat"`
	NeLng *float64 `form:"neLng"`
	SwLat *float64 `form:"swLat"`
	SwLng *float64 `form:"swLng"`
}

// SearchPlaces handles GET /api/v1/completions/search
func (h *CompletionHandler) SearchPlaces(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid search parameters")
		return
	}

	var bounds *spatial.BoundingBox
	if q.NeLat != nil && q.NeLng != nil && q.SwLat != nil && q.SwLng != nil {
		bounds = &spatial.BoundingBox{
			Northeast: spatial.LatLng{Lat: *q.NeLat, Lng: *q.NeLng},
			Southwest: spatial.LatLng{Lat: *q.SwLat, Lng: *q.SwLng},
		}
	}

	results, err := h.service.SearchPlaces(c.Request.Context(), q.Query, bounds)
	if err != nil {
		respondError(c, err, "Search failed")
		return
	}
	response.Success(c, results)
}

// ImportTakeout handles POST /api/v1/completions/takeout-import with a
// multipart "file" field carrying the Takeout Saved Places CSV
func (h *CompletionHandler) ImportTakeout(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing CSV file")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read CSV file")
		return
	}
	defer f.Close()

	summary, err := h.service.ImportTakeout(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "Takeout import failed")
		return
	}
	response.Success(c, summary)
}

// ImportKML handles POST /api/v1/completions/kml-import with a multipart
// "file" field carrying a My Maps KML export
func (h *CompletionHandler) ImportKML(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing KML file")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read KML file")
		return
	}
	defer f.Close()

	results, err := h.service.ImportKML(c.Request.Context(), f)
	if err != nil {
		respondError(c, err, "KML import failed")
		return
	}
	response.Success(c, results)
}

type routeQuery struct {
	FromLat float64 `form:"fromLat" binding:"required"`
	FromLng float64 `form:"fromLng" binding:"required"`
	ToLat   float64 `form:"toLat" binding:"required"`
	ToLng   float64 `form:"toLng" binding:"required"`
}

// GetRoute handles GET /api/v1/completions/route
func (h *CompletionHandler) GetRoute(c *gin.Context) {
	var q routeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid route parameters")
		return
	}

	from := spatial.Point{Lat: q.FromLat, Lng: q.FromLng}
	to := spatial.Point{Lat: q.ToLat, Lng: q.ToLng}

	result, routeID, err := h.service.GetRoute(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Routing failed")
		return
	}
	response.Success(c, gin.H{
		"id":    routeID,
		"route": result,
	})
}
