package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// parseID parses a numeric path parameter
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+param)
		return 0, false
	}
	return id, true
}

// parseQueryID parses a numeric query parameter value
func parseQueryID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// respondError maps service and repository errors to HTTP responses
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrTripArchived):
		response.Error(c, http.StatusConflict, "Trip is archived")
	case errors.Is(err, repository.ErrCategoryInUse),
		errors.Is(err, repository.ErrPlaceInUse),
		errors.Is(err, repository.ErrDuplicateDayLabel):
		response.Error(c, http.StatusConflict, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
