package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// BackupHandler handles backup jobs and export downloads
type BackupHandler struct {
	service *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(service *service.BackupService) *BackupHandler {
	return &BackupHandler{service: service}
}

// GetBackups handles GET /api/v1/backups
func (h *BackupHandler) GetBackups(c *gin.Context) {
	backups, err := h.service.GetBackups(middleware.Username(c))
	if err != nil {
		respondError(c, err, "Failed to get backups")
		return
	}
	response.Success(c, backups)
}

// CreateBackup handles POST /api/v1/backups
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	backup, err := h.service.RequestBackup(middleware.Username(c))
	if err != nil {
		respondError(c, err, "Failed to request backup")
		return
	}
	response.Success(c, backup)
}

// GetBackup handles GET /api/v1/backups/:id
func (h *BackupHandler) GetBackup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	backup, err := h.service.GetBackup(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get backup")
		return
	}
	response.Success(c, backup)
}

// DownloadBackup handles GET /api/v1/backups/:id/download
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	backup, err := h.service.GetBackup(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get backup")
		return
	}
	if backup.Status != models.BackupStatusCompleted || backup.Filename == "" {
		response.Error(c, http.StatusConflict, "Backup is not ready")
		return
	}

	c.FileAttachment(filepath.Join(h.service.Dir, backup.Filename), backup.Filename)
}

// DeleteBackup handles DELETE /api/v1/backups/:id
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBackup(middleware.Username(c), id); err != nil {
		respondError(c, err, "Failed to delete backup")
		return
	}
	response.Success(c, nil)
}
