package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// AttachmentHandler handles trip file attachments
type AttachmentHandler struct {
	service *service.AttachmentService
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(service *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// Upload handles POST /api/v1/trips/:id/attachments with a multipart
// "file" field
func (h *AttachmentHandler) Upload(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing file")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read file")
		return
	}
	defer f.Close()

	attachment, err := h.service.Upload(middleware.Username(c), id, file.Filename, f)
	if err != nil {
		respondError(c, err, "Failed to upload attachment")
		return
	}
	response.Success(c, attachment)
}

// Download handles GET /api/v1/trips/:id/attachments/:attachmentId
func (h *AttachmentHandler) Download(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := parseID(c, "attachmentId")
	if !ok {
		return
	}

	attachment, reader, err := h.service.Open(middleware.Username(c), id, attachmentID)
	if err != nil {
		respondError(c, err, "Failed to open attachment")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.Filename+`"`)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

// Delete handles DELETE /api/v1/trips/:id/attachments/:attachmentId
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	attachmentID, ok := parseID(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.service.Delete(middleware.Username(c), id, attachmentID); err != nil {
		respondError(c, err, "Failed to delete attachment")
		return
	}
	response.Success(c, nil)
}

// LinkToItem handles POST /api/v1/trips/:id/items/:itemId/attachments/:attachmentId
func (h *AttachmentHandler) LinkToItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	attachmentID, ok := parseID(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.service.LinkToItem(middleware.Username(c), id, itemID, attachmentID); err != nil {
		respondError(c, err, "Failed to link attachment")
		return
	}
	response.Success(c, nil)
}

// UnlinkFromItem handles DELETE /api/v1/trips/:id/items/:itemId/attachments/:attachmentId
func (h *AttachmentHandler) UnlinkFromItem(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	attachmentID, ok := parseID(c, "attachmentId")
	if !ok {
		return
	}

	if err := h.service.UnlinkFromItem(middleware.Username(c), id, itemID, attachmentID); err != nil {
		respondError(c, err, "Failed to unlink attachment")
		return
	}
	response.Success(c, nil)
}
