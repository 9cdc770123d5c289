package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripfolio/tripfolio-backend-go/internal/middleware"
	"github.com/tripfolio/tripfolio-backend-go/internal/service"
	"github.com/tripfolio/tripfolio-backend-go/pkg/response"
)

// ShareHandler handles share links, collaborators and the public shared
// trip view
type ShareHandler struct {
	service *service.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(service *service.ShareService) *ShareHandler {
	return &ShareHandler{service: service}
}

// ShareTrip handles POST /api/v1/trips/:id/share
func (h *ShareHandler) ShareTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	url, err := h.service.ShareTrip(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to share trip")
		return
	}
	response.Success(c, url)
}

// GetShareURL handles GET /api/v1/trips/:id/share
func (h *ShareHandler) GetShareURL(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	url, err := h.service.GetShareURL(middleware.Username(c), id)
	if err != nil {
		respondError(c, err, "Failed to get share link")
		return
	}
	response.Success(c, url)
}

// UnshareTrip handles DELETE /api/v1/trips/:id/share
func (h *ShareHandler) UnshareTrip(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.UnshareTrip(middleware.Username(c), id); err != nil {
		respondError(c, err, "Failed to unshare trip")
		return
	}
	response.Success(c, nil)
}

// GetSharedTrip handles GET /shared/:token — public, no authentication
func (h *ShareHandler) GetSharedTrip(c *gin.Context) {
	trip, err := h.service.GetSharedTrip(c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to get shared trip")
		return
	}
	response.Success(c, trip)
}

// GetSharedPacking handles GET /shared/:token/packing — public
func (h *ShareHandler) GetSharedPacking(c *gin.Context) {
	items, err := h.service.GetSharedPacking(c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to get shared packing list")
		return
	}
	response.Success(c, items)
}

// GetSharedChecklist handles GET /shared/:token/checklist — public
func (h *ShareHandler) GetSharedChecklist(c *gin.Context) {
	items, err := h.service.GetSharedChecklist(c.Param("token"))
	if err != nil {
		respondError(c, err, "Failed to get shared checklist")
		return
	}
	response.Success(c, items)
}

// DownloadSharedAttachment handles GET /shared/:token/attachments/:attachmentId — public
func (h *ShareHandler) DownloadSharedAttachment(c *gin.Context) {
	attachmentID, ok := parseID(c, "attachmentId")
	if !ok {
		return
	}

	attachment, reader, err := h.service.OpenSharedAttachment(c.Param("token"), attachmentID)
	if err != nil {
		respondError(c, err, "Failed to open attachment")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.Filename+`"`)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

type memberRequest struct {
	User string `json:"user" binding:"required"`
}

// InviteMember handles POST /api/v1/trips/:id/members
func (h *ShareHandler) InviteMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid member payload")
		return
	}

	if err := h.service.InviteMember(middleware.Username(c), id, req.User); err != nil {
		respondError(c, err, "Failed to invite member")
		return
	}
	response.Success(c, nil)
}

// RemoveMember handles DELETE /api/v1/trips/:id/members/:user
func (h *ShareHandler) RemoveMember(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RemoveMember(middleware.Username(c), id, c.Param("user")); err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}
	response.Success(c, nil)
}

// GetInvitations handles GET /api/v1/invitations
func (h *ShareHandler) GetInvitations(c *gin.Context) {
	trips, err := h.service.GetInvitations(middleware.Username(c))
	if err != nil {
		respondError(c, err, "Failed to get invitations")
		return
	}
	response.Success(c, trips)
}

// AcceptInvite handles POST /api/v1/invitations/:id/accept
func (h *ShareHandler) AcceptInvite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.AcceptInvite(middleware.Username(c), id); err != nil {
		respondError(c, err, "Failed to accept invitation")
		return
	}
	response.Success(c, nil)
}

// DeclineInvite handles POST /api/v1/invitations/:id/decline
func (h *ShareHandler) DeclineInvite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeclineInvite(middleware.Username(c), id); err != nil {
		respondError(c, err, "Failed to decline invitation")
		return
	}
	response.Success(c, nil)
}
