package service

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// ShareService handles read-only share links and trip membership
type ShareService struct {
	repo        *repository.ShareRepository
	tripRepo    *repository.TripRepository
	packingRepo *repository.PackingRepository
	attachments *AttachmentService

	// BaseURL is prepended to share tokens when building share links
	BaseURL string
}

// NewShareService creates a new share service
func NewShareService(
	repo *repository.ShareRepository,
	tripRepo *repository.TripRepository,
	packingRepo *repository.PackingRepository,
	attachments *AttachmentService,
	baseURL string,
) *ShareService {
	return &ShareService{
		repo:        repo,
		tripRepo:    tripRepo,
		packingRepo: packingRepo,
		attachments: attachments,
		BaseURL:     baseURL,
	}
}

func (s *ShareService) ownedTrip(user string, tripID int64) (*models.Trip, error) {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrNotFound
	}
	if trip.User != user {
		return nil, ErrForbidden
	}
	return trip, nil
}

// ShareTrip creates (or rotates) the trip's read-only share link; owner only
func (s *ShareService) ShareTrip(user string, tripID int64) (*models.SharedTripURL, error) {
	if _, err := s.ownedTrip(user, tripID); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	share, err := s.repo.CreateShare(tripID, token)
	if err != nil {
		return nil, err
	}
	return &models.SharedTripURL{URL: s.shareURL(share.Token)}, nil
}

// GetShareURL returns the trip's share link, or nil when not shared
func (s *ShareService) GetShareURL(user string, tripID int64) (*models.SharedTripURL, error) {
	if _, err := s.ownedTrip(user, tripID); err != nil {
		return nil, err
	}
	share, err := s.repo.GetShare(tripID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, nil
	}
	return &models.SharedTripURL{URL: s.shareURL(share.Token)}, nil
}

// UnshareTrip revokes the trip's share link; owner only
func (s *ShareService) UnshareTrip(user string, tripID int64) error {
	if _, err := s.ownedTrip(user, tripID); err != nil {
		return err
	}
	return s.repo.DeleteShare(tripID)
}

// GetSharedTrip resolves a share token into a read-only trip view.
// Unknown tokens map to ErrNotFound; no authentication is involved.
func (s *ShareService) GetSharedTrip(token string) (*models.Trip, error) {
	share, err := s.repo.GetShareByToken(token)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, ErrNotFound
	}
	trip, err := s.tripRepo.GetTripByID(share.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrNotFound
	}
	return trip, nil
}

// GetSharedPacking lists a shared trip's packing items by token
func (s *ShareService) GetSharedPacking(token string) ([]models.PackingItem, error) {
	trip, err := s.GetSharedTrip(token)
	if err != nil {
		return nil, err
	}
	return s.packingRepo.GetPackingItems(trip.ID)
}

// GetSharedChecklist lists a shared trip's checklist items by token
func (s *ShareService) GetSharedChecklist(token string) ([]models.ChecklistItem, error) {
	trip, err := s.GetSharedTrip(token)
	if err != nil {
		return nil, err
	}
	return s.packingRepo.GetChecklistItems(trip.ID)
}

// OpenSharedAttachment opens an attachment of a shared trip by token
func (s *ShareService) OpenSharedAttachment(token string, attachmentID int64) (*models.TripAttachment, io.ReadCloser, error) {
	trip, err := s.GetSharedTrip(token)
	if err != nil {
		return nil, nil, err
	}
	return s.attachments.open(trip.ID, attachmentID)
}

// InviteMember invites a user to collaborate on a trip; owner only.
// Inviting the owner or an already invited user is refused.
func (s *ShareService) InviteMember(user string, tripID int64, invitee string) error {
	trip, err := s.ownedTrip(user, tripID)
	if err != nil {
		return err
	}
	if invitee == trip.User {
		return fmt.Errorf("cannot invite the trip owner")
	}
	for _, m := range trip.Collaborators {
		if m.User == invitee {
			return fmt.Errorf("user %q is already invited", invitee)
		}
	}
	return s.repo.InviteMember(tripID, invitee, user)
}

// RemoveMember removes a collaborator or pending invitation; the owner can
// remove anyone, a member can remove themselves (leave)
func (s *ShareService) RemoveMember(user string, tripID int64, member string) error {
	trip, err := s.tripRepo.GetTripByID(tripID)
	if err != nil {
		return err
	}
	if trip == nil {
		return ErrNotFound
	}
	if trip.User != user && member != user {
		return ErrForbidden
	}
	return s.repo.RemoveMember(tripID, member)
}

// AcceptInvite joins the user to a trip they were invited to
func (s *ShareService) AcceptInvite(user string, tripID int64) error {
	return s.repo.AcceptInvite(tripID, user)
}

// DeclineInvite drops the user's pending invitation
func (s *ShareService) DeclineInvite(user string, tripID int64) error {
	return s.repo.RemoveMember(tripID, user)
}

// GetInvitations lists trips with a pending invitation for the user
func (s *ShareService) GetInvitations(user string) ([]models.Trip, error) {
	return s.repo.GetInvitations(user)
}

func (s *ShareService) shareURL(token string) string {
	return fmt.Sprintf("%s/shared/%s", s.BaseURL, token)
}
