package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// AttachmentService stores uploaded trip files on disk and keeps their
// records. Files live under Dir/<trip_id>/<attachment_id>_<filename>.
type AttachmentService struct {
	repo  *repository.AttachmentRepository
	trips *TripService

	Dir string
}

// NewAttachmentService creates a new attachment service writing files
// into dir
func NewAttachmentService(repo *repository.AttachmentRepository, trips *TripService, dir string) *AttachmentService {
	return &AttachmentService{repo: repo, trips: trips, Dir: dir}
}

// Upload stores a file for a trip and records it
func (s *AttachmentService) Upload(user string, tripID int64, filename string, r io.Reader) (*models.TripAttachment, error) {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return nil, err
	}

	attachment, err := s.repo.CreateAttachment(tripID, filename, 0, user)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.Dir, fmt.Sprintf("%d", tripID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment dir: %w", err)
	}

	path := s.filePath(attachment)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write attachment: %w", err)
	}

	if err := s.repo.UpdateAttachmentSize(attachment.ID, size); err != nil {
		return nil, err
	}
	return s.repo.GetAttachmentByID(attachment.ID)
}

// Open returns a reader over the attachment's file; caller closes it
func (s *AttachmentService) Open(user string, tripID, attachmentID int64) (*models.TripAttachment, io.ReadCloser, error) {
	if _, err := s.trips.GetTrip(user, tripID); err != nil {
		return nil, nil, err
	}
	return s.open(tripID, attachmentID)
}

// open looks up and opens an attachment without access checks; the
// caller has already authorized the trip
func (s *AttachmentService) open(tripID, attachmentID int64) (*models.TripAttachment, io.ReadCloser, error) {
	attachment, err := s.repo.GetAttachmentByID(attachmentID)
	if err != nil {
		return nil, nil, err
	}
	if attachment == nil || attachment.TripID != tripID {
		return nil, nil, ErrNotFound
	}
	f, err := os.Open(s.filePath(attachment))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return attachment, f, nil
}

// Delete removes an attachment record and its file
func (s *AttachmentService) Delete(user string, tripID, attachmentID int64) error {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return err
	}
	attachment, err := s.repo.GetAttachmentByID(attachmentID)
	if err != nil {
		return err
	}
	if attachment == nil || attachment.TripID != tripID {
		return ErrNotFound
	}
	if err := os.Remove(s.filePath(attachment)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove attachment file: %w", err)
	}
	return s.repo.DeleteAttachment(attachmentID)
}

// LinkToItem attaches an uploaded file to a trip item
func (s *AttachmentService) LinkToItem(user string, tripID, itemID, attachmentID int64) error {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return err
	}
	attachment, err := s.repo.GetAttachmentByID(attachmentID)
	if err != nil {
		return err
	}
	if attachment == nil || attachment.TripID != tripID {
		return ErrNotFound
	}
	return s.repo.LinkToItem(itemID, attachmentID)
}

// UnlinkFromItem detaches a file from a trip item
func (s *AttachmentService) UnlinkFromItem(user string, tripID, itemID, attachmentID int64) error {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return err
	}
	return s.repo.UnlinkFromItem(itemID, attachmentID)
}

func (s *AttachmentService) filePath(a *models.TripAttachment) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%d", a.TripID), fmt.Sprintf("%d_%s", a.ID, a.Filename))
}
