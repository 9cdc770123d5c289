package service

import (
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// PackingService handles packing lists and checklists. Trip access checks
// are delegated to the trip service.
type PackingService struct {
	repo  *repository.PackingRepository
	trips *TripService
}

// NewPackingService creates a new packing service
func NewPackingService(repo *repository.PackingRepository, trips *TripService) *PackingService {
	return &PackingService{repo: repo, trips: trips}
}

// GetPackingItems lists a trip's packing list
func (s *PackingService) GetPackingItems(user string, tripID int64) ([]models.PackingItem, error) {
	if _, err := s.trips.GetTrip(user, tripID); err != nil {
		return nil, err
	}
	return s.repo.GetPackingItems(tripID)
}

// CreatePackingItem adds a packing item to a trip
func (s *PackingService) CreatePackingItem(user string, tripID int64, create models.PackingItemCreate) (*models.PackingItem, error) {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return nil, err
	}
	return s.repo.CreatePackingItem(tripID, create)
}

// UpdatePackingItem applies a partial update to a packing item
func (s *PackingService) UpdatePackingItem(user string, tripID, itemID int64, update models.PackingItemUpdate) (*models.PackingItem, error) {
	if err := s.verifyPackingItem(user, tripID, itemID); err != nil {
		return nil, err
	}
	return s.repo.UpdatePackingItem(itemID, update)
}

// DeletePackingItem removes a packing item
func (s *PackingService) DeletePackingItem(user string, tripID, itemID int64) error {
	if err := s.verifyPackingItem(user, tripID, itemID); err != nil {
		return err
	}
	return s.repo.DeletePackingItem(itemID)
}

func (s *PackingService) verifyPackingItem(user string, tripID, itemID int64) error {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return err
	}
	item, err := s.repo.GetPackingItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.TripID != tripID {
		return ErrNotFound
	}
	return nil
}

// GetChecklistItems lists a trip's checklist
func (s *PackingService) GetChecklistItems(user string, tripID int64) ([]models.ChecklistItem, error) {
	if _, err := s.trips.GetTrip(user, tripID); err != nil {
		return nil, err
	}
	return s.repo.GetChecklistItems(tripID)
}

// CreateChecklistItem adds a checklist item to a trip
func (s *PackingService) CreateChecklistItem(user string, tripID int64, create models.ChecklistItemCreate) (*models.ChecklistItem, error) {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return nil, err
	}
	return s.repo.CreateChecklistItem(tripID, create)
}

// UpdateChecklistItem applies a partial update to a checklist item
func (s *PackingService) UpdateChecklistItem(user string, tripID, itemID int64, update models.ChecklistItemUpdate) (*models.ChecklistItem, error) {
	if err := s.verifyChecklistItem(user, tripID, itemID); err != nil {
		return nil, err
	}
	return s.repo.UpdateChecklistItem(itemID, update)
}

// DeleteChecklistItem removes a checklist item
func (s *PackingService) DeleteChecklistItem(user string, tripID, itemID int64) error {
	if err := s.verifyChecklistItem(user, tripID, itemID); err != nil {
		return err
	}
	return s.repo.DeleteChecklistItem(itemID)
}

func (s *PackingService) verifyChecklistItem(user string, tripID, itemID int64) error {
	if _, err := s.trips.writableTrip(user, tripID); err != nil {
		return err
	}
	item, err := s.repo.GetChecklistItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil || item.TripID != tripID {
		return ErrNotFound
	}
	return nil
}
