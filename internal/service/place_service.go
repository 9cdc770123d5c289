package service

import (
	"github.com/tripfolio/tripfolio-backend-go/internal/dedupe"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// PlaceService handles business logic for places
type PlaceService struct {
	repo     *repository.PlaceRepository
	settings *repository.SettingsRepository
}

// NewPlaceService creates a new place service
func NewPlaceService(repo *repository.PlaceRepository, settings *repository.SettingsRepository) *PlaceService {
	return &PlaceService{repo: repo, settings: settings}
}

// GetPlaces retrieves the user's places with optional filtering
func (s *PlaceService) GetPlaces(user string, filter models.PlaceFilter) ([]models.Place, error) {
	return s.repo.GetPlaces(user, filter)
}

// GetPlaceByID retrieves a place owned by user
func (s *PlaceService) GetPlaceByID(user string, id int64) (*models.Place, error) {
	place, err := s.repo.GetPlaceByID(id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, ErrNotFound
	}
	if place.User != user {
		return nil, ErrForbidden
	}
	return place, nil
}

// CreatePlace creates a new place. Duplicate detection is advisory and
// handled separately through CheckDuplicate; creation never blocks.
func (s *PlaceService) CreatePlace(user string, create models.PlaceCreate) (*models.Place, error) {
	return s.repo.CreatePlace(user, create)
}

// UpdatePlace applies a partial update to a place owned by user
func (s *PlaceService) UpdatePlace(user string, id int64, update models.PlaceUpdate) (*models.Place, error) {
	if _, err := s.GetPlaceByID(user, id); err != nil {
		return nil, err
	}
	return s.repo.UpdatePlace(id, update)
}

// DeletePlace removes a place owned by user; refused while any trip item
// references it
func (s *PlaceService) DeletePlace(user string, id int64) error {
	if _, err := s.GetPlaceByID(user, id); err != nil {
		return err
	}
	return s.repo.DeletePlace(id)
}

// CheckDuplicate reports the first existing place that looks like a
// duplicate of the candidate, or nil. The user's duplicate_dist setting
// tunes the name threshold; 0 disables the check.
func (s *PlaceService) CheckDuplicate(user string, req models.DuplicateCheckRequest) (*models.Place, error) {
	settings, err := s.settings.GetSettings(user)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetPlaces(user, models.PlaceFilter{})
	if err != nil {
		return nil, err
	}

	detector := dedupe.NewDetector(settings.DuplicateDist)
	candidate := models.Place{Name: req.Name, Lat: req.Lat, Lng: req.Lng}
	return detector.FindDuplicate(candidate, existing), nil
}
