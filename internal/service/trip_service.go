package service

import (
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/itinerary"
	"github.com/tripfolio/tripfolio-backend-go/internal/mapview"
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// TripService handles business logic for trips, their days and items
type TripService struct {
	repo    *repository.TripRepository
	dayRepo *repository.TripDayRepository
}

// NewTripService creates a new trip service
func NewTripService(repo *repository.TripRepository, dayRepo *repository.TripDayRepository) *TripService {
	return &TripService{repo: repo, dayRepo: dayRepo}
}

// GetTrips retrieves trips the user owns or collaborates on
func (s *TripService) GetTrips(user string) ([]models.Trip, error) {
	return s.repo.GetTrips(user)
}

// GetTrip retrieves a fully assembled trip the user can access
func (s *TripService) GetTrip(user string, id int64) (*models.Trip, error) {
	trip, err := s.repo.GetTripByID(id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrNotFound
	}
	if err := s.checkAccess(trip, user); err != nil {
		return nil, err
	}
	return trip, nil
}

// checkAccess verifies the user is the owner or a joined member
func (s *TripService) checkAccess(trip *models.Trip, user string) error {
	if trip.User == user {
		return nil
	}
	for _, m := range trip.Collaborators {
		if m.User == user && m.JoinedAt != "" {
			return nil
		}
	}
	return ErrForbidden
}

// writableTrip retrieves a trip the user can modify; archived trips are
// read-only
func (s *TripService) writableTrip(user string, id int64) (*models.Trip, error) {
	trip, err := s.GetTrip(user, id)
	if err != nil {
		return nil, err
	}
	if trip.Archived {
		return nil, ErrTripArchived
	}
	return trip, nil
}

// CreateTrip creates a new trip owned by user
func (s *TripService) CreateTrip(user string, create models.TripCreate) (*models.Trip, error) {
	return s.repo.CreateTrip(user, create)
}

// UpdateTrip applies a partial update. Archiving and unarchiving are
// always allowed; other changes are refused while the trip is archived.
// A place replacement may not unlink places still referenced by items.
func (s *TripService) UpdateTrip(user string, id int64, update models.TripUpdate) (*models.Trip, error) {
	trip, err := s.GetTrip(user, id)
	if err != nil {
		return nil, err
	}
	if trip.Archived && update.Archived == nil {
		return nil, ErrTripArchived
	}
	if update.PlaceIDs != nil {
		if err := s.verifyUnlinks(id, update.PlaceIDs); err != nil {
			return nil, err
		}
	}
	return s.repo.UpdateTrip(id, update)
}

// verifyUnlinks refuses a place-link replacement that would drop a place
// some trip item still references
func (s *TripService) verifyUnlinks(tripID int64, placeIDs []int64) error {
	used, err := s.repo.GetUsedPlaceIDs(tripID)
	if err != nil {
		return err
	}
	keep := make(map[int64]bool, len(placeIDs))
	for _, id := range placeIDs {
		keep[id] = true
	}
	for id := range used {
		if !keep[id] {
			return repository.ErrPlaceInUse
		}
	}
	return nil
}

// DeleteTrip removes a trip; owner only
func (s *TripService) DeleteTrip(user string, id int64) error {
	trip, err := s.GetTrip(user, id)
	if err != nil {
		return err
	}
	if trip.User != user {
		return ErrForbidden
	}
	return s.repo.DeleteTrip(id)
}

// CreateDay adds a day to a trip. Labels are unique within the trip.
func (s *TripService) CreateDay(user string, tripID int64, create models.DayCreate) (*models.TripDay, error) {
	if _, err := s.writableTrip(user, tripID); err != nil {
		return nil, err
	}
	return s.dayRepo.CreateDay(tripID, create)
}

// UpdateDay applies a partial update to a day of the trip
func (s *TripService) UpdateDay(user string, tripID, dayID int64, update models.DayUpdate) (*models.TripDay, error) {
	if err := s.verifyDay(user, tripID, dayID); err != nil {
		return nil, err
	}
	return s.dayRepo.UpdateDay(dayID, update)
}

// DeleteDay removes a day and its items
func (s *TripService) DeleteDay(user string, tripID, dayID int64) error {
	if err := s.verifyDay(user, tripID, dayID); err != nil {
		return err
	}
	return s.dayRepo.DeleteDay(dayID)
}

func (s *TripService) verifyDay(user string, tripID, dayID int64) error {
	if _, err := s.writableTrip(user, tripID); err != nil {
		return err
	}
	day, err := s.dayRepo.GetDayByID(dayID)
	if err != nil {
		return err
	}
	if day == nil || day.TripID != tripID {
		return ErrNotFound
	}
	return nil
}

// CreateItem adds an item to a day. A linked place must already be linked
// to the trip; a payer must be the owner or a joined member.
func (s *TripService) CreateItem(user string, tripID, dayID int64, create models.ItemCreate) (*models.TripItem, error) {
	trip, err := s.writableTrip(user, tripID)
	if err != nil {
		return nil, err
	}
	day, err := s.dayRepo.GetDayByID(dayID)
	if err != nil {
		return nil, err
	}
	if day == nil || day.TripID != tripID {
		return nil, ErrNotFound
	}

	if create.PlaceID != nil {
		if err := s.verifyPlaceLink(trip, *create.PlaceID); err != nil {
			return nil, err
		}
	}
	if create.PaidBy != "" {
		if err := s.verifyPayer(tripID, create.PaidBy); err != nil {
			return nil, err
		}
	}

	return s.dayRepo.CreateItem(dayID, create)
}

// UpdateItem applies a partial update to an item of the trip
func (s *TripService) UpdateItem(user string, tripID, itemID int64, update models.ItemUpdate) (*models.TripItem, error) {
	trip, err := s.writableTrip(user, tripID)
	if err != nil {
		return nil, err
	}
	if err := s.verifyItem(trip, itemID); err != nil {
		return nil, err
	}

	if update.PlaceID != nil && *update.PlaceID != 0 {
		if err := s.verifyPlaceLink(trip, *update.PlaceID); err != nil {
			return nil, err
		}
	}
	if update.PaidBy != nil && *update.PaidBy != "" {
		if err := s.verifyPayer(tripID, *update.PaidBy); err != nil {
			return nil, err
		}
	}

	return s.dayRepo.UpdateItem(itemID, update)
}

// DeleteItem removes an item
func (s *TripService) DeleteItem(user string, tripID, itemID int64) error {
	trip, err := s.writableTrip(user, tripID)
	if err != nil {
		return err
	}
	if err := s.verifyItem(trip, itemID); err != nil {
		return err
	}
	return s.dayRepo.DeleteItem(itemID)
}

func (s *TripService) verifyItem(trip *models.Trip, itemID int64) error {
	item, err := s.dayRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	day, err := s.dayRepo.GetDayByID(item.DayID)
	if err != nil {
		return err
	}
	if day == nil || day.TripID != trip.ID {
		return ErrNotFound
	}
	return nil
}

func (s *TripService) verifyPlaceLink(trip *models.Trip, placeID int64) error {
	linked, err := s.repo.PlaceLinkedToTrip(trip.ID, placeID)
	if err != nil {
		return err
	}
	if !linked {
		return fmt.Errorf("place %d is not linked to trip %d", placeID, trip.ID)
	}
	return nil
}

func (s *TripService) verifyPayer(tripID int64, payer string) error {
	users, err := s.repo.TripUsernames(tripID)
	if err != nil {
		return err
	}
	if !users[payer] {
		return fmt.Errorf("payer %q is not a member of the trip", payer)
	}
	return nil
}

// GetViewModel derives the per-day display model for a trip, filtered by
// an optional free-text query
func (s *TripService) GetViewModel(user string, tripID int64, query string) ([]itinerary.DayViewModel, error) {
	trip, err := s.GetTrip(user, tripID)
	if err != nil {
		return nil, err
	}
	return itinerary.BuildViewModel(trip, query), nil
}

// GetHighlight derives the map overlay for one day of the trip, or for
// every day when dayID is mapview.AllDays. nil means nothing to show.
func (s *TripService) GetHighlight(user string, tripID, dayID int64) (*mapview.HighlightData, error) {
	trip, err := s.GetTrip(user, tripID)
	if err != nil {
		return nil, err
	}
	return mapview.HighlightLayer(trip, dayID), nil
}

// GetBalances sums item prices per payer across the trip
func (s *TripService) GetBalances(user string, tripID int64) ([]models.MemberBalance, error) {
	if _, err := s.GetTrip(user, tripID); err != nil {
		return nil, err
	}
	return s.repo.GetMemberBalances(tripID)
}

// GetUnplannedPlaces lists the trip's linked places not yet referenced by
// any item
func (s *TripService) GetUnplannedPlaces(user string, tripID int64) ([]models.Place, error) {
	trip, err := s.GetTrip(user, tripID)
	if err != nil {
		return nil, err
	}
	return itinerary.UnplannedPlaces(trip), nil
}

// GetTotalPrice sums item prices across the whole trip
func (s *TripService) GetTotalPrice(user string, tripID int64) (float64, error) {
	trip, err := s.GetTrip(user, tripID)
	if err != nil {
		return 0, err
	}
	return itinerary.TotalPrice(trip), nil
}
