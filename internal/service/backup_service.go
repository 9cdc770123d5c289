package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// backupPollInterval is how often the worker looks for pending jobs
const backupPollInterval = 5 * time.Second

// BackupService queues and processes full exports of a user's data. Jobs
// are processed one at a time by a background worker; the HTTP surface
// only enqueues and polls.
type BackupService struct {
	repo      *repository.BackupRepository
	placeRepo *repository.PlaceRepository
	tripRepo  *repository.TripRepository
	settings  *repository.SettingsRepository

	// Dir is where export files are written
	Dir string
}

// NewBackupService creates a new backup service writing exports into dir
func NewBackupService(
	repo *repository.BackupRepository,
	placeRepo *repository.PlaceRepository,
	tripRepo *repository.TripRepository,
	settings *repository.SettingsRepository,
	dir string,
) *BackupService {
	return &BackupService{
		repo:      repo,
		placeRepo: placeRepo,
		tripRepo:  tripRepo,
		settings:  settings,
		Dir:       dir,
	}
}

// GetBackups lists the user's backups, newest first
func (s *BackupService) GetBackups(user string) ([]models.Backup, error) {
	return s.repo.GetBackups(user)
}

// GetBackup retrieves one of the user's backups
func (s *BackupService) GetBackup(user string, id int64) (*models.Backup, error) {
	backup, err := s.repo.GetBackupByID(id)
	if err != nil {
		return nil, err
	}
	if backup == nil {
		return nil, ErrNotFound
	}
	if backup.User != user {
		return nil, ErrForbidden
	}
	return backup, nil
}

// RequestBackup enqueues a backup job. Refused while the user already has
// one queued or running.
func (s *BackupService) RequestBackup(user string) (*models.Backup, error) {
	pending, err := s.repo.HasPending(user)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, fmt.Errorf("a backup is already in progress")
	}
	return s.repo.CreateBackup(user)
}

// DeleteBackup removes a backup record and its export file
func (s *BackupService) DeleteBackup(user string, id int64) error {
	backup, err := s.GetBackup(user, id)
	if err != nil {
		return err
	}
	if backup.Filename != "" {
		if err := os.Remove(filepath.Join(s.Dir, backup.Filename)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove backup file: %w", err)
		}
	}
	return s.repo.DeleteBackup(id)
}

// Start runs the backup worker until ctx is canceled
func (s *BackupService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(backupPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.processPending()
			}
		}
	}()
}

func (s *BackupService) processPending() {
	for {
		backup, err := s.repo.ClaimPending()
		if err != nil {
			log.Printf("Backup worker: failed to claim job: %v", err)
			return
		}
		if backup == nil {
			return
		}

		if err := s.process(backup); err != nil {
			log.Printf("Backup %d failed: %v", backup.ID, err)
			if markErr := s.repo.MarkFailed(backup.ID, err.Error()); markErr != nil {
				log.Printf("Backup %d: failed to record failure: %v", backup.ID, markErr)
			}
		}
	}
}

// backupExport is the on-disk export format
type backupExport struct {
	User      string           `json:"user"`
	CreatedAt time.Time        `json:"created_at"`
	Settings  *models.Settings `json:"settings"`
	Places    []models.Place   `json:"places"`
	Trips     []models.Trip    `json:"trips"`
}

func (s *BackupService) process(backup *models.Backup) error {
	trips, err := s.tripRepo.GetTrips(backup.User)
	if err != nil {
		return err
	}
	export, err := s.buildExport(backup.User, trips)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}

	filename := fmt.Sprintf("backup_%s_%d.json", backup.User, backup.ID)
	path := filepath.Join(s.Dir, filename)

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return s.repo.MarkCompleted(backup.ID, filename, int64(len(data)))
}

// buildExport assembles the export payload from a trips listing. Trips
// deleted between the listing and the per-trip fetch are skipped.
func (s *BackupService) buildExport(user string, trips []models.Trip) (*backupExport, error) {
	export := &backupExport{
		User:      user,
		CreatedAt: time.Now().UTC(),
	}

	settings, err := s.settings.GetSettings(user)
	if err != nil {
		return nil, err
	}
	export.Settings = settings

	places, err := s.placeRepo.GetPlaces(user, models.PlaceFilter{})
	if err != nil {
		return nil, err
	}
	export.Places = places

	for _, t := range trips {
		full, err := s.tripRepo.GetTripByID(t.ID)
		if err != nil {
			return nil, err
		}
		if full == nil {
			continue
		}
		export.Trips = append(export.Trips, *full)
	}

	return export, nil
}
