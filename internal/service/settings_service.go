package service

import (
	"github.com/tripfolio/tripfolio-backend-go/internal/models"
	"github.com/tripfolio/tripfolio-backend-go/internal/repository"
)

// SettingsService handles per-user settings
type SettingsService struct {
	repo *repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetSettings retrieves the user's settings, creating defaults on first
// access
func (s *SettingsService) GetSettings(user string) (*models.Settings, error) {
	return s.repo.GetSettings(user)
}

// UpdateSettings applies a partial update to the user's settings
func (s *SettingsService) UpdateSettings(user string, update models.SettingsUpdate) (*models.Settings, error) {
	return s.repo.UpdateSettings(user, update)
}
