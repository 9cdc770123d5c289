package config

import (
	"os"
)

// Config holds the runtime configuration, loaded from the environment
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// External lookup providers
	NominatimURL string
	OSRMURL      string

	// Base URL prepended to share tokens in generated links
	ShareBaseURL string

	BackupDir     string
	AttachmentDir string
}

// Load reads the configuration from the environment, with development
// defaults
func Load() *Config {
	return &Config{
		Port:          envOr("PORT", ":8080"),
		DBPath:        envOr("DB_PATH", "./data/planner.db"),
		JWTSecret:     envOr("JWT_SECRET", "your-secret-key-change-in-production"),
		NominatimURL:  envOr("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OSRMURL:       envOr("OSRM_URL", "https://router.project-osrm.org"),
		ShareBaseURL:  envOr("SHARE_BASE_URL", "http://localhost:8080"),
		BackupDir:     envOr("BACKUP_DIR", "./data/backups"),
		AttachmentDir: envOr("ATTACHMENT_DIR", "./data/attachments"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
