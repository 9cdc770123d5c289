package models

import "time"

// Backup represents a user-requested export of all owned data
type Backup struct {
	ID           int64      `json:"id" db:"id"`
	User         string     `json:"user" db:"user"`
	Status       string     `json:"status" db:"status"`
	Filename     string     `json:"filename,omitempty" db:"filename"`
	FileSize     int64      `json:"file_size,omitempty" db:"file_size"`
	ErrorMessage string     `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// Backup status constants
const (
	BackupStatusPending    = "pending"
	BackupStatusProcessing = "processing"
	BackupStatusCompleted  = "completed"
	BackupStatusFailed     = "failed"
)
