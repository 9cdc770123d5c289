package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// BackupRepository handles backup job bookkeeping
type BackupRepository struct {
	db *sql.DB
}

// NewBackupRepository creates a new backup repository
func NewBackupRepository(db *sql.DB) *BackupRepository {
	return &BackupRepository{db: db}
}

// GetBackups lists a user's backups, newest first
func (r *BackupRepository) GetBackups(user string) ([]models.Backup, error) {
	rows, err := r.db.Query(`SELECT id, user, status, filename, file_size, error_message,
		created_at, completed_at
		FROM backups WHERE user = ? ORDER BY created_at DESC`, user)
	if err != nil {
		return nil, fmt.Errorf("failed to query backups: %w", err)
	}
	defer rows.Close()

	backups := []models.Backup{}
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backup: %w", err)
		}
		backups = append(backups, *b)
	}
	return backups, rows.Err()
}

// GetBackupByID retrieves a single backup
func (r *BackupRepository) GetBackupByID(id int64) (*models.Backup, error) {
	row := r.db.QueryRow(`SELECT id, user, status, filename, file_size, error_message,
		created_at, completed_at
		FROM backups WHERE id = ?`, id)
	b, err := scanBackup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query backup: %w", err)
	}
	return b, nil
}

func scanBackup(scanner interface{ Scan(...interface{}) error }) (*models.Backup, error) {
	var b models.Backup
	var completedAt sql.NullTime
	err := scanner.Scan(&b.ID, &b.User, &b.Status, &b.Filename, &b.FileSize,
		&b.ErrorMessage, &b.CreatedAt, &completedAt)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		b.CompletedAt = &completedAt.Time
	}
	return &b, nil
}

// CreateBackup inserts a pending backup job
func (r *BackupRepository) CreateBackup(user string) (*models.Backup, error) {
	res, err := r.db.Exec(`INSERT INTO backups (user, status) VALUES (?, ?)`,
		user, models.BackupStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to insert backup: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get backup id: %w", err)
	}
	return r.GetBackupByID(id)
}

// ClaimPending atomically moves one pending backup to processing and
// returns it, or nil when none is waiting
func (r *BackupRepository) ClaimPending() (*models.Backup, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM backups WHERE status = ? ORDER BY created_at LIMIT 1`,
		models.BackupStatusPending).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pending backup: %w", err)
	}

	res, err := r.db.Exec(`UPDATE backups SET status = ? WHERE id = ? AND status = ?`,
		models.BackupStatusProcessing, id, models.BackupStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to claim backup: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check backup claim: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetBackupByID(id)
}

// MarkCompleted records a successful backup
func (r *BackupRepository) MarkCompleted(id int64, filename string, fileSize int64) error {
	_, err := r.db.Exec(`UPDATE backups SET status = ?, filename = ?, file_size = ?, completed_at = ?
		WHERE id = ?`,
		models.BackupStatusCompleted, filename, fileSize, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to complete backup: %w", err)
	}
	return nil
}

// MarkFailed records a failed backup with its error message
func (r *BackupRepository) MarkFailed(id int64, message string) error {
	_, err := r.db.Exec(`UPDATE backups SET status = ?, error_message = ?, completed_at = ?
		WHERE id = ?`,
		models.BackupStatusFailed, message, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark backup failed: %w", err)
	}
	return nil
}

// DeleteBackup removes a backup record
func (r *BackupRepository) DeleteBackup(id int64) error {
	_, err := r.db.Exec(`DELETE FROM backups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	return nil
}

// HasPending reports whether the user already has a queued or running backup
func (r *BackupRepository) HasPending(user string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM backups WHERE user = ? AND status IN (?, ?)`,
		user, models.BackupStatusPending, models.BackupStatusProcessing).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count pending backups: %w", err)
	}
	return count > 0, nil
}
