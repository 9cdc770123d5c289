package repository

import (
	"database/sql"
	"fmt"

	"github.com/tripfolio/tripfolio-backend-go/internal/models"
)

// AttachmentRepository handles trip and item attachment records
type AttachmentRepository struct {
	db *sql.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *sql.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// GetAttachmentByID retrieves a single attachment record
func (r *AttachmentRepository) GetAttachmentByID(id int64) (*models.TripAttachment, error) {
	var a models.TripAttachment
	err := r.db.QueryRow(`SELECT id, trip_id, filename, file_size, uploaded_by
		FROM trip_attachments WHERE id = ?`, id).
		Scan(&a.ID, &a.TripID, &a.Filename, &a.FileSize, &a.UploadedBy)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query attachment: %w", err)
	}
	return &a, nil
}

// CreateAttachment records an uploaded file for a trip
func (r *AttachmentRepository) CreateAttachment(tripID int64, filename string, fileSize int64, uploadedBy string) (*models.TripAttachment, error) {
	res, err := r.db.Exec(`INSERT INTO trip_attachments (trip_id, filename, file_size, uploaded_by)
		VALUES (?, ?, ?, ?)`, tripID, filename, fileSize, uploadedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to insert attachment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment id: %w", err)
	}
	return r.GetAttachmentByID(id)
}

// UpdateAttachmentSize records the stored file size once the upload has
// been written out
func (r *AttachmentRepository) UpdateAttachmentSize(id, fileSize int64) error {
	_, err := r.db.Exec(`UPDATE trip_attachments SET file_size = ? WHERE id = ?`, fileSize, id)
	if err != nil {
		return fmt.Errorf("failed to update attachment size: %w", err)
	}
	return nil
}

// DeleteAttachment removes an attachment record and its item links
func (r *AttachmentRepository) DeleteAttachment(id int64) error {
	_, err := r.db.Exec(`DELETE FROM trip_attachments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// LinkToItem attaches an existing attachment to a trip item
func (r *AttachmentRepository) LinkToItem(itemID, attachmentID int64) error {
	_, err := r.db.Exec(`INSERT OR IGNORE INTO trip_item_attachments (item_id, attachment_id)
		VALUES (?, ?)`, itemID, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to link attachment: %w", err)
	}
	return nil
}

// UnlinkFromItem detaches an attachment from a trip item
func (r *AttachmentRepository) UnlinkFromItem(itemID, attachmentID int64) error {
	_, err := r.db.Exec(`DELETE FROM trip_item_attachments WHERE item_id = ? AND attachment_id = ?`,
		itemID, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to unlink attachment: %w", err)
	}
	return nil
}

// GetItemAttachments lists attachments linked to a trip item
func (r *AttachmentRepository) GetItemAttachments(itemID int64) ([]models.TripAttachment, error) {
	rows, err := r.db.Query(`SELECT a.id, a.trip_id, a.filename, a.file_size, a.uploaded_by
		FROM trip_item_attachments ia
		JOIN trip_attachments a ON a.id = ia.attachment_id
		WHERE ia.item_id = ? ORDER BY a.id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query item attachments: %w", err)
	}
	defer rows.Close()

	attachments := []models.TripAttachment{}
	for rows.Next() {
		var a models.TripAttachment
		if err := rows.Scan(&a.ID, &a.TripID, &a.Filename, &a.FileSize, &a.UploadedBy); err != nil {
			return nil, fmt.Errorf("failed to scan item attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}
