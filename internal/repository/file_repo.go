package repository

import (
	"fmt"
	"time"

	"goboard/internal/database"
	"goboard/internal/models"
)

// FileRepository handles database operations for uploaded file records
type FileRepository struct {
	db *database.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *database.DB) *FileRepository {
	return &FileRepository{db: db}
}

// CreateFileRecord records an uploaded file against its owner
func (r *FileRepository) CreateFileRecord(userID int64, filename string) (*models.FileRecord, error) {
	query := `
		INSERT INTO files (user_id, filename)
		VALUES (?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return &models.FileRecord{
		ID:        id,
		UserID:    userID,
		Filename:  filename,
		CreatedAt: time.Now(),
	}, nil
}

// ListFilesByUser returns a user's uploaded files, newest first
func (r *FileRepository) ListFilesByUser(userID int64) ([]models.FileRecord, error) {
	query := `
		SELECT id, user_id, filename, created_at
		FROM files
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var files []models.FileRecord
	for rows.Next() {
		var f models.FileRecord
		if err := rows.Scan(&f.ID, &f.UserID, &f.Filename, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file records: %w", err)
	}

	return files, nil
}
