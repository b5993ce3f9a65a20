package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"goboard/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Users      []UserBackup    `json:"users"`
	Posts      []PostBackup    `json:"posts"`
	Comments   []CommentBackup `json:"comments"`
	Files      []FileBackup    `json:"files"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostBackup represents a post record for backup
type PostBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentBackup represents a comment record for backup
type CommentBackup struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FileBackup represents an uploaded file record for backup
type FileBackup struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations.
// Sessions are deliberately not exported: they are short-lived state.
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a complete backup of the forum tables to a JSON file
func (s *BackupService) Export(outputPath string) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportPosts(backup); err != nil {
		return fmt.Errorf("failed to export posts: %w", err)
	}
	if err := s.exportComments(backup); err != nil {
		return fmt.Errorf("failed to export comments: %w", err)
	}
	if err := s.exportFiles(backup); err != nil {
		return fmt.Errorf("failed to export files: %w", err)
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	return nil
}

// Import restores forum tables from a JSON backup file. Rows are inserted
// with their original IDs in dependency order so foreign keys line up.
func (s *BackupService) Import(inputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	for _, u := range backup.Users {
		query := `
			INSERT INTO users (id, username, password_hash, created_at)
			VALUES (?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, u.ID, u.Username, u.PasswordHash, u.CreatedAt); err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}

	for _, p := range backup.Posts {
		query := `
			INSERT INTO posts (id, user_id, title, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, p.ID, p.UserID, p.Title, p.Content, p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import post %d: %w", p.ID, err)
		}
	}

	for _, c := range backup.Comments {
		query := `
			INSERT INTO comments (id, post_id, user_id, content, created_at)
			VALUES (?, ?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, c.ID, c.PostID, c.UserID, c.Content, c.CreatedAt); err != nil {
			return fmt.Errorf("failed to import comment %d: %w", c.ID, err)
		}
	}

	for _, f := range backup.Files {
		query := `
			INSERT INTO files (id, user_id, filename, created_at)
			VALUES (?, ?, ?, ?)
		`
		if _, err := s.db.Exec(query, f.ID, f.UserID, f.Filename, f.CreatedAt); err != nil {
			return fmt.Errorf("failed to import file record %d: %w", f.ID, err)
		}
	}

	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, username, password_hash, created_at FROM users ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportPosts(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, title, content, created_at, updated_at FROM posts ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p PostBackup
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		backup.Posts = append(backup.Posts, p)
	}
	return rows.Err()
}

func (s *BackupService) exportComments(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, post_id, user_id, content, created_at FROM comments ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c CommentBackup
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return err
		}
		backup.Comments = append(backup.Comments, c)
	}
	return rows.Err()
}

func (s *BackupService) exportFiles(backup *BackupData) error {
	rows, err := s.db.Query("SELECT id, user_id, filename, created_at FROM files ORDER BY id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FileBackup
		if err := rows.Scan(&f.ID, &f.UserID, &f.Filename, &f.CreatedAt); err != nil {
			return err
		}
		backup.Files = append(backup.Files, f)
	}
	return rows.Err()
}
