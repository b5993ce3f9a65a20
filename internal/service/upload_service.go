package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"goboard/internal/models"
	"goboard/internal/repository"
	"goboard/internal/validation"
)

var (
	ErrNoFile         = errors.New("no file attached")
	ErrTypeNotAllowed = errors.New("file type not allowed")
)

// UploadService stores uploaded files on disk and records them per user
type UploadService struct {
	fileRepo  *repository.FileRepository
	uploadDir string
}

// NewUploadService creates a new upload service writing into uploadDir
func NewUploadService(fileRepo *repository.FileRepository, uploadDir string) *UploadService {
	return &UploadService{
		fileRepo:  fileRepo,
		uploadDir: uploadDir,
	}
}

// Save validates the filename, sanitizes it and writes the content to the
// upload directory, then records the file against its owner. Writes are
// single-shot: any I/O error fails the whole request.
func (s *UploadService) Save(userID int64, filename string, content io.Reader) (*models.FileRecord, error) {
	if filename == "" {
		return nil, ErrNoFile
	}
	if !validation.AllowedFileExtension(filename) {
		return nil, ErrTypeNotAllowed
	}

	safe := validation.SecureFilename(filename)
	if safe == "" || !validation.AllowedFileExtension(safe) {
		return nil, ErrTypeNotAllowed
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.uploadDir, safe))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	record, err := s.fileRepo.CreateFileRecord(userID, safe)
	if err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	return record, nil
}
