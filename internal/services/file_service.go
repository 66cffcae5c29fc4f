package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vairleon/ai-web-core/domain"
)

var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// FileService implements domain.FileService. Uploads land under an
// owner-scoped directory; filenames combine a millisecond timestamp with
// random bytes so concurrent writes cannot collide.
type FileService struct {
	uploadDir string
	baseURL   string
	logger    *zap.Logger
}

// NewFileService creates the file service and ensures the upload directory
// exists.
func NewFileService(uploadDir, baseURL string, logger *zap.Logger) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	logger.Debug("file upload directory initialized", zap.String("dir", uploadDir))
	return &FileService{uploadDir: uploadDir, baseURL: baseURL, logger: logger}, nil
}

// Upload implements domain.FileService
func (s *FileService) Upload(owner *domain.User, data []byte, originalName, mimeType string) (*domain.FileInfo, error) {
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return nil, domain.InvalidInput("invalid file type, only JPEG and PNG are allowed")
	}
	if int64(len(data)) > domain.MaxUploadBytes {
		return nil, domain.InvalidInput("file size exceeds the 20MB limit")
	}

	ownerDir := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(owner.ID), 10))
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create owner directory: %w", err)
	}

	randomBytes := make([]byte, 16)
	if _, err := rand.Read(randomBytes); err != nil {
		return nil, fmt.Errorf("failed to generate filename: %w", err)
	}
	ext := filepath.Ext(originalName)
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), hex.EncodeToString(randomBytes), ext)

	if err := os.WriteFile(filepath.Join(ownerDir, filename), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("file uploaded",
		zap.Uint("owner", owner.ID),
		zap.String("filename", filename),
		zap.Int("size", len(data)))

	return &domain.FileInfo{
		Filename:     filename,
		URL:          fmt.Sprintf("%s/uploads/%d/%s", s.baseURL, owner.ID, filename),
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
	}, nil
}

// Get implements domain.FileService
func (s *FileService) Get(ownerID uint, filename string) ([]byte, error) {
	path := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(ownerID), 10), filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NotFound("file %s not found", filename)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete implements domain.FileService
func (s *FileService) Delete(ownerID uint, filename string) error {
	path := filepath.Join(s.uploadDir, strconv.FormatUint(uint64(ownerID), 10), filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return domain.NotFound("file %s not found", filename)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// UploadRoot returns the directory uploads are served from.
func (s *FileService) UploadRoot() string {
	return s.uploadDir
}
