package mocks

import (
	"github.com/vairleon/ai-web-core/domain"
)

// MockFileService implements domain.FileService for testing
type MockFileService struct {
	UploadFunc func(owner *domain.User, data []byte, originalName, mimeType string) (*domain.FileInfo, error)
	GetFunc    func(ownerID uint, filename string) ([]byte, error)
	DeleteFunc func(ownerID uint, filename string) error
}

// NewMockFileService creates a new MockFileService with default behaviors
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

// Upload stores an uploaded file
func (m *MockFileService) Upload(owner *domain.User, data []byte, originalName, mimeType string) (*domain.FileInfo, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(owner, data, originalName, mimeType)
	}
	return &domain.FileInfo{
		Filename:     "stored_" + originalName,
		OriginalName: originalName,
		MimeType:     mimeType,
		Size:         int64(len(data)),
	}, nil
}

// Get reads a stored file
func (m *MockFileService) Get(ownerID uint, filename string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ownerID, filename)
	}
	return nil, domain.NotFound("file %s not found", filename)
}

// Delete removes a stored file
func (m *MockFileService) Delete(ownerID uint, filename string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ownerID, filename)
	}
	return nil
}
