package mocks

import (
	"context"

	"github.com/vairleon/ai-web-core/domain"
)

// MockAuthorityRepository implements domain.AuthorityRepository for testing
type MockAuthorityRepository struct {
	CreateFunc      func(ctx context.Context, authority *domain.Authority) error
	ListByOwnerFunc func(ctx context.Context, ownerID uint) ([]domain.Authority, error)
}

// NewMockAuthorityRepository creates a new MockAuthorityRepository with default behaviors
func NewMockAuthorityRepository() *MockAuthorityRepository {
	return &MockAuthorityRepository{}
}

// Create creates a new authority
func (m *MockAuthorityRepository) Create(ctx context.Context, authority *domain.Authority) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, authority)
	}
	authority.ID = 1
	return nil
}

// ListByOwner lists the authorities granted to a user
func (m *MockAuthorityRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Authority, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return nil, nil
}
