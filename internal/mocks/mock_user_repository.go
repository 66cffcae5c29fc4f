package mocks

import (
	"context"

	"github.com/vairleon/ai-web-core/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc              func(ctx context.Context, user *domain.User) error
	CreateWithAuthorityFunc func(ctx context.Context, user *domain.User, featureKey string) error
	FindByIDFunc            func(ctx context.Context, id uint) (*domain.User, error)
	FindByEmailFunc         func(ctx context.Context, email string) (*domain.User, error)
	FindByUserNameFunc      func(ctx context.Context, userName string) (*domain.User, error)
	FindByPhoneFunc         func(ctx context.Context, phone string) (*domain.User, error)
	UpdateFunc              func(ctx context.Context, user *domain.User) error
	CountFunc               func(ctx context.Context) (int64, error)
	ListActiveFunc          func(ctx context.Context, limit int) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

// CreateWithAuthority creates a user and its default authority
func (m *MockUserRepository) CreateWithAuthority(ctx context.Context, user *domain.User, featureKey string) error {
	if m.CreateWithAuthorityFunc != nil {
		return m.CreateWithAuthorityFunc(ctx, user, featureKey)
	}
	user.ID = 1
	user.Authorities = []domain.Authority{{FeatureKey: featureKey, OwnerID: user.ID}}
	return nil
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByUserName finds a user by user name
func (m *MockUserRepository) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	if m.FindByUserNameFunc != nil {
		return m.FindByUserNameFunc(ctx, userName)
	}
	// Default behavior: not found
	return nil, nil
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

// Count counts all users
func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	// Default behavior: populated store, no bootstrap
	return 1, nil
}

// ListActive lists active users up to limit
func (m *MockUserRepository) ListActive(ctx context.Context, limit int) ([]*domain.User, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx, limit)
	}
	return nil, nil
}
