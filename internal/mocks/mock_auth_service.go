package mocks

import (
	"context"

	"github.com/vairleon/ai-web-core/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc        func(ctx context.Context, params domain.RegisterParams, sourceAddr string) (*domain.User, error)
	LoginFunc           func(ctx context.Context, params domain.LoginParams) (string, error)
	IssueTokenFunc      func(user *domain.User) (string, error)
	GetByIDFunc         func(ctx context.Context, id uint) (*domain.User, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*domain.User, error)
	GetByUserNameFunc   func(ctx context.Context, userName string) (*domain.User, error)
	GetByPhoneFunc      func(ctx context.Context, phone string) (*domain.User, error)
	UpdateUserRoleFunc  func(ctx context.Context, id uint, role domain.Role) (*domain.User, error)
	UpdateLastNameFunc  func(ctx context.Context, id uint, lastName string) (*domain.User, error)
	UpdateExtraInfoFunc func(ctx context.Context, id uint, patch domain.ExtraInfo) (*domain.User, error)
	GrantAuthorityFunc  func(ctx context.Context, id uint, featureKey string) (*domain.User, error)
	GetAllUsersFunc     func(ctx context.Context) ([]*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a user
func (m *MockAuthService) Register(ctx context.Context, params domain.RegisterParams, sourceAddr string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, params, sourceAddr)
	}
	return &domain.User{ID: 1, Email: params.Email, UserName: params.UserName, Role: domain.RoleNormal}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, params domain.LoginParams) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, params)
	}
	return "", domain.ErrUnauthorized
}

// IssueToken issues a token for the user
func (m *MockAuthService) IssueToken(user *domain.User) (string, error) {
	if m.IssueTokenFunc != nil {
		return m.IssueTokenFunc(user)
	}
	return "token_" + user.UserName, nil
}

// GetByID looks up a user by id
func (m *MockAuthService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// GetByEmail looks up a user by email
func (m *MockAuthService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

// GetByUserName looks up a user by user name
func (m *MockAuthService) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	if m.GetByUserNameFunc != nil {
		return m.GetByUserNameFunc(ctx, userName)
	}
	return nil, nil
}

// GetByPhone looks up a user by phone
func (m *MockAuthService) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phone)
	}
	return nil, nil
}

// UpdateUserRole updates a user's role
func (m *MockAuthService) UpdateUserRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error) {
	if m.UpdateUserRoleFunc != nil {
		return m.UpdateUserRoleFunc(ctx, id, role)
	}
	return &domain.User{ID: id, Role: role}, nil
}

// UpdateLastName updates a user's last name
func (m *MockAuthService) UpdateLastName(ctx context.Context, id uint, lastName string) (*domain.User, error) {
	if m.UpdateLastNameFunc != nil {
		return m.UpdateLastNameFunc(ctx, id, lastName)
	}
	return &domain.User{ID: id, LastName: lastName}, nil
}

// UpdateExtraInfo merges the patch into a user's extra info
func (m *MockAuthService) UpdateExtraInfo(ctx context.Context, id uint, patch domain.ExtraInfo) (*domain.User, error) {
	if m.UpdateExtraInfoFunc != nil {
		return m.UpdateExtraInfoFunc(ctx, id, patch)
	}
	return &domain.User{ID: id, ExtraInfo: &patch}, nil
}

// GrantAuthority grants a feature key to a user
func (m *MockAuthService) GrantAuthority(ctx context.Context, id uint, featureKey string) (*domain.User, error) {
	if m.GrantAuthorityFunc != nil {
		return m.GrantAuthorityFunc(ctx, id, featureKey)
	}
	return &domain.User{ID: id, Authorities: []domain.Authority{{FeatureKey: featureKey, OwnerID: id}}}, nil
}

// GetAllUsers lists active users
func (m *MockAuthService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	if m.GetAllUsersFunc != nil {
		return m.GetAllUsersFunc(ctx)
	}
	return nil, nil
}
