package domain

import "context"

// UserRepository defines user data access operations. Lookups return
// (nil, nil) when no record matches; errors are reserved for store
// failures.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// CreateWithAuthority persists the user and its default authority in
	// one transaction.
	CreateWithAuthority(ctx context.Context, user *User, featureKey string) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUserName(ctx context.Context, userName string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
	ListActive(ctx context.Context, limit int) ([]*User, error)
}

// AuthorityRepository defines feature-grant data access operations.
type AuthorityRepository interface {
	Create(ctx context.Context, authority *Authority) error
	ListByOwner(ctx context.Context, ownerID uint) ([]Authority, error)
}

// AuthService defines the identity lifecycle. It is the only component
// permitted to read or write password secrets.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams, sourceAddr string) (*User, error)
	Login(ctx context.Context, params LoginParams) (string, error)
	IssueToken(user *User) (string, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserName(ctx context.Context, userName string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	UpdateUserRole(ctx context.Context, id uint, role Role) (*User, error)
	UpdateLastName(ctx context.Context, id uint, lastName string) (*User, error)
	UpdateExtraInfo(ctx context.Context, id uint, patch ExtraInfo) (*User, error)
	GrantAuthority(ctx context.Context, id uint, featureKey string) (*User, error)
	GetAllUsers(ctx context.Context) ([]*User, error)
}

// PasswordService defines the one-way credential hashing primitive.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies bearer tokens. Verification failures are
// undifferentiated at this boundary: expired, forged and malformed tokens
// all fail the same way.
type TokenService interface {
	Generate(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// RegistrationThrottle bounds registration volume per source address over a
// rolling window. Best effort, process local.
type RegistrationThrottle interface {
	TryRegister(addr string) error
	Stop()
}

// FileService validates and persists uploaded binary content.
type FileService interface {
	Upload(owner *User, data []byte, originalName, mimeType string) (*FileInfo, error)
	Get(ownerID uint, filename string) ([]byte, error)
	Delete(ownerID uint, filename string) error
}

// RateLimiter bounds request volume per key over a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) error
}
