package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vairleon/ai-web-core/domain"
)

// UserRepository implements domain.UserRepository using GORM
type UserRepository struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). Phone is
// a pointer so that absent phones do not collide on the unique index.
type DBUser struct {
	ID           uint              `gorm:"primaryKey"`
	Email        string            `gorm:"uniqueIndex;size:255"`
	UserName     string            `gorm:"uniqueIndex;size:255"`
	Phone        *string           `gorm:"uniqueIndex;size:32"`
	FirstName    string            `gorm:"size:255"`
	LastName     string            `gorm:"size:255"`
	IsActive     bool              `gorm:"index;default:true"`
	PasswordHash string            `gorm:"column:secret_auth_passwd;size:255"`
	Role         string            `gorm:"index;size:32;default:anonymous"`
	Credit       int               `gorm:"default:0"`
	ExtraInfo    *domain.ExtraInfo `gorm:"column:extra_info;serializer:json"`
	Authorities  []DBAuthority     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBAuthority represents the database model for Authority.
type DBAuthority struct {
	ID         uint   `gorm:"primaryKey"`
	FeatureKey string `gorm:"size:64"`
	OwnerID    uint   `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAuthority) TableName() string {
	return "authorities"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// CreateWithAuthority implements domain.UserRepository. The user insert and
// the authority grant commit or roll back together.
func (r *UserRepository) CreateWithAuthority(ctx context.Context, user *domain.User, featureKey string) error {
	dbUser := userToDB(user)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbUser).Error; err != nil {
			return err
		}
		authority := &DBAuthority{FeatureKey: featureKey, OwnerID: dbUser.ID}
		return tx.Create(authority).Error
	})
	if err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.Authorities = []domain.Authority{{FeatureKey: featureKey, OwnerID: dbUser.ID}}
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.UserRepository
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUserName implements domain.UserRepository
func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*domain.User, error) {
	return r.findOne(ctx, "user_name = ?", userName)
}

// FindByPhone implements domain.UserRepository
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// findOne returns (nil, nil) when no record matches; errors are reserved
// for store failures.
func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Preload("Authorities").Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dbToUser(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	return r.db.WithContext(ctx).Omit("Authorities").Save(dbUser).Error
}

// Count implements domain.UserRepository
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&count).Error
	return count, err
}

// ListActive implements domain.UserRepository
func (r *UserRepository) ListActive(ctx context.Context, limit int) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).Preload("Authorities").
		Where("is_active = ?", true).Limit(limit).Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, dbToUser(&dbUsers[i]))
	}
	return users, nil
}

// userToDB converts domain user to database user
func userToDB(user *domain.User) *DBUser {
	var phone *string
	if user.Phone != "" {
		p := user.Phone
		phone = &p
	}
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		UserName:     user.UserName,
		Phone:        phone,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsActive:     user.IsActive,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		Credit:       user.Credit,
		ExtraInfo:    user.ExtraInfo,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// dbToUser converts database user to domain user
func dbToUser(dbUser *DBUser) *domain.User {
	phone := ""
	if dbUser.Phone != nil {
		phone = *dbUser.Phone
	}
	authorities := make([]domain.Authority, 0, len(dbUser.Authorities))
	for _, a := range dbUser.Authorities {
		authorities = append(authorities, domain.Authority{
			ID:         a.ID,
			FeatureKey: a.FeatureKey,
			OwnerID:    a.OwnerID,
		})
	}
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		UserName:     dbUser.UserName,
		Phone:        phone,
		FirstName:    dbUser.FirstName,
		LastName:     dbUser.LastName,
		IsActive:     dbUser.IsActive,
		PasswordHash: dbUser.PasswordHash,
		Role:         domain.Role(dbUser.Role),
		Credit:       dbUser.Credit,
		ExtraInfo:    dbUser.ExtraInfo,
		Authorities:  authorities,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
