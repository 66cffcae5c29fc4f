package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/vairleon/ai-web-core/domain"
)

// AuthorityRepository implements domain.AuthorityRepository using GORM
type AuthorityRepository struct {
	db *gorm.DB
}

// NewAuthorityRepository creates a new authority repository
func NewAuthorityRepository(db *gorm.DB) *AuthorityRepository {
	return &AuthorityRepository{db: db}
}

// Create implements domain.AuthorityRepository
func (r *AuthorityRepository) Create(ctx context.Context, authority *domain.Authority) error {
	dbAuthority := &DBAuthority{
		FeatureKey: authority.FeatureKey,
		OwnerID:    authority.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(dbAuthority).Error; err != nil {
		return err
	}
	authority.ID = dbAuthority.ID
	return nil
}

// ListByOwner implements domain.AuthorityRepository
func (r *AuthorityRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Authority, error) {
	var dbAuthorities []DBAuthority
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&dbAuthorities).Error
	if err != nil {
		return nil, err
	}
	authorities := make([]domain.Authority, 0, len(dbAuthorities))
	for _, a := range dbAuthorities {
		authorities = append(authorities, domain.Authority{
			ID:         a.ID,
			FeatureKey: a.FeatureKey,
			OwnerID:    a.OwnerID,
		})
	}
	return authorities, nil
}
