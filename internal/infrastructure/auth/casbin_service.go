package auth

import (
	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// CasbinService owns the RBAC enforcer backing the admin route group.
// Policies persist in the casbin_rule table next to the user data.
type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer from the model file and the GORM
// adapter, loading any persisted policies.
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(modelPath, adp)
	if err != nil {
		return nil, err
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E: e}, nil
}

// SeedDefaultPolicies installs the baseline role permissions when the
// policy table is empty.
func (s *CasbinService) SeedDefaultPolicies() error {
	policies, err := s.E.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}
	if _, err := s.E.AddPolicy("role_admin", "/api/admin/*", "(GET|POST|PUT|DELETE)"); err != nil {
		return err
	}
	return s.E.SavePolicy()
}
