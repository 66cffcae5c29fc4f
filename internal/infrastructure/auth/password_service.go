package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordService implements domain.PasswordService with bcrypt. The work
// factor is fixed at construction time.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to the library default.
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordService{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordService) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordService) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
