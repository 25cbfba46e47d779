package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// PasswordServiceImpl implements domain.PasswordService with bcrypt.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a password service at the default bcrypt cost.
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

// Hash implements domain.PasswordService.
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
