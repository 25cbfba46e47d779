package mocks

import (
	"github.com/Sushil1248/innfostride-backend/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc    func(userID string, staySignedIn bool) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Issue(userID string, staySignedIn bool) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, staySignedIn)
	}
	return "mock_token_" + userID, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}
