package mocks

import (
	"context"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc      func(ctx context.Context, user *domain.User, password string) error
	LoginFunc         func(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error)
	ResetPasswordFunc func(ctx context.Context, token, newPassword string) error
	LogoutFunc        func(ctx context.Context, userID string) error
	ProfileFunc       func(ctx context.Context, userID string) (*domain.Profile, error)
	CheckPasswordFunc func(ctx context.Context, userID, password string) error
	UpdateProfileFunc func(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, user *domain.User, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, user, password)
	}
	user.ID = "mock_user_id"
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, attempt)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return nil
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID)
	}
	return nil
}

func (m *MockAuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return &domain.Profile{ID: userID}, nil
}

func (m *MockAuthService) CheckPassword(ctx context.Context, userID, password string) error {
	if m.CheckPasswordFunc != nil {
		return m.CheckPasswordFunc(ctx, userID, password)
	}
	return nil
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, update)
	}
	return &domain.User{ID: userID}, nil
}
