package mocks

import (
	"context"
	"time"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByUsernameFunc    func(ctx context.Context, username string) (*domain.User, error)
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc          func(ctx context.Context, id string) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, user *domain.User) error
	UpdateLoginStateFunc  func(ctx context.Context, userID string, state, next domain.LoginState) error
	StoreLoginOTPFunc     func(ctx context.Context, userID, code string, expiry time.Time, cleared domain.LoginState) error
	StoreProfileOTPFunc   func(ctx context.Context, userID, code string, expiry time.Time) error
	SetResetTokenFunc     func(ctx context.Context, userID, token string, expiry time.Time) error
	RedeemResetTokenFunc  func(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error)
	RecordSignInFunc      func(ctx context.Context, userID string, staySignedIn bool, at time.Time) error
	ClearStaySignedInFunc func(ctx context.Context, userID string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "mock_user_id"
	return nil
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) UpdateLoginState(ctx context.Context, userID string, state, next domain.LoginState) error {
	if m.UpdateLoginStateFunc != nil {
		return m.UpdateLoginStateFunc(ctx, userID, state, next)
	}
	return nil
}

func (m *MockUserRepository) StoreLoginOTP(ctx context.Context, userID, code string, expiry time.Time, cleared domain.LoginState) error {
	if m.StoreLoginOTPFunc != nil {
		return m.StoreLoginOTPFunc(ctx, userID, code, expiry, cleared)
	}
	return nil
}

func (m *MockUserRepository) StoreProfileOTP(ctx context.Context, userID, code string, expiry time.Time) error {
	if m.StoreProfileOTPFunc != nil {
		return m.StoreProfileOTPFunc(ctx, userID, code, expiry)
	}
	return nil
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	if m.SetResetTokenFunc != nil {
		return m.SetResetTokenFunc(ctx, userID, token, expiry)
	}
	return nil
}

func (m *MockUserRepository) RedeemResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*domain.User, error) {
	if m.RedeemResetTokenFunc != nil {
		return m.RedeemResetTokenFunc(ctx, token, passwordHash, now)
	}
	return nil, domain.ErrResetTokenInvalid
}

func (m *MockUserRepository) RecordSignIn(ctx context.Context, userID string, staySignedIn bool, at time.Time) error {
	if m.RecordSignInFunc != nil {
		return m.RecordSignInFunc(ctx, userID, staySignedIn, at)
	}
	return nil
}

func (m *MockUserRepository) ClearStaySignedIn(ctx context.Context, userID string) error {
	if m.ClearStaySignedInFunc != nil {
		return m.ClearStaySignedInFunc(ctx, userID)
	}
	return nil
}
