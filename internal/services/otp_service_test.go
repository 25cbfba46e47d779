package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Sushil1248/innfostride-backend/domain"
	"github.com/Sushil1248/innfostride-backend/internal/mocks"
)

func newOTPFixture(t *testing.T) (*OTPServiceImpl, *mocks.MockUserRepository, *mocks.MockNotificationService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	userRepo := mocks.NewMockUserRepository()
	notifier := mocks.NewMockNotificationService()

	svc := NewOTPService(userRepo, notifier, mocks.NewMockMailRenderer(), client, OTPConfig{
		Length:       6,
		TTL:          2 * time.Minute,
		ResendWindow: 30 * time.Second,
	}).(*OTPServiceImpl)

	return svc, userRepo, notifier, mr
}

func TestOTPServiceImpl_Send(t *testing.T) {
	svc, userRepo, notifier, _ := newOTPFixture(t)

	var storedCode string
	userRepo.StoreProfileOTPFunc = func(ctx context.Context, userID, code string, expiry time.Time) error {
		storedCode = code
		return nil
	}

	user := &domain.User{ID: "user1", Email: "alice@example.com"}
	sentTo, err := svc.Send(context.Background(), user, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sentTo != "alice@example.com" {
		t.Errorf("expected fallback to account email, got %s", sentTo)
	}
	if len(storedCode) != 6 {
		t.Errorf("expected 6-digit code, got %q", storedCode)
	}
	if len(notifier.SentEmails) != 1 {
		t.Fatalf("expected one email, got %d", len(notifier.SentEmails))
	}
}

func TestOTPServiceImpl_Send_ResendThrottled(t *testing.T) {
	svc, _, _, mr := newOTPFixture(t)

	user := &domain.User{ID: "user1", Email: "alice@example.com"}
	if _, err := svc.Send(context.Background(), user, ""); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if _, err := svc.Send(context.Background(), user, ""); err == nil {
		t.Fatal("expected throttle error on immediate resend")
	}

	mr.FastForward(31 * time.Second)
	if _, err := svc.Send(context.Background(), user, ""); err != nil {
		t.Fatalf("send after window failed: %v", err)
	}
}

func TestOTPServiceImpl_Verify_EqualityOnly(t *testing.T) {
	svc, _, _, _ := newOTPFixture(t)

	tests := []struct {
		name    string
		user    *domain.User
		code    string
		wantErr bool
	}{
		{
			name: "matching code",
			user: &domain.User{OTP: "123456", OTPExpiry: time.Now().Add(time.Minute)},
			code: "123456",
		},
		{
			// The profile flow never consults the stored expiry.
			name: "matching code past expiry",
			user: &domain.User{OTP: "123456", OTPExpiry: time.Now().Add(-time.Hour)},
			code: "123456",
		},
		{
			name:    "wrong code",
			user:    &domain.User{OTP: "123456"},
			code:    "654321",
			wantErr: true,
		},
		{
			name:    "no code stored",
			user:    &domain.User{},
			code:    "123456",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Verify(context.Background(), tt.user, tt.code)
			if tt.wantErr && !errors.Is(err, domain.ErrVerificationFailed) {
				t.Errorf("expected ErrVerificationFailed, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
