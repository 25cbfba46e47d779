package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// OTPServiceImpl implements domain.OTPService for the profile-context
// verification flow. Resend throttling lives in Redis; the code itself is
// persisted on the user record.
type OTPServiceImpl struct {
	userRepo    domain.UserRepository
	notifier    domain.NotificationService
	mail        domain.MailRenderer
	redisClient *redis.Client
	config      OTPConfig
	now         func() time.Time
}

type OTPConfig struct {
	Length       int
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(userRepo domain.UserRepository, notifier domain.NotificationService, mail domain.MailRenderer, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		userRepo:    userRepo,
		notifier:    notifier,
		mail:        mail,
		redisClient: redisClient,
		config:      config,
		now:         time.Now,
	}
}

// Send implements domain.OTPService. It generates a fresh code, persists it
// with a short expiry and emails it, returning the address the code went to.
func (s *OTPServiceImpl) Send(ctx context.Context, user *domain.User, email string) (string, error) {
	resendKey := fmt.Sprintf("otp:profile:res:%s", user.ID)

	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return "", fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl > 0 {
		return "", fmt.Errorf("please wait %d seconds before requesting a new code", int64(ttl.Seconds()))
	}

	code, err := randomDigits(s.config.Length)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	if email == "" {
		email = user.Email
	}

	expiry := s.now().Add(s.config.TTL)
	if err := s.userRepo.StoreProfileOTP(ctx, user.ID, code, expiry); err != nil {
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	subject, html, err := s.mail.VerificationCode(code)
	if err != nil {
		return "", fmt.Errorf("failed to render verification email: %w", err)
	}
	if err := s.notifier.SendEmail(email, subject, html); err != nil {
		return "", err
	}

	if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
		return "", fmt.Errorf("failed to set resend throttle: %w", err)
	}

	return email, nil
}

// Verify implements domain.OTPService. The profile flow compares codes for
// equality only; the stored expiry is not consulted here.
func (s *OTPServiceImpl) Verify(ctx context.Context, user *domain.User, code string) error {
	if user.OTP == "" || code != user.OTP {
		return domain.ErrVerificationFailed
	}
	return nil
}
