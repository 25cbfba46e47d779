package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// AuthConfig carries the tunables of the account security flows.
type AuthConfig struct {
	OTPLength        int
	OTPTTL           time.Duration
	OTPChannel       string // "email" or "sms"
	ResetTokenLength int
	ResetTokenTTL    time.Duration
	FrontendURL      string
	ResetPath        string
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	accessRepo  domain.AccessRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	notifier    domain.NotificationService
	mail        domain.MailRenderer
	uploader    domain.MediaUploader
	lockout     LockoutPolicy
	config      AuthConfig
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	accessRepo domain.AccessRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	notifier domain.NotificationService,
	mail domain.MailRenderer,
	uploader domain.MediaUploader,
	lockout LockoutPolicy,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		accessRepo:  accessRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		notifier:    notifier,
		mail:        mail,
		uploader:    uploader,
		lockout:     lockout,
		config:      config,
		now:         time.Now,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, user *domain.User, password string) error {
	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return domain.ErrUserAlreadyExists
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login implements domain.AuthService. The decision order is fixed: account
// existence, lockout window, forgot-password short circuit, password check,
// then the variant-specific step.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		return nil, domain.NewFieldError("email", "Account Not Found", domain.ErrUserNotFound)
	}

	now := s.now()
	if locked := s.lockout.Active(user.Login, now); locked != nil {
		return nil, locked
	}

	if _, ok := attempt.(domain.ForgotPassword); ok {
		return s.sendResetLink(ctx, user)
	}

	password, staySignedIn := attemptPassword(attempt)
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, s.recordFailure(ctx, user, now)
	}

	switch a := attempt.(type) {
	case domain.CodeVerification:
		if user.OTP == "" || a.Code != user.OTP || now.After(user.OTPExpiry) {
			return nil, domain.NewFieldError("verification_code", "Invalid or expired verification code", domain.ErrVerificationFailed)
		}
		return s.finalize(ctx, user, staySignedIn, now)
	case domain.PasswordLogin:
		return s.sendVerificationCode(ctx, user)
	case domain.DirectLogin:
		return s.finalize(ctx, user, staySignedIn, now)
	default:
		return nil, fmt.Errorf("unsupported login attempt %T", attempt)
	}
}

func (s *AuthServiceImpl) findByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	return s.userRepo.FindByEmail(ctx, identifier)
}

func attemptPassword(attempt domain.LoginAttempt) (password string, staySignedIn bool) {
	switch a := attempt.(type) {
	case domain.PasswordLogin:
		return a.Password, a.StaySignedIn
	case domain.CodeVerification:
		return a.Password, a.StaySignedIn
	case domain.DirectLogin:
		return a.Password, a.StaySignedIn
	}
	return "", false
}

// recordFailure advances the lockout state for one wrong password. The write
// is guarded by the state version; on conflict the user record is re-read and
// the transition re-applied, so two racing attempts each count once.
func (s *AuthServiceImpl) recordFailure(ctx context.Context, user *domain.User, now time.Time) error {
	state := user.Login
	for i := 0; i < 3; i++ {
		next, outcome := s.lockout.RecordFailure(state, now)
		err := s.userRepo.UpdateLoginState(ctx, user.ID, state, next)
		if err == nil {
			return credentialsError(outcome)
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return fmt.Errorf("failed to record login failure: %w", err)
		}
		fresh, err := s.userRepo.FindByID(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to re-read login state: %w", err)
		}
		if locked := s.lockout.Active(fresh.Login, now); locked != nil {
			return locked
		}
		state = fresh.Login
	}
	return domain.ErrVersionConflict
}

func credentialsError(outcome FailureOutcome) error {
	e := &domain.CredentialsError{
		AttemptsRemaining: outcome.AttemptsRemaining,
		LockedFor:         outcome.LockedFor,
	}
	if outcome.LockedFor > 0 {
		e.ToastMessage = "Too many incorrect attempts. Your account has been restricted."
	}
	return e
}

// sendResetLink handles the forgot-password short circuit: the password is
// never checked and the lockout counters are left untouched.
func (s *AuthServiceImpl) sendResetLink(ctx context.Context, user *domain.User) (*domain.LoginResult, error) {
	token, err := randomDigits(s.config.ResetTokenLength)
	if err != nil {
		return nil, err
	}
	expiry := s.now().Add(s.config.ResetTokenTTL)

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	link := s.config.FrontendURL + s.config.ResetPath + "?token=" + token
	subject, html, err := s.mail.ResetLink(user.Username, link)
	if err != nil {
		return nil, fmt.Errorf("failed to render reset email: %w", err)
	}
	if err := s.notifier.SendEmail(user.Email, subject, html); err != nil {
		log.Printf("AUTH: reset link delivery failed user=%s err=%v", user.ID, err)
		return nil, err
	}

	return &domain.LoginResult{Outcome: domain.OutcomeResetLinkSent, User: user}, nil
}

// sendVerificationCode is the second half of a successful first factor: a
// fresh code is stored (clearing lockout bookkeeping) and delivered. No
// session token is issued here.
func (s *AuthServiceImpl) sendVerificationCode(ctx context.Context, user *domain.User) (*domain.LoginResult, error) {
	code, err := randomDigits(s.config.OTPLength)
	if err != nil {
		return nil, err
	}
	expiry := s.now().Add(s.config.OTPTTL)

	if err := s.userRepo.StoreLoginOTP(ctx, user.ID, code, expiry, s.lockout.Clear(user.Login)); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.deliverCode(user, code); err != nil {
		log.Printf("AUTH: verification code delivery failed user=%s err=%v", user.ID, err)
		return nil, err
	}

	return &domain.LoginResult{Outcome: domain.OutcomeCodeSent, User: user}, nil
}

func (s *AuthServiceImpl) deliverCode(user *domain.User, code string) error {
	if s.config.OTPChannel == "sms" && user.Phone != "" {
		message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.OTPTTL.Minutes()))
		return s.notifier.SendSMS(user.Phone, message)
	}
	subject, html, err := s.mail.VerificationCode(code)
	if err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	return s.notifier.SendEmail(user.Email, subject, html)
}

func (s *AuthServiceImpl) finalize(ctx context.Context, user *domain.User, staySignedIn bool, now time.Time) (*domain.LoginResult, error) {
	if err := s.userRepo.RecordSignIn(ctx, user.ID, staySignedIn, now); err != nil {
		return nil, fmt.Errorf("failed to record sign-in: %w", err)
	}

	token, err := s.tokenSvc.Issue(user.ID, staySignedIn)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.LoginResult{Outcome: domain.OutcomeTokenIssued, Token: token, User: user}, nil
}

// ResetPassword implements domain.AuthService. Redemption is a single
// conditional update keyed on the token, so a reused or expired token fails
// with one opaque error.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.userRepo.RedeemResetToken(ctx, token, hashed, s.now()); err != nil {
		return err
	}
	return nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, userID string) error {
	return s.userRepo.ClearStaySignedIn(ctx, userID)
}

// Profile implements domain.AuthService, hydrating the role name and the
// permission name/module pairs.
func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Bio:         user.Bio,
		ProfilePic:  user.ProfilePic,
		Permissions: []domain.Permission{},
	}

	if user.RoleID != "" {
		role, err := s.accessRepo.FindRole(ctx, user.RoleID)
		if err == nil {
			profile.Role = role.Name
		}
	}
	if len(user.Permissions) > 0 {
		perms, err := s.accessRepo.FindPermissions(ctx, user.Permissions)
		if err != nil {
			return nil, fmt.Errorf("failed to load permissions: %w", err)
		}
		for _, p := range perms {
			profile.Permissions = append(profile.Permissions, *p)
		}
	}

	return profile, nil
}

// CheckPassword implements domain.AuthService
func (s *AuthServiceImpl) CheckPassword(ctx context.Context, userID, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return domain.ErrWrongCredentials
	}
	return nil
}

// UpdateProfile implements domain.AuthService. A profile picture arrives as
// a base64 payload and is uploaded to the object store before the record is
// saved; the upload is awaited so a failed upload leaves the record alone.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		first, last, _ := strings.Cut(update.Name, " ")
		user.FirstName = first
		user.LastName = last
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.Email != "" {
		user.Email = update.Email
	}
	if update.Password != "" {
		hashed, err := s.passwordSvc.Hash(update.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashed
	}
	if update.ProfilePic != "" {
		data, err := decodeBase64Image(update.ProfilePic)
		if err != nil {
			return nil, domain.NewFieldError("profile_pic", "invalid image payload", err)
		}
		url, _, err := s.uploader.Upload(ctx, data, "profile_pics")
		if err != nil {
			return nil, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		user.ProfilePic = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// decodeBase64Image accepts both raw base64 and data-URI payloads.
func decodeBase64Image(payload string) ([]byte, error) {
	if _, rest, ok := strings.Cut(payload, ","); ok && strings.HasPrefix(payload, "data:") {
		payload = rest
	}
	return base64.StdEncoding.DecodeString(payload)
}
