package domain

import (
	"errors"
	"fmt"
	"time"
)

// Account errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrWrongCredentials   = errors.New("wrong credentials")
	ErrAccountLocked      = errors.New("account is locked")
	ErrVersionConflict    = errors.New("login state changed concurrently")
	ErrResetTokenInvalid  = errors.New("reset link might be expired or not exists")
	ErrVerificationFailed = errors.New("invalid or expired verification code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Content errors
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrMediaNotFound    = errors.New("media not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSidebarNotFound  = errors.New("sidebar not found")
	ErrSiteNotFound     = errors.New("domain not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidID        = errors.New("invalid id")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("notification delivery failed")
)

// FieldError scopes an error to one request field so the UI can highlight it.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return e.Err }

// NewFieldError wraps a sentinel with a field name and user-facing message.
func NewFieldError(field, message string, err error) *FieldError {
	return &FieldError{Field: field, Message: message, Err: err}
}

// LockedError rejects an attempt against an account whose lockout window has
// not elapsed. No state is mutated when this is returned.
type LockedError struct {
	Until time.Time
	Now   time.Time
}

func (e *LockedError) Error() string {
	return "you have been restricted, please try again after " + e.Remaining()
}

func (e *LockedError) Unwrap() error { return ErrAccountLocked }

// Remaining formats the time left on the lockout as HH:MM:SS.
func (e *LockedError) Remaining() string {
	d := e.Until.Sub(e.Now)
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// CredentialsError reports a wrong password. AttemptsRemaining is computed
// before any counter reset, so at the lockout threshold it reads zero or
// negative; that number is externally visible and preserved as-is. A non-zero
// LockedFor means this attempt escalated into a lockout.
type CredentialsError struct {
	AttemptsRemaining int
	LockedFor         time.Duration
	ToastMessage      string
}

func (e *CredentialsError) Error() string {
	if e.LockedFor > 0 {
		return fmt.Sprintf("wrong credentials, restricted for %s", e.LockedFor)
	}
	return fmt.Sprintf("wrong credentials, %d attempts remaining", e.AttemptsRemaining)
}

func (e *CredentialsError) Unwrap() error { return ErrWrongCredentials }
