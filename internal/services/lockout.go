package services

import (
	"time"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// LockoutPolicy is the progressive-lockout rule set. Its transitions are
// pure: callers persist the returned state with a version-guarded write and
// retry on conflict.
type LockoutPolicy struct {
	MaxAttempts int
	FirstBlock  time.Duration
	SecondBlock time.Duration
}

// FailureOutcome describes what one recorded wrong-password attempt did.
// AttemptsRemaining is computed against the incremented counter before any
// threshold reset, so it reads 0 (or below) on the attempt that locks the
// account.
type FailureOutcome struct {
	AttemptsRemaining int
	LockedFor         time.Duration
}

// Active returns the lockout window to report when the account is locked at
// now, or nil when it is not.
func (p LockoutPolicy) Active(state domain.LoginState, now time.Time) *domain.LockedError {
	if state.Locked(now) {
		return &domain.LockedError{Until: state.LockedUntil, Now: now}
	}
	return nil
}

// RecordFailure advances state for one wrong-password attempt. Below the
// threshold the counter is incremented. At the threshold the account locks,
// the counter resets to zero, and the prior-lockout flag is set so the next
// lock escalates to the second block duration.
func (p LockoutPolicy) RecordFailure(state domain.LoginState, now time.Time) (domain.LoginState, FailureOutcome) {
	next := state
	next.IncorrectAttempts++

	out := FailureOutcome{AttemptsRemaining: p.MaxAttempts - next.IncorrectAttempts}

	if next.IncorrectAttempts >= p.MaxAttempts {
		block := p.FirstBlock
		if state.PriorLockout {
			block = p.SecondBlock
		}
		next.LockedUntil = now.Add(block)
		next.PriorLockout = true
		next.IncorrectAttempts = 0
		out.LockedFor = block
	}

	return next, out
}

// Clear resets all lockout bookkeeping after a successful authentication.
func (p LockoutPolicy) Clear(state domain.LoginState) domain.LoginState {
	next := state
	next.IncorrectAttempts = 0
	next.LockedUntil = time.Time{}
	next.PriorLockout = false
	return next
}
