package services

import (
	"testing"
	"time"

	"github.com/Sushil1248/innfostride-backend/domain"
)

func testPolicy() LockoutPolicy {
	return LockoutPolicy{
		MaxAttempts: 5,
		FirstBlock:  30 * time.Minute,
		SecondBlock: 24 * time.Hour,
	}
}

func TestLockoutPolicy_RecordFailure_BelowThreshold(t *testing.T) {
	policy := testPolicy()
	now := time.Now()

	state := domain.LoginState{}
	for i := 1; i <= 4; i++ {
		var out FailureOutcome
		state, out = policy.RecordFailure(state, now)

		if state.IncorrectAttempts != i {
			t.Errorf("attempt %d: expected counter %d, got %d", i, i, state.IncorrectAttempts)
		}
		if out.AttemptsRemaining != 5-i {
			t.Errorf("attempt %d: expected %d remaining, got %d", i, 5-i, out.AttemptsRemaining)
		}
		if out.LockedFor != 0 {
			t.Errorf("attempt %d: expected no lock, got %v", i, out.LockedFor)
		}
		if state.Locked(now) {
			t.Errorf("attempt %d: account should not be locked", i)
		}
	}
}

func TestLockoutPolicy_RecordFailure_FirstLock(t *testing.T) {
	policy := testPolicy()
	now := time.Now()

	state := domain.LoginState{IncorrectAttempts: 4}
	next, out := policy.RecordFailure(state, now)

	if out.LockedFor != 30*time.Minute {
		t.Fatalf("expected 30m lock, got %v", out.LockedFor)
	}
	if out.AttemptsRemaining != 0 {
		t.Errorf("expected 0 remaining at lock, got %d", out.AttemptsRemaining)
	}
	if next.IncorrectAttempts != 0 {
		t.Errorf("expected counter reset, got %d", next.IncorrectAttempts)
	}
	if !next.PriorLockout {
		t.Error("expected prior-lockout flag set")
	}
	if !next.Locked(now) {
		t.Error("expected account locked")
	}
	if got, want := next.LockedUntil, now.Add(30*time.Minute); !got.Equal(want) {
		t.Errorf("expected lock until %v, got %v", want, got)
	}
}

func TestLockoutPolicy_RecordFailure_SecondLockEscalates(t *testing.T) {
	policy := testPolicy()
	now := time.Now()

	// First lock has elapsed; the flag marks its history.
	state := domain.LoginState{
		IncorrectAttempts: 4,
		PriorLockout:      true,
	}
	next, out := policy.RecordFailure(state, now)

	if out.LockedFor != 24*time.Hour {
		t.Fatalf("expected 24h lock, got %v", out.LockedFor)
	}
	if got, want := next.LockedUntil, now.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("expected lock until %v, got %v", want, got)
	}
	if next.IncorrectAttempts != 0 {
		t.Errorf("expected counter reset, got %d", next.IncorrectAttempts)
	}
}

func TestLockoutPolicy_Active(t *testing.T) {
	policy := testPolicy()
	now := time.Now()

	tests := []struct {
		name   string
		state  domain.LoginState
		locked bool
	}{
		{"no lock", domain.LoginState{}, false},
		{"lock in future", domain.LoginState{LockedUntil: now.Add(time.Hour)}, true},
		{"lock elapsed", domain.LoginState{LockedUntil: now.Add(-time.Minute)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := policy.Active(tt.state, now)
			if (got != nil) != tt.locked {
				t.Errorf("Active() = %v, want locked=%t", got, tt.locked)
			}
		})
	}
}

func TestLockedError_RemainingFormat(t *testing.T) {
	now := time.Now()
	e := &domain.LockedError{Until: now.Add(90*time.Minute + 5*time.Second), Now: now}
	if got := e.Remaining(); got != "01:30:05" {
		t.Errorf("Remaining() = %q, want %q", got, "01:30:05")
	}
}

func TestLockoutPolicy_Clear(t *testing.T) {
	policy := testPolicy()
	state := domain.LoginState{
		IncorrectAttempts: 3,
		LockedUntil:       time.Now().Add(time.Hour),
		PriorLockout:      true,
		Version:           7,
	}

	next := policy.Clear(state)
	if next.IncorrectAttempts != 0 || !next.LockedUntil.IsZero() || next.PriorLockout {
		t.Errorf("Clear() left state %+v", next)
	}
	if next.Version != 7 {
		t.Errorf("Clear() must not touch the version, got %d", next.Version)
	}
}
