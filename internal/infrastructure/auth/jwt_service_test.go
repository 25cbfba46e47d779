package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sushil1248/innfostride-backend/domain"
)

func newTestJWTService() *JWTServiceImpl {
	return NewJWTService("test-secret", "cms-test", 12*time.Hour, 168*time.Hour).(*JWTServiceImpl)
}

func TestJWTServiceImpl_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.Issue("user1", false)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.UserID != "user1" {
		t.Errorf("expected user_id user1, got %s", claims.UserID)
	}
}

func TestJWTServiceImpl_TTLDependsOnStaySignedIn(t *testing.T) {
	svc := newTestJWTService()

	short, err := svc.Issue("user1", false)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	long, err := svc.Issue("user1", true)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	shortClaims, err := svc.Validate(short)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	longClaims, err := svc.Validate(long)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	shortTTL := shortClaims.ExpiresAt - shortClaims.IssuedAt
	longTTL := longClaims.ExpiresAt - longClaims.IssuedAt
	if shortTTL != int64((12 * time.Hour).Seconds()) {
		t.Errorf("normal TTL = %ds", shortTTL)
	}
	if longTTL != int64((168 * time.Hour).Seconds()) {
		t.Errorf("stay-signed-in TTL = %ds", longTTL)
	}
}

func TestJWTServiceImpl_Validate_Errors(t *testing.T) {
	svc := newTestJWTService()

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.Validate("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
			t.Errorf("expected ErrTokenMalformed, got %v", err)
		}
	})

	t.Run("wrong signature", func(t *testing.T) {
		other := NewJWTService("other-secret", "cms-test", time.Hour, time.Hour)
		token, err := other.Issue("user1", false)
		if err != nil {
			t.Fatalf("Issue() error: %v", err)
		}
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		now := time.Now()
		claims := jwt.MapClaims{
			"user_id": "user1",
			"iss":     "cms-test",
			"iat":     now.Add(-2 * time.Hour).Unix(),
			"exp":     now.Add(-time.Hour).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := svc.Validate(token); !errors.Is(err, domain.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}
