package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/domain"
	"github.com/Sushil1248/innfostride-backend/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performLogin(t *testing.T, svc domain.AuthService, body map[string]any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	r := gin.New()
	h := NewAuthHandlers(svc)
	r.POST("/auth/login", h.Login)

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

func TestAuthHandlers_Login_ResolvesVariants(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want func(t *testing.T, attempt domain.LoginAttempt)
	}{
		{
			name: "forgot password",
			body: map[string]any{"username": "alice", "form_type": "forgot_password_form"},
			want: func(t *testing.T, attempt domain.LoginAttempt) {
				if _, ok := attempt.(domain.ForgotPassword); !ok {
					t.Errorf("expected ForgotPassword, got %T", attempt)
				}
			},
		},
		{
			name: "forgot password without a password field",
			body: map[string]any{"email": "alice@example.com", "form_type": "forgot_password_form"},
			want: func(t *testing.T, attempt domain.LoginAttempt) {
				if _, ok := attempt.(domain.ForgotPassword); !ok {
					t.Errorf("a reset request must never reach the password check, got %T", attempt)
				}
			},
		},
		{
			name: "verification form",
			body: map[string]any{"username": "alice", "password": "pw", "form_type": "verification_form", "verification_code": "123456"},
			want: func(t *testing.T, attempt domain.LoginAttempt) {
				cv, ok := attempt.(domain.CodeVerification)
				if !ok {
					t.Fatalf("expected CodeVerification, got %T", attempt)
				}
				if cv.Code != "123456" {
					t.Errorf("code = %q", cv.Code)
				}
			},
		},
		{
			name: "login form",
			body: map[string]any{"username": "alice", "password": "pw", "form_type": "login_form", "staySignedIn": true},
			want: func(t *testing.T, attempt domain.LoginAttempt) {
				pl, ok := attempt.(domain.PasswordLogin)
				if !ok {
					t.Fatalf("expected PasswordLogin, got %T", attempt)
				}
				if !pl.StaySignedIn {
					t.Error("staySignedIn not carried")
				}
			},
		},
		{
			name: "no form type",
			body: map[string]any{"email": "alice@example.com", "password": "pw"},
			want: func(t *testing.T, attempt domain.LoginAttempt) {
				if _, ok := attempt.(domain.DirectLogin); !ok {
					t.Errorf("expected DirectLogin, got %T", attempt)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			var got domain.LoginAttempt
			svc.LoginFunc = func(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error) {
				got = attempt
				return &domain.LoginResult{Outcome: domain.OutcomeCodeSent, User: &domain.User{ID: "u1"}}, nil
			}

			performLogin(t, svc, tt.body)
			if got == nil {
				t.Fatal("service never called")
			}
			tt.want(t, got)
		})
	}
}

func TestAuthHandlers_Login_ErrorShapes(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		err        error
		wantStatus int
		check      func(t *testing.T, resp map[string]any)
	}{
		{
			name:       "account not found",
			err:        domain.NewFieldError("email", "Account Not Found", domain.ErrUserNotFound),
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, resp map[string]any) {
				if resp["field_error"] != "email" {
					t.Errorf("field_error = %v", resp["field_error"])
				}
			},
		},
		{
			name:       "restricted account",
			err:        &domain.LockedError{Until: now.Add(30 * time.Minute), Now: now},
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, resp map[string]any) {
				toast, _ := resp["toast_message"].(string)
				if toast == "" {
					t.Fatal("expected toast_message")
				}
				if want := "00:30:00"; !bytes.Contains([]byte(toast), []byte(want)) {
					t.Errorf("toast %q missing %q", toast, want)
				}
			},
		},
		{
			name:       "wrong password",
			err:        &domain.CredentialsError{AttemptsRemaining: 2},
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, resp map[string]any) {
				if resp["field_error"] != "password" {
					t.Errorf("field_error = %v", resp["field_error"])
				}
				if resp["attempts_remaining"] != float64(2) {
					t.Errorf("attempts_remaining = %v", resp["attempts_remaining"])
				}
			},
		},
		{
			name:       "wrong password triggering lock",
			err:        &domain.CredentialsError{AttemptsRemaining: 0, LockedFor: 30 * time.Minute, ToastMessage: "Too many incorrect attempts. Your account has been restricted."},
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, resp map[string]any) {
				if resp["toast_message"] == nil {
					t.Error("expected toast_message alongside field error")
				}
				if resp["attempts_remaining"] != float64(0) {
					t.Errorf("attempts_remaining = %v", resp["attempts_remaining"])
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			svc.LoginFunc = func(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error) {
				return nil, tt.err
			}

			w, resp := performLogin(t, svc, map[string]any{"username": "alice", "password": "pw"})
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp["success"] != false {
				t.Errorf("success = %v", resp["success"])
			}
			tt.check(t, resp)
		})
	}
}

func TestAuthHandlers_Login_TokenResponse(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.LoginFunc = func(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error) {
		return &domain.LoginResult{
			Outcome: domain.OutcomeTokenIssued,
			Token:   "jwt-token",
			User:    &domain.User{ID: "u1", Username: "alice", Email: "alice@example.com"},
		}, nil
	}

	w, resp := performLogin(t, svc, map[string]any{"username": "alice", "password": "pw", "verification_code": "123456"})
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if resp["token"] != "jwt-token" {
		t.Errorf("token = %v", resp["token"])
	}
	user, _ := resp["user"].(map[string]any)
	if user == nil || user["username"] != "alice" {
		t.Errorf("user = %v", resp["user"])
	}
}

func TestAuthHandlers_Login_MissingIdentifier(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.LoginFunc = func(ctx context.Context, identifier string, attempt domain.LoginAttempt) (*domain.LoginResult, error) {
		t.Error("service must not be called without an identifier")
		return nil, nil
	}

	w, _ := performLogin(t, svc, map[string]any{"password": "pw"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestAuthHandlers_ResetPassword_InvalidToken(t *testing.T) {
	svc := mocks.NewMockAuthService()
	svc.ResetPasswordFunc = func(ctx context.Context, token, newPassword string) error {
		return domain.ErrResetTokenInvalid
	}

	r := gin.New()
	h := NewAuthHandlers(svc)
	r.POST("/auth/reset-password", h.ResetPassword)

	body := []byte(`{"password":"newpassword","reset_token":"stale"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/reset-password", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["message"] != "Reset link might be expired or not exists" {
		t.Errorf("message = %v", resp["message"])
	}
}
