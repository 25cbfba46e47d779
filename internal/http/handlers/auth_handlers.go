package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// LoginRequest represents the single login endpoint's payload. form_type and
// verification_code select which sub-protocol the attempt follows.
type LoginRequest struct {
	Username         string `json:"username"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	StaySignedIn     bool   `json:"staySignedIn"`
	FormType         string `json:"form_type"`
	VerificationCode string `json:"verification_code"`
}

// ResetPasswordRequest represents reset redemption request
type ResetPasswordRequest struct {
	Password   string `json:"password" binding:"required,min=6"`
	ResetToken string `json:"reset_token" binding:"required"`
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := h.authSvc.Register(c.Request.Context(), user, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

// resolveAttempt maps the request discriminators onto exactly one login
// variant. Unknown form types behave like a plain password login.
func resolveAttempt(req LoginRequest) domain.LoginAttempt {
	switch {
	case req.FormType == "forgot_password_form":
		return domain.ForgotPassword{}
	case req.FormType == "verification_form" || req.VerificationCode != "":
		return domain.CodeVerification{Password: req.Password, Code: req.VerificationCode, StaySignedIn: req.StaySignedIn}
	case req.FormType == "login_form":
		return domain.PasswordLogin{Password: req.Password, StaySignedIn: req.StaySignedIn}
	default:
		return domain.DirectLogin{Password: req.Password, StaySignedIn: req.StaySignedIn}
	}
}

// Login handles the multiplexed login endpoint.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or email required"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), identifier, resolveAttempt(req))
	if err != nil {
		writeLoginError(c, err)
		return
	}

	switch result.Outcome {
	case domain.OutcomeCodeSent:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent to your email"})
	case domain.OutcomeResetLinkSent:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset link sent to your email"})
	case domain.OutcomeTokenIssued:
		log.Printf("LOGIN: user=%s stay_signed_in=%t timestamp=%s",
			result.User.ID, result.User.StaySignedIn, time.Now().UTC().Format(time.RFC3339))
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   result.Token,
			"user": gin.H{
				"_id":      result.User.ID,
				"username": result.User.Username,
				"email":    result.User.Email,
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
	}
}

// writeLoginError maps the auth service errors onto the response shapes the
// login form consumes: field-scoped errors, attempt counters and lockout
// toasts.
func writeLoginError(c *gin.Context, err error) {
	var locked *domain.LockedError
	if errors.As(err, &locked) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":       false,
			"toast_message": "You have been restricted, please try again after " + locked.Remaining(),
		})
		return
	}

	var creds *domain.CredentialsError
	if errors.As(err, &creds) {
		body := gin.H{
			"success":            false,
			"field_error":        "password",
			"message":            "Incorrect password",
			"attempts_remaining": creds.AttemptsRemaining,
		}
		if creds.ToastMessage != "" {
			body["toast_message"] = creds.ToastMessage
		}
		c.JSON(http.StatusUnauthorized, body)
		return
	}

	var field *domain.FieldError
	if errors.As(err, &field) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":     false,
			"field_error": field.Field,
			"message":     field.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
}

// ResetPassword handles reset-token redemption.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.ResetToken, req.Password); err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Reset link might be expired or not exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password has been reset"})
}
