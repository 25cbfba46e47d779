package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Sushil1248/innfostride-backend/domain"
)

// UserHandlers handles the authenticated user surface: profile, password
// re-check, profile-context OTP and sidebar layout.
type UserHandlers struct {
	authSvc    domain.AuthService
	otpSvc     domain.OTPService
	sidebarSvc domain.SidebarService
	userRepo   domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, sidebarSvc domain.SidebarService, userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{
		authSvc:    authSvc,
		otpSvc:     otpSvc,
		sidebarSvc: sidebarSvc,
		userRepo:   userRepo,
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return "", false
	}
	return userID.(string), true
}

// Profile handles getting the authenticated user's profile with role and
// permissions hydrated.
func (h *UserHandlers) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.authSvc.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profile})
}

// Logout handles user logout
func (h *UserHandlers) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// CheckPassword re-verifies the caller's password without touching any
// login-state counters.
func (h *UserHandlers) CheckPassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.CheckPassword(c.Request.Context(), userID, req.Password); err != nil {
		if errors.Is(err, domain.ErrWrongCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Incorrect password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password check failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateProfile handles profile edits. A profile picture arrives as base64
// and is uploaded before the record is written.
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name       string `json:"name"`
		Bio        string `json:"bio"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		ProfilePic string `json:"profile_pic"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authSvc.UpdateProfile(c.Request.Context(), userID, domain.ProfileUpdate{
		Name:       req.Name,
		Bio:        req.Bio,
		Email:      req.Email,
		Password:   req.Password,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		var field *domain.FieldError
		if errors.As(err, &field) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "field_error": field.Field, "message": field.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"_id":         user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"bio":         user.Bio,
			"profile_pic": user.ProfilePic,
		},
	})
}

// SendOTP handles the profile-context verification flow: form_type=send_mail
// issues a fresh code, anything else verifies the supplied one.
func (h *UserHandlers) SendOTP(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		FormType string `json:"form_type"`
		Email    string `json:"email"`
		Code     string `json:"verification_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.FormType == "send_mail" {
		sentTo, err := h.otpSvc.Send(c.Request.Context(), user, req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification code"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification code sent to " + sentTo})
		return
	}

	if err := h.otpSvc.Verify(c.Request.Context(), user, req.Code); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":     false,
			"field_error": "verification_code",
			"message":     "Invalid verification code",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification successful"})
}

// SaveSidebar upserts the caller's layout blob.
func (h *UserHandlers) SaveSidebar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Items string `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.sidebarSvc.Save(c.Request.Context(), userID, req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save sidebar"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"success": true})
}

// GetSidebar returns the caller's layout blob.
func (h *UserHandlers) GetSidebar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sidebar, err := h.sidebarSvc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrSidebarNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No sidebar saved"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sidebar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": sidebar.Items})
}
