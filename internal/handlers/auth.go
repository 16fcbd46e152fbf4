package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/disaster-relief-api/internal/dto"
	apierrors "github.com/yukikurage/disaster-relief-api/internal/errors"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/metrics"
	"github.com/yukikurage/disaster-relief-api/internal/middleware"
	"github.com/yukikurage/disaster-relief-api/internal/services"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	provider    *session.Provider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, provider *session.Provider) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		provider:    provider,
	}
}

type registerRequest struct {
	Username    string `json:"username" form:"username"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password,omitempty" form:"password"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	PhoneNumber string `json:"phone_number" form:"phone_number"`
}

// echo drops the password before the input is sent back to the client.
func (r registerRequest) echo() registerRequest {
	r.Password = ""
	return r
}

// Register creates a new account. The caller signs in separately.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondServiceError(c, err, req.echo())
		return
	}

	logging.FromContext(c).WithField("user_id", user.ID).Info("User registered")

	const message = "Registration successful! Please log in."
	addFlash(c, flashSuccess, message)
	c.JSON(http.StatusCreated, gin.H{
		"message": message,
		"user":    dto.ToProfileDTO(*user),
	})
}

// Login authenticates a user and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username  string `json:"username" form:"username" binding:"required"`
		Password  string `json:"password" form:"password" binding:"required"`
		ReturnURL string `json:"return_url" form:"returnUrl"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Username and password are required")
		return
	}

	sess, err := h.provider.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		metrics.RecordLogin("failure")
		respondServiceError(c, err, gin.H{"username": req.Username})
		return
	}

	metrics.RecordLogin("success")
	h.provider.WriteCookie(c.Writer, sess)

	response := gin.H{
		"message":    "Welcome back, " + sess.Identity.Username + "!",
		"user":       sess.Identity,
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt.Format(time.RFC3339),
	}
	if isLocalURL(req.ReturnURL) {
		response["return_url"] = req.ReturnURL
	}
	c.JSON(http.StatusOK, response)
}

// Logout removes the session cookie. It succeeds without a session too.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.provider.Logout(c.Writer)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the signed-in user's profile.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	user, err := h.authService.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondServiceError(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user))
}

// isLocalURL accepts only same-site paths so returnUrl cannot be used as an
// open redirect.
func isLocalURL(u string) bool {
	return strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") && !strings.HasPrefix(u, "/\\")
}
