package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/estately/internal/auth"
	"github.com/mertdogan/estately/internal/database/service"
	"github.com/mertdogan/estately/internal/middleware"
)

// AuthHandler handles HTTP requests for authentication
type AuthHandler struct {
	service service.AuthService
	tokens  *auth.TokenManager
	logger  *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service service.AuthService, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
		logger:  logger,
	}
}

// Request DTOs
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type GoogleRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, StatusValidationFailed, "Invalid request body")
		return
	}

	user, token, err := h.service.SignUp(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	h.setTokenCookie(c, token)

	profile := user.Profile()
	c.JSON(http.StatusOK, gin.H{
		"username": profile.Username,
		"email":    profile.Email,
		"avatar":   profile.Avatar,
		"id":       profile.ID,
		"message":  "User created successfully",
	})
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, StatusValidationFailed, "Invalid request body")
		return
	}

	user, token, err := h.service.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, user.Profile())
}

// Google handles POST /api/auth/google, the federated signin callback.
func (h *AuthHandler) Google(c *gin.Context) {
	var req GoogleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, StatusValidationFailed, "Invalid request body")
		return
	}

	user, token, err := h.service.Google(c.Request.Context(), req.Name, req.Email, req.Photo)
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, user.Profile())
}

// SignOut handles GET /api/auth/signout. The route is public: clearing the
// cookie must work even when the token is already gone or garbage.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if tokenString, err := c.Cookie(middleware.TokenCookie); err == nil && tokenString != "" {
		if claims, err := h.tokens.Verify(tokenString); err == nil {
			if err := h.service.SignOut(c.Request.Context(), claims); err != nil {
				h.logger.Warn("⚠️ [Handler] Failed to revoke token on signout", "error", err)
			}
		}
	}

	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "User has been logged out!"})
}

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.TokenCookie, token, int(h.tokens.TTL()/time.Second), "/", "", false, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
}
