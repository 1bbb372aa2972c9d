package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mertdogan/estately/internal/database/models"
	"github.com/mertdogan/estately/internal/database/service"
	"github.com/mertdogan/estately/internal/middleware"
)

// UserHandler handles HTTP requests for user profiles
type UserHandler struct {
	service     service.UserService
	authService service.AuthService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserService, authService service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service:     service,
		authService: authService,
		logger:      logger,
	}
}

// GetUser handles GET /api/user/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err, "")
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// UpdateUser handles POST /api/user/update/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID := c.GetString(middleware.UserIDKey)

	var patch service.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, StatusValidationFailed, "Invalid request body")
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), callerID, c.Param("id"), &patch)
	if err != nil {
		handleServiceError(c, h.logger, err, "You can only update your own account!")
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// DeleteUser handles DELETE /api/user/delete/:id. Deleting the account also
// revokes the presented session token and clears the cookie.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID := c.GetString(middleware.UserIDKey)

	if err := h.service.DeleteUser(c.Request.Context(), callerID, c.Param("id")); err != nil {
		handleServiceError(c, h.logger, err, "You can only delete your own account!")
		return
	}

	if value, exists := c.Get(middleware.ClaimsKey); exists {
		if claims, ok := value.(*jwt.RegisteredClaims); ok {
			if err := h.authService.SignOut(c.Request.Context(), claims); err != nil {
				h.logger.Warn("⚠️ [Handler] Failed to revoke token after account deletion", "error", err)
			}
		}
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "User has been deleted!"})
}

// GetUserListings handles GET /api/user/listings/:id
func (h *UserHandler) GetUserListings(c *gin.Context) {
	callerID := c.GetString(middleware.UserIDKey)

	listings, err := h.service.GetUserListings(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err, "You can only view your own listings!")
		return
	}

	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}
