package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mertdogan/estately/internal/auth"
	"github.com/mertdogan/estately/internal/database"
)

// TokenCookie is the cookie carrying the session token.
const TokenCookie = "access_token"

// Context keys set by RequireAuth.
const (
	UserIDKey = "userID"
	ClaimsKey = "claims"
)

// AuthMiddleware verifies the session-token cookie. A missing cookie fails
// Unauthorized; an invalid, expired, or revoked token fails Forbidden. The
// distinction is part of the API contract.
type AuthMiddleware struct {
	tokens   *auth.TokenManager
	denylist *database.TokenDenylist
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware instance
func NewAuthMiddleware(tokens *auth.TokenManager, denylist *database.TokenDenylist, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		denylist: denylist,
		logger:   logger,
	}
}

// RequireAuth validates the session token and sets the caller's identity in
// the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(TokenCookie)
		if err != nil || tokenString == "" {
			m.logger.Warn("⚠️ [Middleware] Missing session cookie")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":    false,
				"statusCode": http.StatusUnauthorized,
				"message":    "Unauthorized",
			})
			return
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			m.logger.Warn("⚠️ [Middleware] Invalid token", "error", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":    false,
				"statusCode": http.StatusForbidden,
				"message":    "Forbidden",
			})
			return
		}

		revoked, err := m.denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Denylist errors are infrastructure failures, not a verdict on
			// the token; fail open and keep serving.
			m.logger.Warn("⚠️ [Middleware] Denylist check failed", "error", err)
		} else if revoked {
			m.logger.Warn("⚠️ [Middleware] Revoked token presented", "user_id", claims.Subject)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success":    false,
				"statusCode": http.StatusForbidden,
				"message":    "Forbidden",
			})
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(ClaimsKey, claims)
		m.logger.Debug("✅ [Middleware] Token validated", "user_id", claims.Subject)

		c.Next()
	}
}
