package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sprov007/payserver/internal/common"
	"github.com/sprov007/payserver/internal/server/auth"
	"github.com/sprov007/payserver/internal/server/models"
)

const userKey = "currentUser"

// errorJSON aborts the request with the single error body shape used by
// every endpoint.
func errorJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// authMiddleware resolves the Authorization header to an identity before
// any protected handler runs. It accepts both a bare token and the
// "Bearer <token>" form, and is side-effect-free.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "No token, access denied.")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			errorJSON(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		user, err := s.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				errorJSON(c, http.StatusUnauthorized, "Invalid token.")
			} else {
				s.logger.Error(c.Request.Context(), "identity resolution failed", "error", err)
				errorJSON(c, http.StatusInternalServerError, "Server Error!")
			}
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the identity stored by authMiddleware.
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

// corsMiddleware restricts cross-origin calls to the configured allow-list
// and answers preflight requests.
func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := s.allowedOrigins[origin]; ok {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
