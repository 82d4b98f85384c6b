package middleware

import (
	"errors"
	"net/http"
	"strings"

	"checkfree/services/auth"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionToken extracts the session token from the Authorization header or
// the session cookie.
func SessionToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(utils.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// SessionAuthMiddleware rejects requests without a valid session and stores
// the user's id and email in the context.
func SessionAuthMiddleware(authSvc auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidSession) {
				GetLogger(c).Error("Session check failed", zap.Error(err))
			}
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		c.Set(utils.UserIDKey, claims.Subject)
		c.Set(utils.EmailKey, claims.Email)
		c.Next()
	}
}
