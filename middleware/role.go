package middleware

import (
	"errors"
	"net/http"

	"checkfree/models"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireRole lets the request through only when the session user has role.
// It must run after SessionAuthMiddleware.
func RequireRole(users user.UserService, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		usr, err := users.GetUserByID(c.Request.Context(), c.GetString(utils.UserIDKey))
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				utils.JSONError(c, http.StatusForbidden, "Forbidden")
				return
			}
			GetLogger(c).Error("Role check failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if usr.Role != role {
			utils.JSONError(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}
