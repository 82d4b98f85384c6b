package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"checkfree/middleware"
	"checkfree/services/auth"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the Google sign-in flow and logout.
type AuthHandler struct {
	AuthService  auth.AuthService
	FrontendURL  string
	SessionTTL   time.Duration
	SecureCookie bool
}

func NewAuthHandler(authService auth.AuthService, frontendURL string, sessionTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		AuthService:  authService,
		FrontendURL:  strings.TrimRight(frontendURL, "/"),
		SessionTTL:   sessionTTL,
		SecureCookie: secureCookie,
	}
}

// GoogleLoginHandler handles GET /api/auth/google/login.
func (h *AuthHandler) GoogleLoginHandler(c *gin.Context) {
	url, err := h.AuthService.BeginLogin(c.Request.Context())
	if err != nil {
		utils.InternalError(c, "Failed to start Google sign-in", err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// GoogleCallbackHandler handles GET /api/auth/google/callback.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	logger := getLogger(c)

	if reason := c.Query("error"); reason != "" {
		logger.Info("Google sign-in declined", zap.String("reason", reason))
		utils.JSONError(c, http.StatusBadRequest, "Google sign-in was cancelled")
		return
	}

	res, err := h.AuthService.CompleteLogin(c.Request.Context(), c.Query("code"), c.Query("state"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidState):
			utils.JSONError(c, http.StatusBadRequest, "Invalid or expired sign-in state")
		case errors.Is(err, user.ErrNoRefreshToken):
			utils.JSONError(c, http.StatusBadRequest, "Calendar access was not granted")
		default:
			utils.InternalError(c, "Google sign-in failed", err)
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, res.Token, int(h.SessionTTL.Seconds()), "/", "", h.SecureCookie, true)
	logger.Info("User signed in", zap.String("email", res.User.Email))

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, res)
		return
	}
	c.Redirect(http.StatusFound, h.FrontendURL+"/auth/callback")
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.AuthService.Logout(c.Request.Context(), token); err != nil {
			utils.InternalError(c, "Failed to revoke session", err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
