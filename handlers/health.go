package handlers

import (
	"net/http"

	"checkfree/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health from the last health-monitor snapshot.
func HealthHandler(c *gin.Context) {
	h := utils.GetHealthStatus()
	status, code := "ok", http.StatusOK
	if !h.Mongo || !h.Redis {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"mongo":     h.Mongo,
		"redis":     h.Redis,
		"checkedAt": h.CheckedAt,
	})
}

// MethodNotAllowedHandler answers known routes called with the wrong method.
func MethodNotAllowedHandler(c *gin.Context) {
	utils.JSONError(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// NotFoundHandler answers unknown routes.
func NotFoundHandler(c *gin.Context) {
	utils.JSONError(c, http.StatusNotFound, "Not found")
}
