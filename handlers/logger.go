package handlers

import (
	"checkfree/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped logger set by RequestLogger.
func getLogger(c *gin.Context) *zap.Logger {
	return middleware.GetLogger(c)
}
