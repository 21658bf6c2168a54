package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the request logger stored under "logger", or the global
// logger tagged with the request route.
func getLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get("logger"); ok {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L().With(
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
	)
}
