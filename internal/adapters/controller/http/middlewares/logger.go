package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pubquiz-fans/site/pkg/logger/types"
)

// Logger writes one line per request.
func Logger(logger *types.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		sub := c.GetString(KeySub)
		if sub == "" {
			sub = "anonymous"
		}
		log := logger.Debugf
		if status >= 500 {
			log = logger.Errorf
		}
		log("(user: %s) %s %s -> %d in %s", sub, c.Request.Method, c.FullPath(), status, time.Since(start))
	}
}
