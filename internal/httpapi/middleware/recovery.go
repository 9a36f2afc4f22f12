package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prepwise/interview-coach/internal/common"
	"github.com/prepwise/interview-coach/internal/logger"
)

// Recovery converts panics into the uniform 500 envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithField("panic", r).
					WithField("path", c.Request.URL.Path).
					Error("panic recovered")
				common.Fail(c, http.StatusInternalServerError, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
