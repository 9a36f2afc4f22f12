package common

import "github.com/gin-gonic/gin"

// Fail writes the uniform error envelope.
func Fail(c *gin.Context, httpStatus int, detail string) {
	c.JSON(httpStatus, gin.H{"detail": detail})
}
