// Package root contains endpoints that don't belong to any resource
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only exists to let clients check their token against the
// auth middleware in front of it
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
