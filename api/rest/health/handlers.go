package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "codeexplainer"
	version     = "1.0.0"
)

// returns the server health status
func Handler(sessions SessionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		count := 0
		if sessions != nil {
			count = sessions.GetSessionCount()
		}

		c.JSON(http.StatusOK, Response{
			Status:         "healthy",
			Service:        serviceName,
			Version:        version,
			ActiveSessions: count,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
