package middlewares

import (
	"github.com/gin-gonic/gin"
)

// ViewerRoleMiddleware tags the websocket connection with a viewer
// role from the query string. There is no authentication; the role
// only labels the connection in logs and the hub ("viewer" screens in
// front, "counter" behind it).
func ViewerRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.Query("role")
		switch role {
		case "viewer", "counter":
		default:
			role = "viewer"
		}
		c.Set("role", role)
		c.Next()
	}
}
