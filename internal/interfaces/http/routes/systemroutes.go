package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/interfaces/http/handlers"
)

// SetupSystemRoutes registers health and API info under the API prefix.
func SetupSystemRoutes(api *gin.RouterGroup, health *handlers.HealthHandler) {
	api.GET("", health.Info)
	api.GET("/health", health.Health)
}
