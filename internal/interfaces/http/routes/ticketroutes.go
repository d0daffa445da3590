package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/domain/access"
	tickethandlers "github.com/cloudcare/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/cloudcare/helpdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler        *tickethandlers.TicketHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupTicketRoutes(api *gin.RouterGroup, config *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// must come BEFORE /:id
		tickets.GET("/stats",
			config.TicketHandler.GetStats)

		tickets.POST("/:id/comments",
			config.TicketHandler.AddComment)

		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.PUT("/:id",
			config.TicketHandler.UpdateTicket)
		tickets.DELETE("/:id",
			config.PermissionMiddleware.RequirePermission(access.OpDelete, "Only administrators can delete tickets"),
			config.TicketHandler.DeleteTicket)
	}
}
