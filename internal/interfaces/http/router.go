package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/cloudcare/helpdesk/docs"
	"github.com/cloudcare/helpdesk/internal/interfaces/http/middleware"
	"github.com/cloudcare/helpdesk/internal/interfaces/http/routes"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/utils"
)

// SetupRoutes installs the global middleware chain and every route.
func (c *Container) SetupRoutes() {
	cfg := c.cfg
	engine := c.engine

	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(c.log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics(c.metrics))
	}
	engine.Use(middleware.RequestTimeout(cfg.Server.Timeout()))

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(c.metrics.Handler()))
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group(cfg.Server.APIPrefix)
	if cfg.RateLimit.Enabled {
		api.Use(c.apiRateLimiter.Limit())
	}

	routes.SetupSystemRoutes(api, c.hdlrs.healthHandler)

	authLimiter := c.authRateLimiter
	if !cfg.RateLimit.Enabled {
		authLimiter = nil
	}
	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    authLimiter,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})

	engine.NoRoute(func(ctx *gin.Context) {
		utils.ErrorResponseWithError(ctx, errors.NewNotFoundError("Route not found"))
	})
}
