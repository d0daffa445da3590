package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/utils"
	"github.com/cloudcare/helpdesk/internal/shared/version"
)

const databasePingTimeout = 2 * time.Second

// Pinger checks that the database answers.
type Pinger func(ctx context.Context) error

type HealthResponse struct {
	Status      string    `json:"status" example:"healthy"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      float64   `json:"uptime" example:"3600.5"`
	Environment string    `json:"environment" example:"production"`
	Database    string    `json:"database" example:"up"`
	Version     string    `json:"version" example:"v1.0.0"`
}

type APIInfoResponse struct {
	Name        string            `json:"name"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
}

type HealthHandler struct {
	ping        Pinger
	environment string
	apiPrefix   string
	startedAt   time.Time
	logger      logger.Interface
}

func NewHealthHandler(ping Pinger, environment, apiPrefix string, logger logger.Interface) *HealthHandler {
	return &HealthHandler{
		ping:        ping,
		environment: environment,
		apiPrefix:   apiPrefix,
		startedAt:   biztime.NowUTC(),
		logger:      logger,
	}
}

// Health godoc
//
//	@Summary	Service health
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=HealthResponse}
//	@Failure	503	{object}	utils.APIResponse{data=HealthResponse}
//	@Router		/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	now := biztime.NowUTC()
	resp := HealthResponse{
		Status:      "healthy",
		Timestamp:   now,
		Uptime:      now.Sub(h.startedAt).Seconds(),
		Environment: h.environment,
		Database:    "up",
		Version:     version.Get().Version,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), databasePingTimeout)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		h.logger.Warnw("database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Message: "Service is degraded",
			Data:    resp,
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Service is healthy", resp)
}

// Info godoc
//
//	@Summary	API information
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse{data=APIInfoResponse}
//	@Router		/ [get]
func (h *HealthHandler) Info(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Welcome to CloudCare API", APIInfoResponse{
		Name:        "CloudCare Ticketing API",
		Version:     version.Get().Version,
		Description: "Customer support ticketing service",
		Endpoints: map[string]string{
			"auth":    h.apiPrefix + "/auth",
			"tickets": h.apiPrefix + "/tickets",
			"health":  h.apiPrefix + "/health",
			"metrics": "/metrics",
		},
	})
}
