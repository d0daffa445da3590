package http

import (
	"github.com/cloudcare/helpdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/cloudcare/helpdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	authHandler   *handlers.AuthHandler
	healthHandler *handlers.HealthHandler
	ticketHandler *ticketHandlers.TicketHandler
}
