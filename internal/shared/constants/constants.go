package constants

const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Ticket list pagination
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Gin context keys set by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	ErrMsgInternalServerError = "Internal server error occurred"
)

// Table names
const (
	TableUsers          = "users"
	TableRefreshTokens  = "refresh_tokens"
	TableTickets        = "tickets"
	TableTicketComments = "ticket_comments"
	TableAttachments    = "attachments"
	TableAuditLogs      = "audit_logs"
)
