package http

import (
	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/token"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/repository"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo       user.Repository
	tokenRepo      token.Repository
	ticketRepo     ticket.Repository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	auditRepo      audit.Repository
}

func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:       repository.NewUserRepository(db, log),
		tokenRepo:      repository.NewRefreshTokenRepository(db, log),
		ticketRepo:     repository.NewTicketRepository(db, log),
		commentRepo:    repository.NewCommentRepository(db, log),
		attachmentRepo: repository.NewAttachmentRepository(db),
		auditRepo:      repository.NewAuditRepository(db),
	}
}
