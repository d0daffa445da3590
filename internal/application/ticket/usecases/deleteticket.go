package usecases

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/infrastructure/metrics"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	Actor    access.Actor
	TicketID string
}

type DeleteTicketUseCase struct {
	ticketRepo ticket.Repository
	auditRepo  audit.Repository
	policy     *access.Policy
	metrics    *metrics.Metrics
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.Repository,
	auditRepo audit.Repository,
	policy *access.Policy,
	m *metrics.Metrics,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		auditRepo:  auditRepo,
		policy:     policy,
		metrics:    m,
		logger:     logger,
	}
}

// Execute hard deletes the ticket; comments and attachments go with it.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) error {
	if err := uc.policy.CanDelete(cmd.Actor); err != nil {
		return err
	}

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return err
	}
	if t == nil {
		return errors.NewNotFoundError("Ticket not found")
	}
	snapshot := t.Snapshot()

	deleted, err := uc.ticketRepo.Delete(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "ticket_id", t.ID(), "error", err)
		return err
	}
	if !deleted {
		// removed concurrently
		return errors.NewNotFoundError("Ticket not found")
	}

	recordAudit(ctx, uc.auditRepo, uc.logger, audit.ActionDelete, t.ID(), cmd.Actor.ID,
		audit.SnapshotChanges[ticket.Snapshot]{Ticket: snapshot})
	uc.metrics.TicketDeleted()

	uc.logger.Infow("ticket deleted", "ticket_id", t.ID(), "number", t.Number(), "user_id", cmd.Actor.ID)
	return nil
}
