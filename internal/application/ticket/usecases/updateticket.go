package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/email"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/goroutine"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// notifyTimeout bounds one assignment email, SMTP dial included.
const notifyTimeout = 30 * time.Second

type UpdateTicketCommand struct {
	Actor    access.Actor
	TicketID string
	Patch    ticket.Patch
}

// UpdateTicketUseCase applies the part of a patch the actor may change.
// Reassigning a ticket mails the new assignee in the background.
type UpdateTicketUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	auditRepo  audit.Repository
	policy     *access.Policy
	notifier   email.Notifier
	logger     logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	policy *access.Policy,
	notifier email.Notifier,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		policy:     policy,
		notifier:   notifier,
		logger:     logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*dto.TicketResponse, error) {
	uc.logger.Infow("executing update ticket use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.ID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("Ticket not found")
	}

	patch, err := uc.policy.AuthorizeUpdate(cmd.Actor, t, cmd.Patch)
	if err != nil {
		uc.logger.Warnw("ticket update denied", "ticket_id", t.ID(), "user_id", cmd.Actor.ID, "error", err)
		return nil, err
	}

	if patch.AssignedToID != nil {
		assignee, err := uc.userRepo.GetByID(ctx, *patch.AssignedToID)
		if err != nil {
			return nil, fmt.Errorf("failed to load assignee: %w", err)
		}
		if assignee == nil {
			return nil, errors.NewValidationError("Validation failed", "assignedToId does not reference an existing user")
		}
	}

	before := t.Snapshot()
	if err := t.Apply(patch); err != nil {
		return nil, err
	}

	// Nothing the actor may change was sent: no write and no audit entry.
	if !patch.IsEmpty() {
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", t.ID(), "error", err)
			return nil, err
		}

		recordAudit(ctx, uc.auditRepo, uc.logger, audit.ActionUpdate, t.ID(), cmd.Actor.ID,
			audit.DiffChanges[ticket.Snapshot]{Old: before, New: t.Snapshot()})

		uc.logger.Infow("ticket updated successfully", "ticket_id", t.ID(), "number", t.Number())
	}

	users, err := loadUsers(ctx, uc.userRepo, append(participantIDs(t), cmd.Actor.ID))
	if err != nil {
		return nil, err
	}

	if assignee := t.AssignedToID(); assignee != nil && !sameID(before.AssignedToID, assignee) {
		uc.notifyAssignee(ctx, t, users, cmd.Actor.ID)
	}

	return dto.ToTicketResponse(t, users), nil
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// notifyAssignee sends the assignment mail without holding up the response.
func (uc *UpdateTicketUseCase) notifyAssignee(ctx context.Context, t *ticket.Ticket, users dto.UserIndex, actorID string) {
	assignee, ok := users[*t.AssignedToID()]
	if !ok {
		return
	}
	assignedBy := actorID
	if actor, ok := users[actorID]; ok {
		assignedBy = actor.FullName()
	}

	notice := email.AssignmentNotice{
		To:           assignee.Email(),
		AssigneeName: assignee.FullName(),
		AssignedBy:   assignedBy,
		TicketID:     t.ID(),
		TicketNumber: t.Number(),
		Title:        t.Title(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
	}

	goroutine.Detached(ctx, uc.logger, "assignment-notice", notifyTimeout, func(ctx context.Context) {
		if err := uc.notifier.NotifyAssignment(ctx, notice); err != nil {
			uc.logger.Warnw("failed to send assignment notice", "ticket_id", notice.TicketID, "to", notice.To, "error", err)
		}
	})
}
