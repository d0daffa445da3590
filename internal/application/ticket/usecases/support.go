package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/services/markdown"
)

// loadUsers fetches every referenced user in one query.
func loadUsers(ctx context.Context, repo user.Repository, ids []string) (dto.UserIndex, error) {
	if len(ids) == 0 {
		return dto.UserIndex{}, nil
	}
	users, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return dto.NewUserIndex(users), nil
}

func participantIDs(t *ticket.Ticket) []string {
	ids := []string{t.CreatedByID()}
	if a := t.AssignedToID(); a != nil {
		ids = append(ids, *a)
	}
	return ids
}

// loadVisible fetches the ticket and checks the actor may see it.
func loadVisible(ctx context.Context, repo ticket.Repository, policy *access.Policy, actor access.Actor, id string) (*ticket.Ticket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("Ticket not found")
	}
	if err := policy.CanView(actor, t); err != nil {
		return nil, err
	}
	return t, nil
}

// recordAudit appends an audit entry. Failures are logged and swallowed so
// a committed mutation is never reported as failed.
func recordAudit(ctx context.Context, repo audit.Repository, log logger.Interface, action audit.Action, ticketID, userID string, changes any) {
	entry, err := audit.NewEntry(action, audit.EntityTicket, ticketID, userID, changes)
	if err == nil {
		err = repo.Append(ctx, entry)
	}
	if err != nil {
		log.Errorw("failed to write audit entry",
			"action", action,
			"ticket_id", ticketID,
			"user_id", userID,
			"error", err,
		)
	}
}

// renderContent returns sanitised HTML, or an empty string when rendering fails.
func renderContent(r markdown.Renderer, log logger.Interface, c *ticket.Comment) string {
	html, err := r.Render(c.Content())
	if err != nil {
		log.Warnw("failed to render comment", "comment_id", c.ID(), "error", err)
		return ""
	}
	return html
}
