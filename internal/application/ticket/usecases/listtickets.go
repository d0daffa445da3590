package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/mapper"
	"github.com/cloudcare/helpdesk/internal/shared/query"
)

type ListTicketsQuery struct {
	Actor  access.Actor
	Filter ticket.ListFilter
}

type ListTicketsResult struct {
	Tickets []*dto.TicketResponse
	Meta    query.PageMeta
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	policy     *access.Policy
	logger     logger.Interface
}

func NewListTicketsUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	policy *access.Policy,
	logger logger.Interface,
) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Execute lists one page. The actor's scope is applied on top of every
// requested filter, so callers cannot widen it.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, q ListTicketsQuery) (*ListTicketsResult, error) {
	filter := q.Filter.Normalize()
	filter.Scope = uc.policy.ListScope(q.Actor)

	entries, total, err := uc.ticketRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	var ids []string
	for _, e := range entries {
		ids = append(ids, participantIDs(e.Ticket)...)
	}
	users, err := loadUsers(ctx, uc.userRepo, mapper.Keys(ids, func(id string) string { return id }))
	if err != nil {
		return nil, err
	}

	return &ListTicketsResult{
		Tickets: mapper.MapSlice(entries, func(e *ticket.ListEntry) *dto.TicketResponse {
			return dto.ToListItemResponse(e, users)
		}),
		Meta: query.NewPageMeta(filter.PageFilter, total),
	}, nil
}
