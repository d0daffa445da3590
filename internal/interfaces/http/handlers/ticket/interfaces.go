package ticket

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/application/ticket/usecases"
	"github.com/cloudcare/helpdesk/internal/domain/access"
)

// Use case interfaces for TicketHandler - enables unit testing with mocks.

type CreateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketResponse, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, q usecases.GetTicketQuery) (*dto.TicketDetailResponse, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

type GetTicketStatsExecutor interface {
	Execute(ctx context.Context, actor access.Actor) (*dto.StatsResponse, error)
}

type UpdateTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketResponse, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentResponse, error)
}
