package ticket

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/application/ticket/usecases"
	"github.com/cloudcare/helpdesk/internal/domain/access"
)

type mockCreateTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketResponse, error)
}

func (m *mockCreateTicketUC) Execute(ctx context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockGetTicketUC struct {
	ExecuteFunc func(ctx context.Context, q usecases.GetTicketQuery) (*dto.TicketDetailResponse, error)
}

func (m *mockGetTicketUC) Execute(ctx context.Context, q usecases.GetTicketQuery) (*dto.TicketDetailResponse, error) {
	return m.ExecuteFunc(ctx, q)
}

type mockListTicketsUC struct {
	ExecuteFunc func(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error)
}

func (m *mockListTicketsUC) Execute(ctx context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
	return m.ExecuteFunc(ctx, q)
}

type mockStatsUC struct {
	ExecuteFunc func(ctx context.Context, actor access.Actor) (*dto.StatsResponse, error)
}

func (m *mockStatsUC) Execute(ctx context.Context, actor access.Actor) (*dto.StatsResponse, error) {
	return m.ExecuteFunc(ctx, actor)
}

type mockUpdateTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketResponse, error)
}

func (m *mockUpdateTicketUC) Execute(ctx context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}

type mockDeleteTicketUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.DeleteTicketCommand) error
}

func (m *mockDeleteTicketUC) Execute(ctx context.Context, cmd usecases.DeleteTicketCommand) error {
	return m.ExecuteFunc(ctx, cmd)
}

type mockAddCommentUC struct {
	ExecuteFunc func(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentResponse, error)
}

func (m *mockAddCommentUC) Execute(ctx context.Context, cmd usecases.AddCommentCommand) (*dto.CommentResponse, error) {
	return m.ExecuteFunc(ctx, cmd)
}
