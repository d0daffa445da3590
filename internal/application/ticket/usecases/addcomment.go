package usecases

import (
	"context"
	"strings"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/metrics"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/services/markdown"
)

type AddCommentCommand struct {
	Actor      access.Actor
	TicketID   string
	Content    string
	IsInternal bool
}

type AddCommentUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	policy      *access.Policy
	renderer    markdown.Renderer
	metrics     *metrics.Metrics
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	policy *access.Policy,
	renderer markdown.Renderer,
	m *metrics.Metrics,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		policy:      policy,
		renderer:    renderer,
		metrics:     m,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentResponse, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.ID)

	t, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewNotFoundError("Ticket not found")
	}
	if err := uc.policy.CanComment(cmd.Actor, t, cmd.IsInternal); err != nil {
		uc.logger.Warnw("comment denied", "ticket_id", t.ID(), "user_id", cmd.Actor.ID, "internal", cmd.IsInternal)
		return nil, err
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Actor.ID, strings.TrimSpace(cmd.Content), cmd.IsInternal)
	if err != nil {
		return nil, err
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", t.ID(), "error", err)
		return nil, err
	}
	uc.metrics.CommentAdded()

	users, err := loadUsers(ctx, uc.userRepo, []string{cmd.Actor.ID})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("comment added", "ticket_id", t.ID(), "comment_id", comment.ID())

	return dto.ToCommentResponse(comment, renderContent(uc.renderer, uc.logger, comment), users), nil
}
