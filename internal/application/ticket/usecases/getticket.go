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
	"github.com/cloudcare/helpdesk/internal/shared/services/markdown"
)

type GetTicketQuery struct {
	Actor    access.Actor
	TicketID string
}

// GetTicketUseCase returns a ticket with its comments and attachments.
// Internal comments are dropped for actors who may not read them.
type GetTicketUseCase struct {
	ticketRepo     ticket.Repository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	userRepo       user.Repository
	policy         *access.Policy
	renderer       markdown.Renderer
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	userRepo user.Repository,
	policy *access.Policy,
	renderer markdown.Renderer,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		policy:         policy,
		renderer:       renderer,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, q GetTicketQuery) (*dto.TicketDetailResponse, error) {
	t, err := loadVisible(ctx, uc.ticketRepo, uc.policy, q.Actor, q.TicketID)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID(), uc.policy.SeesInternalComments(q.Actor, t))
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	comments = uc.policy.VisibleComments(q.Actor, t, comments)

	attachments, err := uc.attachmentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list attachments", "ticket_id", t.ID(), "error", err)
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	ids := participantIDs(t)
	ids = append(ids, mapper.Keys(comments, (*ticket.Comment).AuthorID)...)
	ids = append(ids, mapper.Keys(attachments, func(a *ticket.Attachment) string { return a.UploadedByID })...)
	users, err := loadUsers(ctx, uc.userRepo, mapper.Keys(ids, func(id string) string { return id }))
	if err != nil {
		return nil, err
	}

	resp := &dto.TicketDetailResponse{
		TicketResponse: *dto.ToTicketResponse(t, users),
		Comments:       make([]*dto.CommentResponse, 0, len(comments)),
		Attachments:    make([]*dto.AttachmentResponse, 0, len(attachments)),
	}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, dto.ToCommentResponse(c, renderContent(uc.renderer, uc.logger, c), users))
	}
	for _, a := range attachments {
		resp.Attachments = append(resp.Attachments, dto.ToAttachmentResponse(a, users))
	}
	return resp, nil
}
