package usecases

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type GetTicketStatsUseCase struct {
	ticketRepo ticket.Repository
	policy     *access.Policy
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(ticketRepo ticket.Repository, policy *access.Policy, logger logger.Interface) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		policy:     policy,
		logger:     logger,
	}
}

// Execute counts tickets in the same scope the actor lists.
func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, actor access.Actor) (*dto.StatsResponse, error) {
	stats, err := uc.ticketRepo.Stats(ctx, uc.policy.ListScope(actor))
	if err != nil {
		uc.logger.Errorw("failed to compute ticket stats", "error", err)
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}
	return dto.ToStatsResponse(stats), nil
}
