package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/metrics"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// maxNumberAttempts bounds renumbering after ticket number collisions.
const maxNumberAttempts = 5

type CreateTicketCommand struct {
	Actor       access.Actor
	Title       string
	Description string
	Priority    string
	Category    *string
	Tags        []string
	DueDate     *time.Time
}

type CreateTicketUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	auditRepo  audit.Repository
	numbers    ticket.NumberGenerator
	metrics    *metrics.Metrics
	logger     logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	auditRepo audit.Repository,
	numbers ticket.NumberGenerator,
	m *metrics.Metrics,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		numbers:    numbers,
		metrics:    m,
		logger:     logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketResponse, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "creator_id", cmd.Actor.ID)

	priority := vo.DefaultPriority
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		priority = p
	}

	var category *string
	if cmd.Category != nil {
		c := strings.TrimSpace(*cmd.Category)
		category = &c
	}

	number, err := uc.numbers.Generate(ctx)
	if err != nil {
		return nil, err
	}

	newTicket, err := ticket.NewTicket(ticket.NewTicketParams{
		Number:      number,
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		Priority:    priority,
		Category:    category,
		Tags:        cmd.Tags,
		CreatedByID: cmd.Actor.ID,
		DueDate:     cmd.DueDate,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.insert(ctx, newTicket); err != nil {
		return nil, err
	}

	recordAudit(ctx, uc.auditRepo, uc.logger, audit.ActionCreate, newTicket.ID(), cmd.Actor.ID,
		audit.SnapshotChanges[ticket.Snapshot]{Ticket: newTicket.Snapshot()})
	uc.metrics.TicketCreated()

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	users, err := loadUsers(ctx, uc.userRepo, participantIDs(newTicket))
	if err != nil {
		return nil, err
	}
	return dto.ToTicketResponse(newTicket, users), nil
}

// insert retries with a fresh number while the number is taken.
func (uc *CreateTicketUseCase) insert(ctx context.Context, t *ticket.Ticket) error {
	for attempt := 1; ; attempt++ {
		err := uc.ticketRepo.Create(ctx, t)
		if err == nil {
			return nil
		}
		if !errors.IsConflictError(err) || attempt == maxNumberAttempts {
			uc.logger.Errorw("failed to save ticket", "number", t.Number(), "attempt", attempt, "error", err)
			return err
		}

		uc.logger.Warnw("ticket number taken, renumbering", "number", t.Number(), "attempt", attempt)
		number, err := uc.numbers.Generate(ctx)
		if err != nil {
			return err
		}
		if err := t.Renumber(number); err != nil {
			return fmt.Errorf("failed to renumber ticket: %w", err)
		}
	}
}
