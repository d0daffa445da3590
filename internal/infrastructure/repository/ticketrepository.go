package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	apperrors "github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// TicketRepository implements ticket.Repository on gorm.
type TicketRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) *TicketRepository {
	return &TicketRepository{
		db:     db,
		logger: logger,
	}
}

var _ ticket.Repository = (*TicketRepository)(nil)

// Create inserts the ticket and assigns its id. A taken ticket number is
// reported as a conflict so callers can renumber and retry.
func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model, err := mappers.TicketToModel(t)
	if err != nil {
		return err
	}
	model.ID = uuid.NewString()

	if err := db.GetTxFromContext(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("Ticket number already exists", model.TicketNumber)
		}
		r.logger.Errorw("failed to create ticket", "number", model.TicketNumber, "error", err)
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set ticket ID: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get ticket", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	entity, err := mappers.TicketToDomain(&model)
	if err != nil {
		return nil, fmt.Errorf("failed to map ticket: %w", err)
	}
	return entity, nil
}

// Update writes every mutable column. Number, creator and createdAt never change.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model, err := mappers.TicketToModel(t)
	if err != nil {
		return err
	}

	err = db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":          model.Title,
			"description":    model.Description,
			"priority":       model.Priority,
			"status":         model.Status,
			"category":       model.Category,
			"tags":           model.Tags,
			"assigned_to_id": model.AssignedToID,
			"due_date":       model.DueDate,
			"closed_at":      model.ClosedAt,
			"updated_at":     model.UpdatedAt,
		}).Error
	if err != nil {
		r.logger.Errorw("failed to update ticket", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for comments and attachments.
func (r *TicketRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.TicketModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete ticket", "id", id, "error", result.Error)
		return false, fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// List filters, counts, sorts and pages in the database, then loads the
// comment and attachment counts of the page in two grouped queries.
func (r *TicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.ListEntry, int64, error) {
	filter = filter.Normalize()
	conn := db.GetTxFromContext(ctx, r.db)

	var total int64
	if err := r.filtered(conn, filter).Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	if int64(filter.Offset()) >= total {
		return []*ticket.ListEntry{}, total, nil
	}

	var rows []models.TicketModel
	err := r.filtered(conn, filter).
		Order(orderClause(filter.SortBy, filter.Direction())).
		Scopes(db.Paginate(filter.PageFilter)).
		Find(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	if len(rows) == 0 {
		return []*ticket.ListEntry{}, total, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	commentCounts, err := countByTicket(conn, &models.CommentModel{}, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}
	attachmentCounts, err := countByTicket(conn, &models.AttachmentModel{}, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count attachments: %w", err)
	}

	entries := make([]*ticket.ListEntry, 0, len(rows))
	for i := range rows {
		entity, err := mappers.TicketToDomain(&rows[i])
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map ticket: %w", err)
		}
		entries = append(entries, &ticket.ListEntry{
			Ticket:          entity,
			CommentCount:    commentCounts[rows[i].ID],
			AttachmentCount: attachmentCounts[rows[i].ID],
		})
	}

	return entries, total, nil
}

func (r *TicketRepository) filtered(conn *gorm.DB, filter ticket.ListFilter) *gorm.DB {
	return conn.Model(&models.TicketModel{}).Scopes(
		scopeVisibleTo(filter.Scope),
		filterTickets(conn.Dialector.Name(), filter),
		db.CreatedBetween("tickets.created_at", filter.StartDate, filter.EndDate),
	)
}

type ticketCount struct {
	TicketID string
	Count    int64
}

func countByTicket(conn *gorm.DB, model interface{}, ids []string) (map[string]int64, error) {
	var counts []ticketCount
	err := conn.Model(model).
		Select("ticket_id, COUNT(*) AS count").
		Where("ticket_id IN ?", ids).
		Group("ticket_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(counts))
	for _, c := range counts {
		out[c.TicketID] = c.Count
	}
	return out, nil
}

type statsRow struct {
	Total      int64
	Open       int64
	InProgress int64
	Resolved   int64
	Closed     int64
	High       int64
	Critical   int64
}

// Stats computes every counter in one conditional aggregation.
func (r *TicketRepository) Stats(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
	var row statsRow
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).
		Scopes(scopeVisibleTo(scope)).
		Select(statsSelect, statsArgs...).
		Scan(&row).Error
	if err != nil {
		r.logger.Errorw("failed to compute ticket stats", "error", err)
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}

	return &ticket.Stats{
		Total:      row.Total,
		Open:       row.Open,
		InProgress: row.InProgress,
		Resolved:   row.Resolved,
		Closed:     row.Closed,
		High:       row.High,
		Critical:   row.Critical,
	}, nil
}
