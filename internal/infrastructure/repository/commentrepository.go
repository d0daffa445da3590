package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/mapper"
)

type CommentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCommentRepository(db *gorm.DB, logger logger.Interface) *CommentRepository {
	return &CommentRepository{
		db:     db,
		logger: logger,
	}
}

var _ ticket.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, comment *ticket.Comment) error {
	model := mappers.CommentToModel(comment)
	model.ID = uuid.NewString()

	if err := db.GetTxFromContext(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create comment", "ticket_id", model.TicketID, "error", err)
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return comment.SetID(model.ID)
}

func (r *CommentRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]*ticket.Comment, error) {
	query := db.GetTxFromContext(ctx, r.db).Where("ticket_id = ?", ticketID)
	if !includeInternal {
		query = query.Where("is_internal = ?", false)
	}

	var rows []models.CommentModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return mapper.MapSliceWithError(rows, func(m models.CommentModel) (*ticket.Comment, error) {
		return mappers.CommentToDomain(&m)
	})
}

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

var _ ticket.AttachmentRepository = (*AttachmentRepository)(nil)

func (r *AttachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]*ticket.Attachment, error) {
	var rows []models.AttachmentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	return mapper.MapSlice(rows, func(m models.AttachmentModel) *ticket.Attachment {
		return mappers.AttachmentToDomain(&m)
	}), nil
}
