package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/db"
	"github.com/cloudcare/helpdesk/internal/shared/mapper"
)

// AuditRepository only inserts and reads; there is no update or delete path.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ audit.Repository = (*AuditRepository)(nil)

func (r *AuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	model := mappers.AuditEntryToModel(entry)
	model.ID = uuid.NewString()

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	entry.ID = model.ID
	return nil
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entity, entityID string) ([]*audit.Entry, error) {
	var rows []models.AuditLogModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return mapper.MapSlice(rows, func(m models.AuditLogModel) *audit.Entry {
		return mappers.AuditEntryToDomain(&m)
	}), nil
}
