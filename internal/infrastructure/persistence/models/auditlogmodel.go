package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
)

// AuditLogModel rows are inserted only; entity ids are kept after the entity is deleted.
type AuditLogModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Action    string         `gorm:"size:20;not null"`
	Entity    string         `gorm:"size:50;not null;index:idx_audit_entity"`
	EntityID  string         `gorm:"size:36;not null;index:idx_audit_entity"`
	UserID    string         `gorm:"size:36;not null;index"`
	Changes   datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time      `gorm:"index"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
