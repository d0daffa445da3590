package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// GormAutoMigrateStrategy derives the schema from the persistence models.
// Used in development where the scripts may lag behind model changes.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	if err := db.AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed", "models_count", len(all))
	return nil
}
