package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate for development and the goose scripts
// everywhere else.
func NewManager(environment string, log logger.Interface) *Manager {
	var strategy Strategy
	if strings.EqualFold(environment, constants.EnvDevelopment) {
		strategy = NewGormAutoMigrateStrategy(log)
	} else {
		strategy = NewGooseStrategy(log)
	}
	return NewManagerWithStrategy(strategy, log)
}

func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
