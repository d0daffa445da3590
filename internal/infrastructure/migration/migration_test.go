package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/infrastructure/database"
	"github.com/cloudcare/helpdesk/internal/shared/config"
	"github.com/cloudcare/helpdesk/internal/shared/constants"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

var tables = []string{
	constants.TableUsers,
	constants.TableRefreshTokens,
	constants.TableTickets,
	constants.TableTicketComments,
	constants.TableAttachments,
	constants.TableAuditLogs,
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := database.Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

func TestGooseStrategy_UpAndDown(t *testing.T) {
	conn := openSQLite(t)
	strategy := NewGooseStrategy(logger.NewNop())

	require.NoError(t, strategy.Migrate(conn))
	for _, table := range tables {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}

	version, err := strategy.GetVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// a second run is a no-op
	require.NoError(t, strategy.Migrate(conn))

	require.NoError(t, strategy.MigrateDown(conn, 1))
	for _, table := range tables {
		assert.False(t, conn.Migrator().HasTable(table), table)
	}
}

func TestScriptsExistForEveryDialect(t *testing.T) {
	for _, dialect := range []string{"mysql", "postgres", "sqlite"} {
		entries, err := fs.ReadDir(scripts, ScriptsDir(dialect))
		require.NoError(t, err, dialect)
		assert.NotEmpty(t, entries, dialect)
	}

	_, err := gooseDialect("oracle")
	assert.Error(t, err)
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	conn := openSQLite(t)

	require.NoError(t, NewGormAutoMigrateStrategy(logger.NewNop()).Migrate(conn))
	for _, table := range tables {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestNewManager_ChoosesStrategyByEnvironment(t *testing.T) {
	log := logger.NewNop()

	assert.Equal(t, "gorm_auto_migrate", NewManager(constants.EnvDevelopment, log).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvProduction, log).GetStrategy().GetName())
	assert.Equal(t, "goose", NewManager(constants.EnvTest, log).GetStrategy().GetName())
}

func TestCreate_WritesScript(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Create(dir, "add_ticket_sla"))

	matches, err := filepath.Glob(filepath.Join(dir, "*_add_ticket_sla.sql"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "+goose Up")
}
