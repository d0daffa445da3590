package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/database"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/biztime"
	"github.com/cloudcare/helpdesk/internal/shared/config"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// setupTestDB opens a private in-memory sqlite database with foreign keys on.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := database.Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   "file::memory:",
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

// fixedClock pins biztime to a moving clock that advances one second per call.
func fixedClock(t *testing.T, start time.Time) {
	t.Helper()
	current := start
	restore := biztime.SetClock(func() time.Time {
		current = current.Add(time.Second)
		return current
	})
	t.Cleanup(restore)
}

func createUser(t *testing.T, repo *UserRepository, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "$2a$10$hash", "Test", "User", role)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

type ticketOpt func(*ticket.NewTicketParams)

func withPriority(p vo.Priority) ticketOpt {
	return func(params *ticket.NewTicketParams) { params.Priority = p }
}

func withTags(tags ...string) ticketOpt {
	return func(params *ticket.NewTicketParams) { params.Tags = tags }
}

func withAssignee(id string) ticketOpt {
	return func(params *ticket.NewTicketParams) { params.AssignedToID = &id }
}

func withCategory(c string) ticketOpt {
	return func(params *ticket.NewTicketParams) { params.Category = &c }
}

func createTicket(t *testing.T, repo *TicketRepository, number, title, creatorID string, opts ...ticketOpt) *ticket.Ticket {
	t.Helper()
	params := ticket.NewTicketParams{
		Number:      number,
		Title:       title,
		Description: "Something is broken and needs attention",
		CreatedByID: creatorID,
	}
	for _, opt := range opts {
		opt(&params)
	}

	tk, err := ticket.NewTicket(params)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func newRepos(conn *gorm.DB) (*UserRepository, *TicketRepository, *CommentRepository) {
	log := logger.NewNop()
	return NewUserRepository(conn, log), NewTicketRepository(conn, log), NewCommentRepository(conn, log)
}
