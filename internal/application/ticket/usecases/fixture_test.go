package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/services/markdown"
)

type ticketEnv struct {
	tickets     *mockTicketRepository
	comments    *mockCommentRepository
	attachments *mockAttachmentRepository
	users       *mockUserRepository
	audit       *mockAuditRepository
	numbers     *sequenceNumbers
	notifier    *recordingNotifier
	policy      *access.Policy

	admin, agent, owner, other access.Actor
}

func newTestUser(t *testing.T, id, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "hash", "Test", "Person", role)
	require.NoError(t, err)
	require.NoError(t, u.SetID(id))
	return u
}

func newTicketEnv(t *testing.T) *ticketEnv {
	t.Helper()
	return &ticketEnv{
		tickets:     newMockTicketRepository(),
		comments:    &mockCommentRepository{},
		attachments: &mockAttachmentRepository{},
		users: newMockUserRepository(
			newTestUser(t, "admin-1", "admin@example.com", user.RoleAdmin),
			newTestUser(t, "agent-1", "agent@example.com", user.RoleAgent),
			newTestUser(t, "owner-1", "owner@example.com", user.RoleUser),
			newTestUser(t, "other-1", "other@example.com", user.RoleUser),
		),
		audit:    &mockAuditRepository{},
		numbers:  &sequenceNumbers{numbers: []string{"TCK-A-0001", "TCK-A-0002", "TCK-A-0003"}},
		notifier: newRecordingNotifier(),
		policy:   access.NewPolicy(),
		admin:    access.Actor{ID: "admin-1", Role: user.RoleAdmin},
		agent:    access.Actor{ID: "agent-1", Role: user.RoleAgent},
		owner:    access.Actor{ID: "owner-1", Role: user.RoleUser},
		other:    access.Actor{ID: "other-1", Role: user.RoleUser},
	}
}

func (e *ticketEnv) createUseCase() *CreateTicketUseCase {
	return NewCreateTicketUseCase(e.tickets, e.users, e.audit, e.numbers, nil, logger.NewNop())
}

func (e *ticketEnv) getUseCase() *GetTicketUseCase {
	return NewGetTicketUseCase(e.tickets, e.comments, e.attachments, e.users, e.policy, markdown.NewRenderer(), logger.NewNop())
}

func (e *ticketEnv) updateUseCase() *UpdateTicketUseCase {
	return NewUpdateTicketUseCase(e.tickets, e.users, e.audit, e.policy, e.notifier, logger.NewNop())
}

func (e *ticketEnv) deleteUseCase() *DeleteTicketUseCase {
	return NewDeleteTicketUseCase(e.tickets, e.audit, e.policy, nil, logger.NewNop())
}

func (e *ticketEnv) commentUseCase() *AddCommentUseCase {
	return NewAddCommentUseCase(e.tickets, e.comments, e.users, e.policy, markdown.NewRenderer(), nil, logger.NewNop())
}

// openTicket creates a ticket owned by actor through the create use case.
func (e *ticketEnv) openTicket(t *testing.T, actor access.Actor) *dto.TicketResponse {
	t.Helper()
	resp, err := e.createUseCase().Execute(context.Background(), CreateTicketCommand{
		Actor:       actor,
		Title:       "Printer on fire",
		Description: "The office printer started smoking this morning",
	})
	require.NoError(t, err)
	return resp
}
