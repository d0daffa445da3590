package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/email"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

// ============================================================================
// Ticket repositories
// ============================================================================

type mockTicketRepository struct {
	mu      sync.Mutex
	tickets map[string]*ticket.Ticket
	taken   map[string]bool
	nextID  int
	updates int

	CreateFunc func(ctx context.Context, t *ticket.Ticket) error
	ListFunc   func(ctx context.Context, filter ticket.ListFilter) ([]*ticket.ListEntry, int64, error)
	StatsFunc  func(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error)
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{
		tickets: make(map[string]*ticket.Ticket),
		taken:   make(map[string]bool),
	}
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, t); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.taken[t.Number()] {
		return errors.NewConflictError("Ticket number already exists", t.Number())
	}
	m.nextID++
	if err := t.SetID(fmt.Sprintf("ticket-%d", m.nextID)); err != nil {
		return err
	}
	m.taken[t.Number()] = true
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) GetByID(_ context.Context, id string) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tickets[id], nil
}

func (m *mockTicketRepository) Update(_ context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.tickets[t.ID()] = t
	return nil
}

func (m *mockTicketRepository) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tickets[id]
	delete(m.tickets, id)
	return ok, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.ListEntry, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) Stats(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, scope)
	}
	return &ticket.Stats{}, nil
}

type mockCommentRepository struct {
	comments []*ticket.Comment
	nextID   int
	// includeInternal records the flag of the last ListByTicket call
	includeInternal *bool
}

func (m *mockCommentRepository) Create(_ context.Context, c *ticket.Comment) error {
	m.nextID++
	if err := c.SetID(fmt.Sprintf("comment-%d", m.nextID)); err != nil {
		return err
	}
	m.comments = append(m.comments, c)
	return nil
}

func (m *mockCommentRepository) ListByTicket(_ context.Context, ticketID string, includeInternal bool) ([]*ticket.Comment, error) {
	m.includeInternal = &includeInternal
	var out []*ticket.Comment
	for _, c := range m.comments {
		if c.TicketID() == ticketID {
			out = append(out, c)
		}
	}
	return out, nil
}

type mockAttachmentRepository struct {
	attachments []*ticket.Attachment
}

func (m *mockAttachmentRepository) ListByTicket(_ context.Context, ticketID string) ([]*ticket.Attachment, error) {
	var out []*ticket.Attachment
	for _, a := range m.attachments {
		if a.TicketID == ticketID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ============================================================================
// Users, audit, numbers, notifier
// ============================================================================

type mockUserRepository struct {
	users map[string]*user.User
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(context.Context, *user.User) error { return nil }

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(context.Context, string) (*user.User, error) { return nil, nil }

func (m *mockUserRepository) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

func (m *mockUserRepository) Update(context.Context, *user.User) error { return nil }

type mockAuditRepository struct {
	entries []*audit.Entry

	AppendFunc func(ctx context.Context, entry *audit.Entry) error
}

func (m *mockAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, entry)
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditRepository) ListByEntity(_ context.Context, entity, entityID string) ([]*audit.Entry, error) {
	var out []*audit.Entry
	for _, e := range m.entries {
		if e.Entity == entity && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// sequenceNumbers hands out the given numbers in order.
type sequenceNumbers struct {
	numbers []string
	calls   int
}

func (s *sequenceNumbers) Generate(context.Context) (string, error) {
	n := s.numbers[s.calls%len(s.numbers)]
	s.calls++
	return n, nil
}

type recordingNotifier struct {
	sent chan email.AssignmentNotice
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan email.AssignmentNotice, 4)}
}

func (n *recordingNotifier) NotifyAssignment(_ context.Context, notice email.AssignmentNotice) error {
	n.sent <- notice
	return nil
}
