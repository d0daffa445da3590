package seed

import (
	"context"
	"fmt"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

// ============================================================================
// Repositories
// ============================================================================

type mockUserRepository struct {
	byEmail map[string]*user.User
	nextID  int

	CreateFunc func(ctx context.Context, u *user.User) error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{byEmail: make(map[string]*user.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, u); err != nil {
			return err
		}
	}
	m.nextID++
	if err := u.SetID(fmt.Sprintf("user-%d", m.nextID)); err != nil {
		return err
	}
	m.byEmail[u.Email()] = u
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range m.byEmail {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, _ := m.GetByID(ctx, id); u != nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*user.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepository) Update(_ context.Context, u *user.User) error {
	m.byEmail[u.Email()] = u
	return nil
}

type mockTicketRepository struct {
	byNumber map[string]*ticket.Ticket
	nextID   int
}

func newMockTicketRepository() *mockTicketRepository {
	return &mockTicketRepository{byNumber: make(map[string]*ticket.Ticket)}
}

func (m *mockTicketRepository) Create(_ context.Context, t *ticket.Ticket) error {
	if _, ok := m.byNumber[t.Number()]; ok {
		return errors.NewConflictError("Ticket number already exists", t.Number())
	}
	m.nextID++
	if err := t.SetID(fmt.Sprintf("ticket-%d", m.nextID)); err != nil {
		return err
	}
	m.byNumber[t.Number()] = t
	return nil
}

func (m *mockTicketRepository) GetByID(context.Context, string) (*ticket.Ticket, error) {
	return nil, nil
}

func (m *mockTicketRepository) Update(context.Context, *ticket.Ticket) error {
	return nil
}

func (m *mockTicketRepository) Delete(context.Context, string) (bool, error) {
	return false, nil
}

func (m *mockTicketRepository) List(context.Context, ticket.ListFilter) ([]*ticket.ListEntry, int64, error) {
	return nil, 0, nil
}

func (m *mockTicketRepository) Stats(context.Context, ticket.Scope) (*ticket.Stats, error) {
	return &ticket.Stats{}, nil
}

// ============================================================================
// Hasher
// ============================================================================

type mockHasher struct {
	calls int
}

func (h *mockHasher) Hash(password string) (string, error) {
	h.calls++
	return "hashed:" + password, nil
}
