package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudcare/helpdesk/internal/application/auth/helpers"
	"github.com/cloudcare/helpdesk/internal/domain/user"
)

// ============================================================================
// User repository
// ============================================================================

type mockUserRepository struct {
	mu      sync.Mutex
	users   map[string]*user.User
	nextID  int
	updated int

	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc     func(ctx context.Context, u *user.User) error
}

func newMockUserRepository(users ...*user.User) *mockUserRepository {
	m := &mockUserRepository{users: make(map[string]*user.User)}
	for _, u := range users {
		m.users[u.ID()] = u
	}
	return m
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := u.SetID(fmt.Sprintf("user-%d", m.nextID)); err != nil {
		return err
	}
	m.users[u.ID()] = u
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id], nil
}

func (m *mockUserRepository) GetByIDs(_ context.Context, ids []string) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*user.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updated++
	m.users[u.ID()] = u
	return nil
}

// ============================================================================
// Password hasher
// ============================================================================

// mockHasher "hashes" by prefixing, which keeps assertions readable.
// Hashes with the "legacy:" prefix verify but need a rehash.
type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (mockHasher) Verify(password, hash string) error {
	if hash != "hashed:"+password && hash != "legacy:"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

func (mockHasher) NeedsRehash(hash string) bool {
	return strings.HasPrefix(hash, "legacy:")
}

// ============================================================================
// Token issuer
// ============================================================================

type mockTokenIssuer struct {
	issued     []string
	revoked    []string
	revokedAll []string

	RefreshFunc   func(ctx context.Context, presented string) (*helpers.TokenPair, error)
	RevokeAllFunc func(ctx context.Context, userID string) error
}

func (m *mockTokenIssuer) Issue(_ context.Context, u *user.User) (*helpers.TokenPair, error) {
	m.issued = append(m.issued, u.ID())
	return &helpers.TokenPair{
		AccessToken:  "access-" + u.ID(),
		RefreshToken: "refresh-" + u.ID(),
		ExpiresIn:    900,
		TokenType:    helpers.TokenTypeBearer,
	}, nil
}

func (m *mockTokenIssuer) Refresh(ctx context.Context, presented string) (*helpers.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, presented)
	}
	return nil, nil
}

func (m *mockTokenIssuer) Revoke(_ context.Context, refreshToken string) error {
	m.revoked = append(m.revoked, refreshToken)
	return nil
}

func (m *mockTokenIssuer) RevokeAll(ctx context.Context, userID string) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	m.revokedAll = append(m.revokedAll, userID)
	return nil
}

// ============================================================================
// Transactor
// ============================================================================

type mockTransactor struct {
	calls int
}

func (m *mockTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func newTestUser(id, email, password string, role user.Role) *user.User {
	u, err := user.NewUser(email, "hashed:"+password, "Test", "User", role)
	if err != nil {
		panic(err)
	}
	if err := u.SetID(id); err != nil {
		panic(err)
	}
	return u
}
