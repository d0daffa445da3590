package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

// =============================================================================
// Test helpers
// =============================================================================

var (
	creator  = Actor{ID: "creator", Role: user.RoleUser}
	assignee = Actor{ID: "assignee", Role: user.RoleUser}
	stranger = Actor{ID: "stranger", Role: user.RoleUser}
	agent    = Actor{ID: "agent", Role: user.RoleAgent}
	admin    = Actor{ID: "admin", Role: user.RoleAdmin}
)

func ptr[T any](v T) *T {
	return &v
}

func newTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(ticket.NewTicketParams{
		Number:       "TCK-1-AAAA",
		Title:        "Cannot log in",
		Description:  "Login page returns an error",
		CreatedByID:  creator.ID,
		AssignedToID: ptr(assignee.ID),
	})
	require.NoError(t, err)
	require.NoError(t, tk.SetID("ticket-1"))
	return tk
}

func comments(t *testing.T) []*ticket.Comment {
	t.Helper()
	public, err := ticket.NewComment("ticket-1", "creator", "Any news?", false)
	require.NoError(t, err)
	internal, err := ticket.NewComment("ticket-1", "agent", "Escalating to infra", true)
	require.NoError(t, err)
	return []*ticket.Comment{public, internal}
}

// =============================================================================
// View Tests
// =============================================================================

func TestPolicy_CanView(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	for _, a := range []Actor{creator, assignee, agent, admin} {
		assert.NoError(t, p.CanView(a, tk), a.ID)
	}

	err := p.CanView(stranger, tk)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestPolicy_UnknownRoleDenied(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	ghost := Actor{ID: creator.ID, Role: user.Role("GUEST")}
	assert.Equal(t, Deny, p.Decide(ghost, tk, OpView))
	assert.Equal(t, Deny, p.Decide(admin, tk, Operation("bogus")))
}

// =============================================================================
// Update Tests
// =============================================================================

func TestPolicy_AuthorizeUpdate_UserCreatorEditsContent(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	patch := ticket.Patch{Title: ptr("Still cannot log in"), Priority: ptr(vo.PriorityHigh)}
	allowed, err := p.AuthorizeUpdate(creator, tk, patch)
	require.NoError(t, err)
	assert.Equal(t, patch, allowed)
}

func TestPolicy_AuthorizeUpdate_UserStatusAndAssigneeIgnored(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	patch := ticket.Patch{
		Title:        ptr("Still cannot log in"),
		Status:       ptr(vo.StatusClosed),
		AssignedToID: ptr("someone"),
	}
	allowed, err := p.AuthorizeUpdate(creator, tk, patch)
	require.NoError(t, err)
	assert.Equal(t, []ticket.Field{ticket.FieldTitle}, allowed.Fields())
}

func TestPolicy_AuthorizeUpdate_UserAssigneeForbidden(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	_, err := p.AuthorizeUpdate(assignee, tk, ticket.Patch{Title: ptr("Changed title")})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestPolicy_AuthorizeUpdate_StrangerForbidden(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	_, err := p.AuthorizeUpdate(stranger, tk, ticket.Patch{Status: ptr(vo.StatusClosed)})
	assert.True(t, errors.IsForbiddenError(err))
}

func TestPolicy_AuthorizeUpdate_StaffChangesEverything(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	patch := ticket.Patch{Status: ptr(vo.StatusResolved), AssignedToID: ptr("agent"), Title: ptr("Login fixed")}
	for _, a := range []Actor{agent, admin} {
		allowed, err := p.AuthorizeUpdate(a, tk, patch)
		require.NoError(t, err)
		assert.Equal(t, patch, allowed)
	}
}

// =============================================================================
// Delete Tests
// =============================================================================

func TestPolicy_CanDelete(t *testing.T) {
	p := NewPolicy()

	assert.NoError(t, p.CanDelete(admin))
	assert.True(t, errors.IsForbiddenError(p.CanDelete(agent)))
	assert.True(t, errors.IsForbiddenError(p.CanDelete(creator)))
}

// =============================================================================
// Comment Tests
// =============================================================================

func TestPolicy_CanComment(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)

	assert.NoError(t, p.CanComment(creator, tk, false))
	assert.NoError(t, p.CanComment(assignee, tk, false))
	assert.NoError(t, p.CanComment(agent, tk, true))
	assert.NoError(t, p.CanComment(admin, tk, true))

	assert.True(t, errors.IsForbiddenError(p.CanComment(creator, tk, true)))
	assert.True(t, errors.IsForbiddenError(p.CanComment(stranger, tk, false)))
	assert.True(t, errors.IsForbiddenError(p.CanComment(stranger, tk, true)))
}

func TestPolicy_VisibleComments(t *testing.T) {
	p := NewPolicy()
	tk := newTicket(t)
	all := comments(t)

	forUser := p.VisibleComments(creator, tk, all)
	require.Len(t, forUser, 1)
	assert.False(t, forUser[0].IsInternal())

	assert.Len(t, p.VisibleComments(agent, tk, all), 2)
	assert.Len(t, p.VisibleComments(admin, tk, all), 2)
}

// =============================================================================
// Scope Tests
// =============================================================================

func TestPolicy_ListScope(t *testing.T) {
	p := NewPolicy()

	assert.Equal(t, ticket.Scope{ParticipantID: "creator"}, p.ListScope(creator))
	assert.False(t, p.ListScope(agent).IsRestricted())
	assert.False(t, p.ListScope(admin).IsRestricted())
}

func TestRelationsOf(t *testing.T) {
	tk := newTicket(t)

	assert.Equal(t, []Relation{RelationCreator}, RelationsOf("creator", tk))
	assert.Equal(t, []Relation{RelationAssignee}, RelationsOf("assignee", tk))
	assert.Equal(t, []Relation{RelationNone}, RelationsOf("stranger", tk))
	assert.Equal(t, []Relation{RelationNone}, RelationsOf("creator", nil))
}

// =============================================================================
// Grant Tests
// =============================================================================

func TestPolicy_Grants(t *testing.T) {
	grants := NewPolicy().Grants()

	has := func(role user.Role, op Operation) bool {
		for _, g := range grants {
			if g.Role == role && g.Operation == op {
				return true
			}
		}
		return false
	}

	assert.True(t, has(user.RoleAdmin, OpDelete))
	assert.False(t, has(user.RoleAgent, OpDelete))
	assert.False(t, has(user.RoleUser, OpDelete))
	assert.True(t, has(user.RoleUser, OpView))
	assert.True(t, has(user.RoleUser, OpUpdate))
	assert.False(t, has(user.RoleUser, OpCommentInternal))
	assert.False(t, has(user.RoleUser, EditOp(ticket.FieldStatus)))
	assert.True(t, has(user.RoleAgent, EditOp(ticket.FieldStatus)))
}
