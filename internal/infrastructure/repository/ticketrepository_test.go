package repository

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/query"
)

func numbersOf(entries []*ticket.ListEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Ticket.Number())
	}
	return out
}

// =====================================================================
// Create / GetByID / Update
// =====================================================================

func TestTicketRepository_CreateAndGet(t *testing.T) {
	conn := setupTestDB(t)
	users, tickets, _ := newRepos(conn)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", user.RoleUser)
	tk := createTicket(t, tickets, "TCK-1", "Printer is on fire", owner.ID(),
		withPriority(vo.PriorityHigh), withTags("hardware", "urgent"), withCategory("Office"))
	assert.NotEmpty(t, tk.ID())

	found, err := tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "TCK-1", found.Number())
	assert.Equal(t, vo.PriorityHigh, found.Priority())
	assert.Equal(t, vo.StatusOpen, found.Status())
	assert.Equal(t, []string{"hardware", "urgent"}, found.Tags())
	require.NotNil(t, found.Category())
	assert.Equal(t, "Office", *found.Category())
	assert.Nil(t, found.AssignedToID())

	missing, err := tickets.GetByID(ctx, "no-such-id")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_DuplicateNumberIsConflict(t *testing.T) {
	conn := setupTestDB(t)
	users, tickets, _ := newRepos(conn)

	owner := createUser(t, users, "owner@example.com", user.RoleUser)
	createTicket(t, tickets, "TCK-DUP", "First ticket title", owner.ID())

	second, err := ticket.NewTicket(ticket.NewTicketParams{
		Number:      "TCK-DUP",
		Title:       "Second ticket title",
		Description: "Another description here",
		CreatedByID: owner.ID(),
	})
	require.NoError(t, err)

	err = tickets.Create(context.Background(), second)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
	assert.Empty(t, second.ID())
}

func TestTicketRepository_Update(t *testing.T) {
	conn := setupTestDB(t)
	users, tickets, _ := newRepos(conn)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", user.RoleUser)
	agent := createUser(t, users, "agent@example.com", user.RoleAgent)
	tk := createTicket(t, tickets, "TCK-1", "Cannot log in", owner.ID())

	resolved := vo.StatusResolved
	assignee := agent.ID()
	tags := []string{"auth"}
	require.NoError(t, tk.Apply(ticket.Patch{Status: &resolved, AssignedToID: &assignee, Tags: &tags}))
	require.NoError(t, tickets.Update(ctx, tk))

	found, err := tickets.GetByID(ctx, tk.ID())
	require.NoError(t, err)
	assert.Equal(t, vo.StatusResolved, found.Status())
	require.NotNil(t, found.AssignedToID())
	assert.Equal(t, agent.ID(), *found.AssignedToID())
	assert.NotNil(t, found.ClosedAt())
	assert.Equal(t, []string{"auth"}, found.Tags())
	assert.Equal(t, "TCK-1", found.Number())
	assert.Equal(t, owner.ID(), found.CreatedByID())
}

// =====================================================================
// Delete
// =====================================================================

func TestTicketRepository_DeleteCascades(t *testing.T) {
	conn := setupTestDB(t)
	users, tickets, comments := newRepos(conn)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", user.RoleUser)
	tk := createTicket(t, tickets, "TCK-1", "Broken keyboard", owner.ID())

	c, err := ticket.NewComment(tk.ID(), owner.ID(), "Any update?", false)
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, c))
	require.NoError(t, conn.Create(&models.AttachmentModel{
		ID:           "att-1",
		TicketID:     tk.ID(),
		UploadedByID: owner.ID(),
		FileName:     "photo.png",
		FileSize:     1024,
		MimeType:     "image/png",
		URL:          "https://files.example.com/photo.png",
		CreatedAt:    time.Now().UTC(),
	}).Error)

	deleted, err := tickets.Delete(ctx, tk.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	var remaining int64
	require.NoError(t, conn.Model(&models.CommentModel{}).Where("ticket_id = ?", tk.ID()).Count(&remaining).Error)
	assert.Zero(t, remaining)
	require.NoError(t, conn.Model(&models.AttachmentModel{}).Where("ticket_id = ?", tk.ID()).Count(&remaining).Error)
	assert.Zero(t, remaining)

	deleted, err = tickets.Delete(ctx, tk.ID())
	require.NoError(t, err)
	assert.False(t, deleted)
}

// =====================================================================
// List
// =====================================================================

type listFixture struct {
	tickets *TicketRepository
	byNum   map[string]*ticket.Ticket
	owner   *user.User
	other   *user.User
	agent   *user.User
}

// seedList creates five tickets, one clock second apart:
//
//	TCK-1 owner  LOW      [billing]
//	TCK-2 owner  CRITICAL [network, vpn]    title mentions "VPN"
//	TCK-3 other  HIGH     []                assigned to owner
//	TCK-4 other  MEDIUM   [billing]
//	TCK-5 owner  MEDIUM   []                assigned to agent
func seedList(t *testing.T) listFixture {
	conn := setupTestDB(t)
	users, tickets, comments := newRepos(conn)
	fixedClock(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	owner := createUser(t, users, "owner@example.com", user.RoleUser)
	other := createUser(t, users, "other@example.com", user.RoleUser)
	agent := createUser(t, users, "agent@example.com", user.RoleAgent)

	byNum := map[string]*ticket.Ticket{}
	add := func(number, title, creatorID string, opts ...ticketOpt) {
		byNum[number] = createTicket(t, tickets, number, title, creatorID, opts...)
	}
	add("TCK-1", "Invoice is wrong", owner.ID(), withPriority(vo.PriorityLow), withTags("billing"))
	add("TCK-2", "VPN drops every hour", owner.ID(), withPriority(vo.PriorityCritical), withTags("network", "vpn"))
	add("TCK-3", "Laptop will not boot", other.ID(), withPriority(vo.PriorityHigh), withAssignee(owner.ID()))
	add("TCK-4", "Refund request pending", other.ID(), withPriority(vo.PriorityMedium), withTags("billing"))
	add("TCK-5", "Need a new monitor", owner.ID(), withAssignee(agent.ID()))
	t1 := byNum["TCK-1"]

	for _, content := range []string{"first", "second"} {
		c, err := ticket.NewComment(t1.ID(), owner.ID(), content, false)
		require.NoError(t, err)
		require.NoError(t, comments.Create(context.Background(), c))
	}

	return listFixture{tickets: tickets, byNum: byNum, owner: owner, other: other, agent: agent}
}

func TestTicketRepository_List_DefaultSortNewestFirst(t *testing.T) {
	fx := seedList(t)

	entries, total, err := fx.tickets.List(context.Background(), ticket.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []string{"TCK-5", "TCK-4", "TCK-3", "TCK-2", "TCK-1"}, numbersOf(entries))

	for _, e := range entries {
		if e.Ticket.Number() == "TCK-1" {
			assert.Equal(t, int64(2), e.CommentCount)
			assert.Zero(t, e.AttachmentCount)
		} else {
			assert.Zero(t, e.CommentCount)
		}
	}
}

func TestTicketRepository_List_ParticipantScope(t *testing.T) {
	fx := seedList(t)

	entries, total, err := fx.tickets.List(context.Background(), ticket.ListFilter{
		Scope: ticket.Scope{ParticipantID: fx.owner.ID()},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.ElementsMatch(t, []string{"TCK-1", "TCK-2", "TCK-3", "TCK-5"}, numbersOf(entries))
}

func TestTicketRepository_List_ScopeComposesWithSearch(t *testing.T) {
	fx := seedList(t)

	// only TCK-4 matches and the owner takes no part in it
	entries, total, err := fx.tickets.List(context.Background(), ticket.ListFilter{
		Scope:  ticket.Scope{ParticipantID: fx.owner.ID()},
		Search: "REFUND",
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}

func TestTicketRepository_List_Filters(t *testing.T) {
	fx := seedList(t)
	ctx := context.Background()

	high := vo.PriorityHigh
	open := vo.StatusOpen

	tests := []struct {
		name   string
		filter ticket.ListFilter
		want   []string
	}{
		{"search is case insensitive", ticket.ListFilter{Search: "vpn"}, []string{"TCK-2"}},
		{"search matches ticket number", ticket.ListFilter{Search: "tck-4"}, []string{"TCK-4"}},
		{"search escapes wildcards", ticket.ListFilter{Search: "%"}, []string{}},
		{"priority", ticket.ListFilter{Priority: &high}, []string{"TCK-3"}},
		{"status", ticket.ListFilter{Status: &open}, []string{"TCK-5", "TCK-4", "TCK-3", "TCK-2", "TCK-1"}},
		{"assignee", ticket.ListFilter{AssignedToID: fx.agent.ID()}, []string{"TCK-5"}},
		{"creator", ticket.ListFilter{CreatedByID: fx.other.ID()}, []string{"TCK-4", "TCK-3"}},
		{"any tag", ticket.ListFilter{Tags: []string{"vpn", "billing"}}, []string{"TCK-4", "TCK-2", "TCK-1"}},
		{"unknown tag", ticket.ListFilter{Tags: []string{"nope"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, total, err := fx.tickets.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.want)), total)
			assert.Equal(t, tt.want, numbersOf(entries))
		})
	}
}

func TestTicketRepository_List_SortByPriorityOrdinal(t *testing.T) {
	fx := seedList(t)

	entries, _, err := fx.tickets.List(context.Background(), ticket.ListFilter{
		SortFilter: query.SortFilter{SortBy: ticket.SortByPriority, SortOrder: query.SortDesc},
	})
	require.NoError(t, err)

	got := numbersOf(entries)
	require.Len(t, got, 5)
	assert.Equal(t, "TCK-2", got[0])
	assert.Equal(t, "TCK-3", got[1])
	assert.ElementsMatch(t, []string{"TCK-4", "TCK-5"}, got[2:4])
	assert.Equal(t, "TCK-1", got[4])
}

func TestTicketRepository_List_Pagination(t *testing.T) {
	fx := seedList(t)
	ctx := context.Background()

	entries, total, err := fx.tickets.List(ctx, ticket.ListFilter{
		PageFilter: query.PageFilter{Page: 2, Limit: 2},
		SortFilter: query.SortFilter{SortBy: ticket.SortByTicketNumber, SortOrder: query.SortAsc},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, []string{"TCK-3", "TCK-4"}, numbersOf(entries))

	entries, total, err = fx.tickets.List(ctx, ticket.ListFilter{
		PageFilter: query.PageFilter{Page: 9, Limit: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	for _, page := range []int{math.MaxInt / 50, math.MaxInt} {
		entries, total, err = fx.tickets.List(ctx, ticket.ListFilter{
			PageFilter: query.PageFilter{Page: page, Limit: 100},
		})
		require.NoError(t, err, "page %d", page)
		assert.Equal(t, int64(5), total)
		assert.Empty(t, entries, "page %d", page)
	}
}

func TestTicketRepository_List_CreatedBetween(t *testing.T) {
	fx := seedList(t)

	from := fx.byNum["TCK-2"].CreatedAt()
	to := fx.byNum["TCK-3"].CreatedAt()
	entries, total, err := fx.tickets.List(context.Background(), ticket.ListFilter{
		StartDate: &from,
		EndDate:   &to,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"TCK-3", "TCK-2"}, numbersOf(entries))
}

// =====================================================================
// Stats
// =====================================================================

func TestTicketRepository_Stats(t *testing.T) {
	fx := seedList(t)
	ctx := context.Background()

	all, err := fx.tickets.Stats(ctx, ticket.Scope{})
	require.NoError(t, err)
	assert.Equal(t, &ticket.Stats{Total: 5, Open: 5, High: 1, Critical: 1}, all)

	mine, err := fx.tickets.Stats(ctx, ticket.Scope{ParticipantID: fx.owner.ID()})
	require.NoError(t, err)
	assert.Equal(t, int64(4), mine.Total)
	assert.Equal(t, int64(1), mine.Critical)
	assert.Equal(t, int64(1), mine.High)

	none, err := fx.tickets.Stats(ctx, ticket.Scope{ParticipantID: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, &ticket.Stats{}, none)
}
