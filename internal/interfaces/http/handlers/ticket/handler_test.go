package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudcare/helpdesk/internal/application/ticket/dto"
	"github.com/cloudcare/helpdesk/internal/application/ticket/usecases"
	"github.com/cloudcare/helpdesk/internal/domain/access"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/interfaces/http/handlers/testutil"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/query"
)

const (
	testTicketID = "3f1c2a9e-8d7b-4c6a-9e5f-1a2b3c4d5e6f"
	testUserID   = "7a6b5c4d-3e2f-4a1b-8c9d-0e1f2a3b4c5d"
)

// =====================================================================
// Test helper
// =====================================================================

type ticketDeps struct {
	create  *mockCreateTicketUC
	get     *mockGetTicketUC
	list    *mockListTicketsUC
	stats   *mockStatsUC
	update  *mockUpdateTicketUC
	delete  *mockDeleteTicketUC
	comment *mockAddCommentUC
}

func newTicketDeps() *ticketDeps {
	return &ticketDeps{
		create:  &mockCreateTicketUC{},
		get:     &mockGetTicketUC{},
		list:    &mockListTicketsUC{},
		stats:   &mockStatsUC{},
		update:  &mockUpdateTicketUC{},
		delete:  &mockDeleteTicketUC{},
		comment: &mockAddCommentUC{},
	}
}

func (d *ticketDeps) handler() *TicketHandler {
	return NewTicketHandler(d.create, d.get, d.list, d.stats, d.update, d.delete, d.comment, logger.NewNop())
}

func sampleTicket() *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:           testTicketID,
		TicketNumber: "TCK-LX2A9-0042",
		Title:        "VPN drops every hour",
		Priority:     "HIGH",
		Status:       "OPEN",
		Tags:         []string{"vpn"},
		CreatedByID:  testUserID,
	}
}

func parse(t *testing.T, w interface{ Bytes() []byte }) testutil.APIResponse {
	t.Helper()
	var resp testutil.APIResponse
	require.NoError(t, json.Unmarshal(w.Bytes(), &resp))
	return resp
}

// =====================================================================
// Create
// =====================================================================

func TestTicketHandler_CreateTicket(t *testing.T) {
	deps := newTicketDeps()
	var got usecases.CreateTicketCommand
	deps.create.ExecuteFunc = func(_ context.Context, cmd usecases.CreateTicketCommand) (*dto.TicketResponse, error) {
		got = cmd
		return sampleTicket(), nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets", map[string]any{
		"title":       "VPN drops every hour",
		"description": "Since Monday the VPN disconnects roughly every hour.",
		"priority":    "HIGH",
		"tags":        []string{"vpn"},
	})
	testutil.SetAuthContext(c, testUserID, "USER")

	deps.handler().CreateTicket(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, access.Actor{ID: testUserID, Role: user.RoleUser}, got.Actor)
	assert.Equal(t, "HIGH", got.Priority)
	assert.Equal(t, []string{"vpn"}, got.Tags)

	resp := parse(t, w.Body)
	assert.True(t, resp.Success)
	assert.Equal(t, "Ticket created successfully", resp.Message)
}

func TestTicketHandler_CreateTicket_ValidationFailure(t *testing.T) {
	deps := newTicketDeps()
	deps.create.ExecuteFunc = func(context.Context, usecases.CreateTicketCommand) (*dto.TicketResponse, error) {
		t.Fatal("use case must not run for an invalid body")
		return nil, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets", map[string]any{
		"title":       "abc",
		"description": "short",
	})
	testutil.SetAuthContext(c, testUserID, "USER")

	deps.handler().CreateTicket(c)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := parse(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Contains(t, resp.Error.Details, "title")
}

func TestTicketHandler_CreateTicket_Unauthenticated(t *testing.T) {
	deps := newTicketDeps()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets", map[string]any{})

	deps.handler().CreateTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTicketHandler_CreateTicket_UnknownRole(t *testing.T) {
	deps := newTicketDeps()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets", map[string]any{})
	testutil.SetAuthContext(c, testUserID, "ROOT")

	deps.handler().CreateTicket(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// =====================================================================
// Get
// =====================================================================

func TestTicketHandler_GetTicket(t *testing.T) {
	deps := newTicketDeps()
	var got usecases.GetTicketQuery
	deps.get.ExecuteFunc = func(_ context.Context, q usecases.GetTicketQuery) (*dto.TicketDetailResponse, error) {
		got = q
		return &dto.TicketDetailResponse{
			TicketResponse: *sampleTicket(),
			Comments:       []*dto.CommentResponse{},
			Attachments:    []*dto.AttachmentResponse{},
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/"+testTicketID, nil)
	testutil.SetAuthContext(c, testUserID, "AGENT")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().GetTicket(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testTicketID, got.TicketID)
	assert.Equal(t, user.RoleAgent, got.Actor.Role)

	var body map[string]any
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &body))
	assert.Equal(t, "TCK-LX2A9-0042", body["ticketNumber"])
	assert.Contains(t, body, "comments")
	assert.NotContains(t, body, "_count")
}

func TestTicketHandler_GetTicket_MalformedID(t *testing.T) {
	deps := newTicketDeps()
	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/not-a-uuid", nil)
	testutil.SetAuthContext(c, testUserID, "USER")
	testutil.SetURLParam(c, "id", "not-a-uuid")

	deps.handler().GetTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_GetTicket_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"not found", errors.NewNotFoundError("Ticket not found"), http.StatusNotFound, "not_found"},
		{"forbidden", errors.NewForbiddenError("You do not have access to this ticket"), http.StatusForbidden, "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTicketDeps()
			deps.get.ExecuteFunc = func(context.Context, usecases.GetTicketQuery) (*dto.TicketDetailResponse, error) {
				return nil, tt.err
			}

			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/"+testTicketID, nil)
			testutil.SetAuthContext(c, testUserID, "USER")
			testutil.SetURLParam(c, "id", testTicketID)

			deps.handler().GetTicket(c)

			assert.Equal(t, tt.wantCode, w.Code)
			resp := parse(t, w.Body)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantType, resp.Error.Type)
		})
	}
}

// =====================================================================
// List / Stats
// =====================================================================

func TestTicketHandler_ListTickets(t *testing.T) {
	deps := newTicketDeps()
	var got usecases.ListTicketsQuery
	deps.list.ExecuteFunc = func(_ context.Context, q usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
		got = q
		return &usecases.ListTicketsResult{
			Tickets: []*dto.TicketResponse{sampleTicket()},
			Meta:    query.PageMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2},
		}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets", nil)
	testutil.SetAuthContext(c, testUserID, "USER")
	testutil.SetQueryParams(c, map[string]string{
		"page":      "2",
		"limit":     "5",
		"status":    "OPEN",
		"tags":      "vpn, network",
		"startDate": "2024-01-01",
		"sortOrder": "desc",
	})

	deps.handler().ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, got.Filter.Page)
	assert.Equal(t, 5, got.Filter.Limit)
	require.NotNil(t, got.Filter.Status)
	assert.Equal(t, vo.StatusOpen, *got.Filter.Status)
	assert.Equal(t, []string{"vpn", "network"}, got.Filter.Tags)
	require.NotNil(t, got.Filter.StartDate)
	assert.Equal(t, 2024, got.Filter.StartDate.Year())

	resp := parse(t, w.Body)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(6), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)
}

func TestTicketHandler_ListTickets_InvalidQuery(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
	}{
		{"bad status", map[string]string{"status": "DONE"}},
		{"bad sort key", map[string]string{"sortBy": "title"}},
		{"bad date", map[string]string{"endDate": "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTicketDeps()
			c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets", nil)
			testutil.SetAuthContext(c, testUserID, "AGENT")
			testutil.SetQueryParams(c, tt.params)

			deps.handler().ListTickets(c)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		})
	}
}

func TestTicketHandler_ListTickets_EmptyPage(t *testing.T) {
	deps := newTicketDeps()
	deps.list.ExecuteFunc = func(context.Context, usecases.ListTicketsQuery) (*usecases.ListTicketsResult, error) {
		return &usecases.ListTicketsResult{Meta: query.PageMeta{Page: 1, Limit: 10}}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets", nil)
	testutil.SetAuthContext(c, testUserID, "ADMIN")

	deps.handler().ListTickets(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", string(parse(t, w.Body).Data))
}

func TestTicketHandler_GetStats(t *testing.T) {
	deps := newTicketDeps()
	deps.stats.ExecuteFunc = func(_ context.Context, actor access.Actor) (*dto.StatsResponse, error) {
		assert.Equal(t, user.RoleAdmin, actor.Role)
		return &dto.StatsResponse{Total: 4, ByStatus: dto.StatusCounts{Open: 3, Closed: 1}}, nil
	}

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/tickets/stats", nil)
	testutil.SetAuthContext(c, testUserID, "ADMIN")

	deps.handler().GetStats(c)

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.StatsResponse
	require.NoError(t, json.Unmarshal(parse(t, w.Body).Data, &body))
	assert.Equal(t, int64(4), body.Total)
	assert.Equal(t, int64(3), body.ByStatus.Open)
}

// =====================================================================
// Update / Delete
// =====================================================================

func TestTicketHandler_UpdateTicket(t *testing.T) {
	deps := newTicketDeps()
	var got usecases.UpdateTicketCommand
	deps.update.ExecuteFunc = func(_ context.Context, cmd usecases.UpdateTicketCommand) (*dto.TicketResponse, error) {
		got = cmd
		return sampleTicket(), nil
	}

	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/tickets/"+testTicketID, map[string]any{
		"title":  "  VPN drops every hour  ",
		"status": "IN_PROGRESS",
	})
	testutil.SetAuthContext(c, testUserID, "AGENT")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().UpdateTicket(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.Patch.Title)
	assert.Equal(t, "VPN drops every hour", *got.Patch.Title)
	require.NotNil(t, got.Patch.Status)
	assert.Equal(t, vo.StatusInProgress, *got.Patch.Status)
	assert.Nil(t, got.Patch.Priority)
	assert.Nil(t, got.Patch.AssignedToID)
}

func TestTicketHandler_UpdateTicket_InvalidStatus(t *testing.T) {
	deps := newTicketDeps()
	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/tickets/"+testTicketID, map[string]any{
		"status": "DONE",
	})
	testutil.SetAuthContext(c, testUserID, "AGENT")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().UpdateTicket(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTicketHandler_UpdateTicket_MalformedJSON(t *testing.T) {
	deps := newTicketDeps()
	c, w := testutil.NewTestContext(http.MethodPut, "/api/v1/tickets/"+testTicketID, `{"title":`)
	testutil.SetAuthContext(c, testUserID, "AGENT")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().UpdateTicket(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTicketHandler_DeleteTicket(t *testing.T) {
	deps := newTicketDeps()
	var got usecases.DeleteTicketCommand
	deps.delete.ExecuteFunc = func(_ context.Context, cmd usecases.DeleteTicketCommand) error {
		got = cmd
		return nil
	}

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/tickets/"+testTicketID, nil)
	testutil.SetAuthContext(c, testUserID, "ADMIN")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().DeleteTicket(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testTicketID, got.TicketID)
	assert.Equal(t, "Ticket deleted successfully", parse(t, w.Body).Message)
}

func TestTicketHandler_DeleteTicket_Forbidden(t *testing.T) {
	deps := newTicketDeps()
	deps.delete.ExecuteFunc = func(context.Context, usecases.DeleteTicketCommand) error {
		return errors.NewForbiddenError("Only administrators can delete tickets")
	}

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/tickets/"+testTicketID, nil)
	testutil.SetAuthContext(c, testUserID, "AGENT")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().DeleteTicket(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

// =====================================================================
// Comments
// =====================================================================

func TestTicketHandler_AddComment(t *testing.T) {
	deps := newTicketDeps()
	var got usecases.AddCommentCommand
	deps.comment.ExecuteFunc = func(_ context.Context, cmd usecases.AddCommentCommand) (*dto.CommentResponse, error) {
		got = cmd
		return &dto.CommentResponse{ID: "c-1", TicketID: cmd.TicketID, Content: cmd.Content, IsInternal: cmd.IsInternal}, nil
	}

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets/"+testTicketID+"/comments", map[string]any{
		"content":    "Escalating to network team",
		"isInternal": true,
	})
	testutil.SetAuthContext(c, testUserID, "AGENT")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().AddComment(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, got.IsInternal)
	assert.Equal(t, testTicketID, got.TicketID)
	assert.Equal(t, "Comment added successfully", parse(t, w.Body).Message)
}

func TestTicketHandler_AddComment_BlankContent(t *testing.T) {
	deps := newTicketDeps()
	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/tickets/"+testTicketID+"/comments", map[string]any{
		"content": "   ",
	})
	testutil.SetAuthContext(c, testUserID, "USER")
	testutil.SetURLParam(c, "id", testTicketID)

	deps.handler().AddComment(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
