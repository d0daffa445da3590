package dto

import (
	"strings"
	"time"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
	"github.com/cloudcare/helpdesk/internal/shared/query"
)

type CreateTicketRequest struct {
	Title       string     `json:"title" binding:"required,notblank,min=5,max=200" example:"VPN drops every hour"`
	Description string     `json:"description" binding:"required,notblank,min=10" example:"Since Monday the VPN disconnects roughly every hour."`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL" example:"HIGH"`
	Category    *string    `json:"category" binding:"omitempty,max=100" example:"network"`
	Tags        []string   `json:"tags" example:"vpn,network"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTicketRequest is a partial update; absent fields stay untouched
type UpdateTicketRequest struct {
	Title        *string    `json:"title" binding:"omitempty,notblank,min=5,max=200"`
	Description  *string    `json:"description" binding:"omitempty,notblank,min=10"`
	Priority     *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	Status       *string    `json:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS WAITING_ON_CUSTOMER WAITING_ON_THIRD_PARTY RESOLVED CLOSED CANCELLED"`
	Category     *string    `json:"category" binding:"omitempty,max=100"`
	Tags         *[]string  `json:"tags"`
	AssignedToID *string    `json:"assignedToId" binding:"omitempty,uuid"`
	DueDate      *time.Time `json:"dueDate"`
}

type AddCommentRequest struct {
	Content    string `json:"content" binding:"required,notblank,max=5000" example:"Could you attach the client log?"`
	IsInternal bool   `json:"isInternal"`
}

// ListTicketsRequest carries the query string of the list endpoint. Tags
// is a comma separated list; dates accept RFC 3339 or YYYY-MM-DD.
type ListTicketsRequest struct {
	Page         int    `form:"page" binding:"omitempty,gte=1"`
	Limit        int    `form:"limit" binding:"omitempty,gte=1"`
	SortBy       string `form:"sortBy" binding:"omitempty,oneof=createdAt updatedAt priority status ticketNumber"`
	SortOrder    string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
	Status       string `form:"status" binding:"omitempty,oneof=OPEN IN_PROGRESS WAITING_ON_CUSTOMER WAITING_ON_THIRD_PARTY RESOLVED CLOSED CANCELLED"`
	Priority     string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	AssignedToID string `form:"assignedToId" binding:"omitempty,uuid"`
	CreatedByID  string `form:"createdById" binding:"omitempty,uuid"`
	Category     string `form:"category"`
	Tags         string `form:"tags"`
	Search       string `form:"search"`
	StartDate    string `form:"startDate"`
	EndDate      string `form:"endDate"`
}

// ToFilter converts the query into list criteria. Paging defaults are
// applied later by ListFilter.Normalize.
func (r ListTicketsRequest) ToFilter() (ticket.ListFilter, error) {
	f := ticket.ListFilter{
		PageFilter:   query.PageFilter{Page: r.Page, Limit: r.Limit},
		SortFilter:   query.SortFilter{SortBy: r.SortBy, SortOrder: r.SortOrder},
		AssignedToID: r.AssignedToID,
		CreatedByID:  r.CreatedByID,
		Category:     strings.TrimSpace(r.Category),
		Search:       strings.TrimSpace(r.Search),
		Tags:         splitTags(r.Tags),
	}

	if r.Status != "" {
		st, err := vo.NewTicketStatus(r.Status)
		if err != nil {
			return f, errors.NewValidationError("Validation failed", "status must be a valid ticket status")
		}
		f.Status = &st
	}
	if r.Priority != "" {
		p, err := vo.NewPriority(r.Priority)
		if err != nil {
			return f, errors.NewValidationError("Validation failed", "priority must be a valid priority")
		}
		f.Priority = &p
	}

	var err error
	if f.StartDate, err = parseDate("startDate", r.StartDate); err != nil {
		return f, err
	}
	if f.EndDate, err = parseDate("endDate", r.EndDate); err != nil {
		return f, err
	}
	return f, nil
}

// Patch converts the body into a domain patch.
func (r UpdateTicketRequest) Patch() ticket.Patch {
	p := ticket.Patch{
		Title:        trimmed(r.Title),
		Description:  trimmed(r.Description),
		Category:     trimmed(r.Category),
		Tags:         r.Tags,
		AssignedToID: r.AssignedToID,
		DueDate:      r.DueDate,
	}
	if r.Priority != nil {
		v := vo.Priority(*r.Priority)
		p.Priority = &v
	}
	if r.Status != nil {
		v := vo.TicketStatus(*r.Status)
		p.Status = &v
	}
	return p
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.NewValidationError("Validation failed", field+" must be a valid date")
}
