package dto

import (
	"time"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
)

// UserSummary is the public view of a user attached to tickets and comments
type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type CountSummary struct {
	Comments    int64 `json:"comments"`
	Attachments int64 `json:"attachments"`
}

// TicketResponse is a ticket with its creator and assignee resolved
type TicketResponse struct {
	ID           string        `json:"id"`
	TicketNumber string        `json:"ticketNumber"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Priority     string        `json:"priority"`
	Status       string        `json:"status"`
	Category     *string       `json:"category"`
	Tags         []string      `json:"tags"`
	CreatedByID  string        `json:"createdById"`
	AssignedToID *string       `json:"assignedToId"`
	DueDate      *time.Time    `json:"dueDate"`
	ClosedAt     *time.Time    `json:"closedAt"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	CreatedBy    *UserSummary  `json:"createdBy"`
	AssignedTo   *UserSummary  `json:"assignedTo"`
	Count        *CountSummary `json:"_count,omitempty"`
}

// TicketDetailResponse adds the conversation and files to a ticket
type TicketDetailResponse struct {
	TicketResponse
	Comments    []*CommentResponse    `json:"comments"`
	Attachments []*AttachmentResponse `json:"attachments"`
}

type CommentResponse struct {
	ID          string       `json:"id"`
	TicketID    string       `json:"ticketId"`
	Content     string       `json:"content"`
	ContentHTML string       `json:"contentHtml"`
	IsInternal  bool         `json:"isInternal"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Author      *UserSummary `json:"author"`
}

type AttachmentResponse struct {
	ID         string       `json:"id"`
	FileName   string       `json:"fileName"`
	FileSize   int64        `json:"fileSize"`
	MimeType   string       `json:"mimeType"`
	URL        string       `json:"url"`
	CreatedAt  time.Time    `json:"createdAt"`
	UploadedBy *UserSummary `json:"uploadedBy"`
}

type StatusCounts struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

type PriorityCounts struct {
	High     int64 `json:"high"`
	Critical int64 `json:"critical"`
}

type StatsResponse struct {
	Total      int64          `json:"total"`
	ByStatus   StatusCounts   `json:"byStatus"`
	ByPriority PriorityCounts `json:"byPriority"`
}

// UserIndex resolves user ids loaded in one batch.
type UserIndex map[string]*user.User

func NewUserIndex(users []*user.User) UserIndex {
	idx := make(UserIndex, len(users))
	for _, u := range users {
		idx[u.ID()] = u
	}
	return idx
}

// Summary returns nil for unknown ids.
func (idx UserIndex) Summary(id string) *UserSummary {
	u, ok := idx[id]
	if !ok {
		return nil
	}
	return &UserSummary{
		ID:        u.ID(),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role().String(),
	}
}

func (idx UserIndex) summaryOf(id *string) *UserSummary {
	if id == nil {
		return nil
	}
	return idx.Summary(*id)
}

func ToTicketResponse(t *ticket.Ticket, users UserIndex) *TicketResponse {
	if t == nil {
		return nil
	}
	return &TicketResponse{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		Title:        t.Title(),
		Description:  t.Description(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		Category:     t.Category(),
		Tags:         t.Tags(),
		CreatedByID:  t.CreatedByID(),
		AssignedToID: t.AssignedToID(),
		DueDate:      t.DueDate(),
		ClosedAt:     t.ClosedAt(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		CreatedBy:    users.Summary(t.CreatedByID()),
		AssignedTo:   users.summaryOf(t.AssignedToID()),
	}
}

func ToListItemResponse(e *ticket.ListEntry, users UserIndex) *TicketResponse {
	resp := ToTicketResponse(e.Ticket, users)
	resp.Count = &CountSummary{
		Comments:    e.CommentCount,
		Attachments: e.AttachmentCount,
	}
	return resp
}

// ToCommentResponse maps a comment; html is the rendered content.
func ToCommentResponse(c *ticket.Comment, html string, users UserIndex) *CommentResponse {
	return &CommentResponse{
		ID:          c.ID(),
		TicketID:    c.TicketID(),
		Content:     c.Content(),
		ContentHTML: html,
		IsInternal:  c.IsInternal(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
		Author:      users.Summary(c.AuthorID()),
	}
}

func ToAttachmentResponse(a *ticket.Attachment, users UserIndex) *AttachmentResponse {
	return &AttachmentResponse{
		ID:         a.ID,
		FileName:   a.FileName,
		FileSize:   a.FileSize,
		MimeType:   a.MimeType,
		URL:        a.URL,
		CreatedAt:  a.CreatedAt,
		UploadedBy: users.Summary(a.UploadedByID),
	}
}

func ToStatsResponse(s *ticket.Stats) *StatsResponse {
	return &StatsResponse{
		Total: s.Total,
		ByStatus: StatusCounts{
			Open:       s.Open,
			InProgress: s.InProgress,
			Resolved:   s.Resolved,
			Closed:     s.Closed,
		},
		ByPriority: PriorityCounts{
			High:     s.High,
			Critical: s.Critical,
		},
	}
}
