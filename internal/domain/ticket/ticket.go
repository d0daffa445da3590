package ticket

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/shared/biztime"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

const (
	MinTitleLength       = 5
	MaxTitleLength       = 200
	MinDescriptionLength = 10
	MaxCategoryLength    = 100
)

type Ticket struct {
	id           string
	number       string
	title        string
	description  string
	priority     vo.Priority
	status       vo.TicketStatus
	category     *string
	tags         []string
	createdByID  string
	assignedToID *string
	dueDate      *time.Time
	closedAt     *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

// NewTicketParams carries the caller supplied fields of a new ticket.
type NewTicketParams struct {
	Number       string
	Title        string
	Description  string
	Priority     vo.Priority
	Category     *string
	Tags         []string
	CreatedByID  string
	AssignedToID *string
	DueDate      *time.Time
}

// NewTicket opens a ticket in status OPEN. An empty priority means MEDIUM.
func NewTicket(p NewTicketParams) (*Ticket, error) {
	if p.Number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	if p.CreatedByID == "" {
		return nil, fmt.Errorf("creator ID is required")
	}
	if p.Priority == "" {
		p.Priority = vo.DefaultPriority
	}
	if err := validateTitle(p.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(p.Description); err != nil {
		return nil, err
	}
	if err := validateCategory(p.Category); err != nil {
		return nil, err
	}
	if !p.Priority.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid priority: %s", p.Priority))
	}

	now := biztime.NowUTC()
	return &Ticket{
		number:       p.Number,
		title:        p.Title,
		description:  p.Description,
		priority:     p.Priority,
		status:       vo.StatusOpen,
		category:     p.Category,
		tags:         normalizeTags(p.Tags),
		createdByID:  p.CreatedByID,
		assignedToID: p.AssignedToID,
		dueDate:      p.DueDate,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructTicket(
	id string,
	number string,
	title string,
	description string,
	priority vo.Priority,
	status vo.TicketStatus,
	category *string,
	tags []string,
	createdByID string,
	assignedToID *string,
	dueDate *time.Time,
	closedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if number == "" {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if tags == nil {
		tags = []string{}
	}

	return &Ticket{
		id:           id,
		number:       number,
		title:        title,
		description:  description,
		priority:     priority,
		status:       status,
		category:     category,
		tags:         tags,
		createdByID:  createdByID,
		assignedToID: assignedToID,
		dueDate:      dueDate,
		closedAt:     closedAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (t *Ticket) ID() string {
	return t.id
}

func (t *Ticket) Number() string {
	return t.number
}

func (t *Ticket) Title() string {
	return t.title
}

func (t *Ticket) Description() string {
	return t.description
}

func (t *Ticket) Priority() vo.Priority {
	return t.priority
}

func (t *Ticket) Status() vo.TicketStatus {
	return t.status
}

func (t *Ticket) Category() *string {
	return t.category
}

func (t *Ticket) Tags() []string {
	tagsCopy := make([]string, len(t.tags))
	copy(tagsCopy, t.tags)
	return tagsCopy
}

func (t *Ticket) CreatedByID() string {
	return t.createdByID
}

func (t *Ticket) AssignedToID() *string {
	return t.assignedToID
}

func (t *Ticket) DueDate() *time.Time {
	return t.dueDate
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) UpdatedAt() time.Time {
	return t.updatedAt
}

// IsCreatedBy reports whether userID opened the ticket.
func (t *Ticket) IsCreatedBy(userID string) bool {
	return userID != "" && t.createdByID == userID
}

// IsAssignedTo reports whether userID currently works the ticket.
func (t *Ticket) IsAssignedTo(userID string) bool {
	return userID != "" && t.assignedToID != nil && *t.assignedToID == userID
}

func (t *Ticket) SetID(id string) error {
	if t.id != "" {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == "" {
		return fmt.Errorf("ticket ID cannot be empty")
	}
	t.id = id
	return nil
}

// Renumber replaces the ticket number before the first successful insert.
func (t *Ticket) Renumber(number string) error {
	if t.id != "" {
		return fmt.Errorf("cannot renumber a persisted ticket")
	}
	if number == "" {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// Apply writes every field present in the patch. Callers strip fields the
// actor may not touch before calling. Entering RESOLVED or CLOSED stamps
// closedAt; leaving those statuses keeps it.
func (t *Ticket) Apply(p Patch) error {
	if p.IsEmpty() {
		return nil
	}
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if err := validateCategory(p.Category); err != nil {
		return err
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid priority: %s", *p.Priority))
	}
	if p.Status != nil && !p.Status.IsValid() {
		return errors.NewValidationError(fmt.Sprintf("invalid status: %s", *p.Status))
	}

	now := biztime.NowUTC()

	if p.Title != nil {
		t.title = *p.Title
	}
	if p.Description != nil {
		t.description = *p.Description
	}
	if p.Priority != nil {
		t.priority = *p.Priority
	}
	if p.Category != nil {
		t.category = p.Category
	}
	if p.Tags != nil {
		t.tags = normalizeTags(*p.Tags)
	}
	if p.DueDate != nil {
		t.dueDate = p.DueDate
	}
	if p.AssignedToID != nil {
		t.assignedToID = p.AssignedToID
	}
	if p.Status != nil {
		if p.Status.StampsClosedAt() && *p.Status != t.status {
			closed := now
			t.closedAt = &closed
		}
		t.status = *p.Status
	}

	t.updatedAt = now
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(title)
	if n < MinTitleLength {
		return errors.NewValidationError(fmt.Sprintf("title must be at least %d characters long", MinTitleLength))
	}
	if n > MaxTitleLength {
		return errors.NewValidationError(fmt.Sprintf("title must be at most %d characters long", MaxTitleLength))
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return errors.NewValidationError(fmt.Sprintf("description must be at least %d characters long", MinDescriptionLength))
	}
	return nil
}

func validateCategory(category *string) error {
	if category != nil && utf8.RuneCountInString(*category) > MaxCategoryLength {
		return errors.NewValidationError(fmt.Sprintf("category must be at most %d characters long", MaxCategoryLength))
	}
	return nil
}

// normalizeTags trims, drops blanks and removes duplicates keeping first occurrence.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
