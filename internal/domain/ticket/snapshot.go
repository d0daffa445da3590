package ticket

import "time"

// Snapshot is the serialisable state of a ticket recorded in audit entries.
type Snapshot struct {
	ID           string     `json:"id"`
	TicketNumber string     `json:"ticketNumber"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	Category     *string    `json:"category"`
	Tags         []string   `json:"tags"`
	CreatedByID  string     `json:"createdById"`
	AssignedToID *string    `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
	ClosedAt     *time.Time `json:"closedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (t *Ticket) Snapshot() Snapshot {
	return Snapshot{
		ID:           t.id,
		TicketNumber: t.number,
		Title:        t.title,
		Description:  t.description,
		Priority:     t.priority.String(),
		Status:       t.status.String(),
		Category:     copyString(t.category),
		Tags:         t.Tags(),
		CreatedByID:  t.createdByID,
		AssignedToID: copyString(t.assignedToID),
		DueDate:      copyTime(t.dueDate),
		ClosedAt:     copyTime(t.closedAt),
		CreatedAt:    t.createdAt,
		UpdatedAt:    t.updatedAt,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
