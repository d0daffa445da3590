package ticket

import (
	"time"

	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/shared/query"
)

// Sort keys accepted by List.
const (
	SortByCreatedAt    = "createdAt"
	SortByUpdatedAt    = "updatedAt"
	SortByPriority     = "priority"
	SortByStatus       = "status"
	SortByTicketNumber = "ticketNumber"
)

var SortKeys = []string{SortByCreatedAt, SortByUpdatedAt, SortByPriority, SortByStatus, SortByTicketNumber}

func IsValidSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Scope restricts which tickets a reader sees. A zero Scope sees everything;
// a ParticipantID limits rows to tickets created by or assigned to that user.
type Scope struct {
	ParticipantID string
}

func (s Scope) IsRestricted() bool {
	return s.ParticipantID != ""
}

// ListFilter is the full set of list criteria. Every set criterion narrows
// the result; the scope is applied on top of all of them.
type ListFilter struct {
	query.PageFilter
	query.SortFilter
	Scope        Scope
	Status       *vo.TicketStatus
	Priority     *vo.Priority
	AssignedToID string
	CreatedByID  string
	Category     string
	// Tags matches tickets carrying any of the given tags
	Tags      []string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Normalize fills paging and sort defaults.
func (f ListFilter) Normalize() ListFilter {
	f.PageFilter = f.PageFilter.Normalize()
	if !IsValidSortKey(f.SortBy) {
		f.SortBy = SortByCreatedAt
	}
	if f.SortOrder != query.SortAsc {
		f.SortOrder = query.SortDesc
	}
	return f
}

// ListEntry is a ticket with its related row counts.
type ListEntry struct {
	Ticket          *Ticket
	CommentCount    int64
	AttachmentCount int64
}

// Stats aggregates ticket counts for a scope.
type Stats struct {
	Total      int64
	Open       int64
	InProgress int64
	Resolved   int64
	Closed     int64
	High       int64
	Critical   int64
}
