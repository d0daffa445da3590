package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen                TicketStatus = "OPEN"
	StatusInProgress          TicketStatus = "IN_PROGRESS"
	StatusWaitingOnCustomer   TicketStatus = "WAITING_ON_CUSTOMER"
	StatusWaitingOnThirdParty TicketStatus = "WAITING_ON_THIRD_PARTY"
	StatusResolved            TicketStatus = "RESOLVED"
	StatusClosed              TicketStatus = "CLOSED"
	StatusCancelled           TicketStatus = "CANCELLED"
)

// Statuses is in declaration order; sorting by status follows this order.
var Statuses = []TicketStatus{
	StatusOpen,
	StatusInProgress,
	StatusWaitingOnCustomer,
	StatusWaitingOnThirdParty,
	StatusResolved,
	StatusClosed,
	StatusCancelled,
}

func (s TicketStatus) String() string {
	return string(s)
}

func (s TicketStatus) IsValid() bool {
	return s.Ordinal() >= 0
}

// Ordinal is the position in Statuses, or -1 for unknown values.
func (s TicketStatus) Ordinal() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// StampsClosedAt reports whether entering this status records closedAt.
func (s TicketStatus) StampsClosedAt() bool {
	return s == StatusResolved || s == StatusClosed
}

func NewTicketStatus(s string) (TicketStatus, error) {
	st := TicketStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return st, nil
}
