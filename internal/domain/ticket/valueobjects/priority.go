package valueobjects

import "fmt"

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

// Priorities is in declaration order, lowest first.
var Priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

// DefaultPriority applies when a ticket is created without one.
const DefaultPriority = PriorityMedium

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return p.Ordinal() >= 0
}

func (p Priority) Ordinal() int {
	for i, pr := range Priorities {
		if pr == p {
			return i
		}
	}
	return -1
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
