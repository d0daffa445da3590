// Package audit records append-only history of ticket mutations.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

func (a Action) IsValid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// EntityTicket is the only entity audited today.
const EntityTicket = "TICKET"

// Entry is one immutable audit record.
type Entry struct {
	ID        string
	Action    Action
	Entity    string
	EntityID  string
	UserID    string
	Changes   json.RawMessage
	CreatedAt time.Time
}

// NewEntry serialises changes and stamps the entry. changes must be JSON encodable.
func NewEntry(action Action, entity, entityID, userID string, changes any) (*Entry, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid audit action: %s", action)
	}
	if entity == "" || entityID == "" {
		return nil, fmt.Errorf("audit entity and entity ID are required")
	}

	raw, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit changes: %w", err)
	}

	return &Entry{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		UserID:    userID,
		Changes:   raw,
		CreatedAt: biztime.NowUTC(),
	}, nil
}

// Repository is append-only.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	ListByEntity(ctx context.Context, entity, entityID string) ([]*Entry, error)
}
