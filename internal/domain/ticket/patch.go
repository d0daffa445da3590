package ticket

import (
	"time"

	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
)

// Field names an updatable ticket attribute.
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldPriority     Field = "priority"
	FieldStatus       Field = "status"
	FieldCategory     Field = "category"
	FieldTags         Field = "tags"
	FieldAssignedToID Field = "assignedToId"
	FieldDueDate      Field = "dueDate"
)

// Fields lists every updatable field.
var Fields = []Field{
	FieldTitle,
	FieldDescription,
	FieldPriority,
	FieldStatus,
	FieldCategory,
	FieldTags,
	FieldAssignedToID,
	FieldDueDate,
}

// Patch is a partial update. A nil pointer leaves the field untouched.
type Patch struct {
	Title        *string
	Description  *string
	Priority     *vo.Priority
	Status       *vo.TicketStatus
	Category     *string
	Tags         *[]string
	AssignedToID *string
	DueDate      *time.Time
}

// Fields returns the fields present in the patch.
func (p Patch) Fields() []Field {
	var fields []Field
	for _, f := range Fields {
		if p.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

func (p Patch) Has(f Field) bool {
	switch f {
	case FieldTitle:
		return p.Title != nil
	case FieldDescription:
		return p.Description != nil
	case FieldPriority:
		return p.Priority != nil
	case FieldStatus:
		return p.Status != nil
	case FieldCategory:
		return p.Category != nil
	case FieldTags:
		return p.Tags != nil
	case FieldAssignedToID:
		return p.AssignedToID != nil
	case FieldDueDate:
		return p.DueDate != nil
	}
	return false
}

func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Without clears the given field.
func (p Patch) Without(f Field) Patch {
	switch f {
	case FieldTitle:
		p.Title = nil
	case FieldDescription:
		p.Description = nil
	case FieldPriority:
		p.Priority = nil
	case FieldStatus:
		p.Status = nil
	case FieldCategory:
		p.Category = nil
	case FieldTags:
		p.Tags = nil
	case FieldAssignedToID:
		p.AssignedToID = nil
	case FieldDueDate:
		p.DueDate = nil
	}
	return p
}
