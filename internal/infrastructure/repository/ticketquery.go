package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
)

var sortColumns = map[string]string{
	ticket.SortByCreatedAt:    "tickets.created_at",
	ticket.SortByUpdatedAt:    "tickets.updated_at",
	ticket.SortByTicketNumber: "tickets.ticket_number",
}

// orderClause maps a validated sort key to SQL. Priority and status sort by
// declaration order through a CASE ordinal rather than alphabetically.
func orderClause(sortBy, direction string) string {
	switch sortBy {
	case ticket.SortByPriority:
		values := make([]string, len(vo.Priorities))
		for i, p := range vo.Priorities {
			values[i] = p.String()
		}
		return ordinalCase("tickets.priority", values) + " " + direction
	case ticket.SortByStatus:
		values := make([]string, len(vo.Statuses))
		for i, s := range vo.Statuses {
			values[i] = s.String()
		}
		return ordinalCase("tickets.status", values) + " " + direction
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = sortColumns[ticket.SortByCreatedAt]
	}
	return column + " " + direction
}

// ordinalCase renders CASE col WHEN 'A' THEN 0 ... END. Values are enum
// constants, never user input.
func ordinalCase(column string, values []string) string {
	var b strings.Builder
	b.WriteString("CASE ")
	b.WriteString(column)
	for i, v := range values {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", v, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(values))
	return b.String()
}

// scopeVisibleTo keeps only tickets created by or assigned to the participant.
// The OR is parenthesised so it composes with every other condition.
func scopeVisibleTo(scope ticket.Scope) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if !scope.IsRestricted() {
			return tx
		}
		return tx.Where("(tickets.created_by_id = ? OR tickets.assigned_to_id = ?)",
			scope.ParticipantID, scope.ParticipantID)
	}
}

func filterTickets(dialect string, f ticket.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Status != nil {
			tx = tx.Where("tickets.status = ?", f.Status.String())
		}
		if f.Priority != nil {
			tx = tx.Where("tickets.priority = ?", f.Priority.String())
		}
		if f.AssignedToID != "" {
			tx = tx.Where("tickets.assigned_to_id = ?", f.AssignedToID)
		}
		if f.CreatedByID != "" {
			tx = tx.Where("tickets.created_by_id = ?", f.CreatedByID)
		}
		if f.Category != "" {
			tx = tx.Where("tickets.category = ?", f.Category)
		}
		if search := strings.TrimSpace(f.Search); search != "" {
			pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
			tx = tx.Where(
				"(LOWER(tickets.title) LIKE ? ESCAPE '!' OR LOWER(tickets.description) LIKE ? ESCAPE '!' OR LOWER(tickets.ticket_number) LIKE ? ESCAPE '!')",
				pattern, pattern, pattern,
			)
		}
		if len(f.Tags) > 0 {
			sql, args := tagsAnyCondition(dialect, f.Tags)
			tx = tx.Where(sql, args...)
		}
		return tx
	}
}

// tagsAnyCondition matches rows whose JSON tag array contains any of tags.
func tagsAnyCondition(dialect string, tags []string) (string, []interface{}) {
	var one string
	switch dialect {
	case "mysql":
		one = "JSON_CONTAINS(tickets.tags, JSON_QUOTE(?))"
	case "postgres":
		one = "tickets.tags::jsonb @> jsonb_build_array(?::text)"
	default:
		one = "EXISTS (SELECT 1 FROM json_each(tickets.tags) WHERE json_each.value = ?)"
	}

	parts := make([]string, len(tags))
	args := make([]interface{}, len(tags))
	for i, tag := range tags {
		parts[i] = one
		args[i] = tag
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var statsSelect = strings.Join([]string{
	"COUNT(*) AS total",
	"COALESCE(SUM(CASE WHEN tickets.status = ? THEN 1 ELSE 0 END), 0) AS open",
	"COALESCE(SUM(CASE WHEN tickets.status = ? THEN 1 ELSE 0 END), 0) AS in_progress",
	"COALESCE(SUM(CASE WHEN tickets.status = ? THEN 1 ELSE 0 END), 0) AS resolved",
	"COALESCE(SUM(CASE WHEN tickets.status = ? THEN 1 ELSE 0 END), 0) AS closed",
	"COALESCE(SUM(CASE WHEN tickets.priority = ? THEN 1 ELSE 0 END), 0) AS high",
	"COALESCE(SUM(CASE WHEN tickets.priority = ? THEN 1 ELSE 0 END), 0) AS critical",
}, ", ")

var statsArgs = []interface{}{
	vo.StatusOpen.String(),
	vo.StatusInProgress.String(),
	vo.StatusResolved.String(),
	vo.StatusClosed.String(),
	vo.PriorityHigh.String(),
	vo.PriorityCritical.String(),
}
