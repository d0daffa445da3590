// Package access decides what an authenticated actor may do with a ticket.
// All role branching for tickets lives in the decision table below.
package access

import (
	"sort"

	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	"github.com/cloudcare/helpdesk/internal/domain/user"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

// Actor is the identity taken from a verified access token.
type Actor struct {
	ID   string
	Role user.Role
}

// Relation is how an actor relates to a particular ticket.
type Relation string

const (
	RelationCreator  Relation = "CREATOR"
	RelationAssignee Relation = "ASSIGNEE"
	RelationNone     Relation = "NONE"
)

type Decision int

const (
	Deny Decision = iota
	// Ignore silently drops the requested change instead of failing
	Ignore
	Allow
)

type Operation string

const (
	OpCreate               Operation = "create"
	OpList                 Operation = "list"
	OpListAll              Operation = "list_all"
	OpStats                Operation = "stats"
	OpView                 Operation = "view"
	OpUpdate               Operation = "update"
	OpDelete               Operation = "delete"
	OpComment              Operation = "comment"
	OpCommentInternal      Operation = "comment_internal"
	OpViewInternalComments Operation = "view_internal_comments"
)

// EditOp is the operation guarding a single ticket field.
func EditOp(f ticket.Field) Operation {
	return Operation("edit:" + string(f))
}

type relationRule map[Relation]Decision

func always(d Decision) relationRule {
	return relationRule{RelationCreator: d, RelationAssignee: d, RelationNone: d}
}

func byRelation(creator, assignee, none Decision) relationRule {
	return relationRule{RelationCreator: creator, RelationAssignee: assignee, RelationNone: none}
}

// Policy is an immutable decision table keyed by role, relation and operation.
type Policy struct {
	table map[user.Role]map[Operation]relationRule
}

func NewPolicy() *Policy {
	participant := byRelation(Allow, Allow, Deny)
	creatorOnly := byRelation(Allow, Deny, Deny)

	userRules := map[Operation]relationRule{
		OpCreate:               always(Allow),
		OpList:                 always(Allow),
		OpListAll:              always(Deny),
		OpStats:                always(Allow),
		OpView:                 participant,
		OpUpdate:               creatorOnly,
		OpDelete:               always(Deny),
		OpComment:              participant,
		OpCommentInternal:      always(Deny),
		OpViewInternalComments: always(Deny),

		EditOp(ticket.FieldTitle):        creatorOnly,
		EditOp(ticket.FieldDescription):  creatorOnly,
		EditOp(ticket.FieldPriority):     creatorOnly,
		EditOp(ticket.FieldCategory):     creatorOnly,
		EditOp(ticket.FieldTags):         creatorOnly,
		EditOp(ticket.FieldDueDate):      creatorOnly,
		EditOp(ticket.FieldStatus):       always(Ignore),
		EditOp(ticket.FieldAssignedToID): always(Ignore),
	}

	staffRules := func(canDelete Decision) map[Operation]relationRule {
		rules := map[Operation]relationRule{
			OpCreate:               always(Allow),
			OpList:                 always(Allow),
			OpListAll:              always(Allow),
			OpStats:                always(Allow),
			OpView:                 always(Allow),
			OpUpdate:               always(Allow),
			OpDelete:               always(canDelete),
			OpComment:              always(Allow),
			OpCommentInternal:      always(Allow),
			OpViewInternalComments: always(Allow),
		}
		for _, f := range ticket.Fields {
			rules[EditOp(f)] = always(Allow)
		}
		return rules
	}

	return &Policy{
		table: map[user.Role]map[Operation]relationRule{
			user.RoleUser:  userRules,
			user.RoleAgent: staffRules(Deny),
			user.RoleAdmin: staffRules(Allow),
		},
	}
}

// RelationsOf returns every relation the actor holds to the ticket. A nil
// ticket yields RelationNone.
func RelationsOf(actorID string, t *ticket.Ticket) []Relation {
	if t == nil {
		return []Relation{RelationNone}
	}
	var rels []Relation
	if t.IsCreatedBy(actorID) {
		rels = append(rels, RelationCreator)
	}
	if t.IsAssignedTo(actorID) {
		rels = append(rels, RelationAssignee)
	}
	if len(rels) == 0 {
		rels = append(rels, RelationNone)
	}
	return rels
}

// Decide looks up the most permissive decision over the actor's relations.
// Unknown roles and operations are denied.
func (p *Policy) Decide(actor Actor, t *ticket.Ticket, op Operation) Decision {
	rule, ok := p.table[actor.Role][op]
	if !ok {
		return Deny
	}
	best := Deny
	for _, rel := range RelationsOf(actor.ID, t) {
		if d := rule[rel]; d > best {
			best = d
		}
	}
	return best
}

// CanView fails with Forbidden when the actor may not see the ticket.
func (p *Policy) CanView(actor Actor, t *ticket.Ticket) error {
	if p.Decide(actor, t, OpView) != Allow {
		return errors.NewForbiddenError("You do not have access to this ticket")
	}
	return nil
}

// AuthorizeUpdate checks the actor may update the ticket and returns the
// patch reduced to the fields the actor may change. Fields the actor is
// denied fail the whole update; ignored fields are dropped.
func (p *Policy) AuthorizeUpdate(actor Actor, t *ticket.Ticket, patch ticket.Patch) (ticket.Patch, error) {
	if err := p.CanView(actor, t); err != nil {
		return ticket.Patch{}, err
	}
	if p.Decide(actor, t, OpUpdate) != Allow {
		return ticket.Patch{}, errors.NewForbiddenError("You can only update your own tickets")
	}

	allowed := patch
	for _, f := range patch.Fields() {
		switch p.Decide(actor, t, EditOp(f)) {
		case Allow:
		case Ignore:
			allowed = allowed.Without(f)
		default:
			return ticket.Patch{}, errors.NewForbiddenError("You cannot change " + string(f) + " on this ticket")
		}
	}
	return allowed, nil
}

func (p *Policy) CanDelete(actor Actor) error {
	if p.Decide(actor, nil, OpDelete) != Allow {
		return errors.NewForbiddenError("Only administrators can delete tickets")
	}
	return nil
}

// CanComment checks view access and, for internal notes, the internal rule.
func (p *Policy) CanComment(actor Actor, t *ticket.Ticket, internal bool) error {
	if err := p.CanView(actor, t); err != nil {
		return err
	}
	if p.Decide(actor, t, OpComment) != Allow {
		return errors.NewForbiddenError("You cannot comment on this ticket")
	}
	if internal && p.Decide(actor, t, OpCommentInternal) != Allow {
		return errors.NewForbiddenError("Only staff can add internal comments")
	}
	return nil
}

// SeesInternalComments reports whether internal comments are shown to the actor.
func (p *Policy) SeesInternalComments(actor Actor, t *ticket.Ticket) bool {
	return p.Decide(actor, t, OpViewInternalComments) == Allow
}

// VisibleComments drops the comments the actor may not read.
func (p *Policy) VisibleComments(actor Actor, t *ticket.Ticket, comments []*ticket.Comment) []*ticket.Comment {
	if p.SeesInternalComments(actor, t) {
		return comments
	}
	visible := make([]*ticket.Comment, 0, len(comments))
	for _, c := range comments {
		if !c.IsInternal() {
			visible = append(visible, c)
		}
	}
	return visible
}

// ListScope restricts lists and stats to the actor's own tickets unless the
// role may list everything.
func (p *Policy) ListScope(actor Actor) ticket.Scope {
	if p.Decide(actor, nil, OpListAll) == Allow {
		return ticket.Scope{}
	}
	return ticket.Scope{ParticipantID: actor.ID}
}

// Grant is a role level permission: the role may perform the operation on
// at least one ticket relation.
type Grant struct {
	Role      user.Role
	Operation Operation
}

// Grants flattens the table to role level permissions in a stable order.
func (p *Policy) Grants() []Grant {
	var grants []Grant
	for role, rules := range p.table {
		for op, rule := range rules {
			for _, d := range rule {
				if d == Allow {
					grants = append(grants, Grant{Role: role, Operation: op})
					break
				}
			}
		}
	}
	sort.Slice(grants, func(i, j int) bool {
		if grants[i].Role != grants[j].Role {
			return grants[i].Role < grants[j].Role
		}
		return grants[i].Operation < grants[j].Operation
	})
	return grants
}
