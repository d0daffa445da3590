package ticket

import "context"

// Repository persists tickets. Lookups return nil, nil when absent.
// Create returns a conflict AppError when the ticket number is taken.
type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id string) (*Ticket, error)
	Update(ctx context.Context, ticket *Ticket) error
	// Delete removes the ticket with its comments and attachments and
	// reports whether a row existed
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*ListEntry, int64, error)
	Stats(ctx context.Context, scope Scope) (*Stats, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	// ListByTicket returns comments oldest first
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]*Comment, error)
}

type AttachmentRepository interface {
	// ListByTicket returns attachments newest first
	ListByTicket(ctx context.Context, ticketID string) ([]*Attachment, error)
}
