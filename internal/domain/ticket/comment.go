package ticket

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/cloudcare/helpdesk/internal/shared/biztime"
	"github.com/cloudcare/helpdesk/internal/shared/errors"
)

const MaxCommentLength = 5000

type Comment struct {
	id         string
	ticketID   string
	authorID   string
	content    string
	isInternal bool
	createdAt  time.Time
	updatedAt  time.Time
}

func NewComment(ticketID, authorID, content string, isInternal bool) (*Comment, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if authorID == "" {
		return nil, fmt.Errorf("author ID is required")
	}
	if content == "" {
		return nil, errors.NewValidationError("content cannot be empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, errors.NewValidationError(fmt.Sprintf("content exceeds maximum length of %d characters", MaxCommentLength))
	}

	now := biztime.NowUTC()
	return &Comment{
		ticketID:   ticketID,
		authorID:   authorID,
		content:    content,
		isInternal: isInternal,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructComment(
	id string,
	ticketID string,
	authorID string,
	content string,
	isInternal bool,
	createdAt, updatedAt time.Time,
) (*Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("comment ID is required")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Comment{
		id:         id,
		ticketID:   ticketID,
		authorID:   authorID,
		content:    content,
		isInternal: isInternal,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

func (c *Comment) ID() string {
	return c.id
}

func (c *Comment) TicketID() string {
	return c.ticketID
}

func (c *Comment) AuthorID() string {
	return c.authorID
}

func (c *Comment) Content() string {
	return c.content
}

func (c *Comment) IsInternal() bool {
	return c.isInternal
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) UpdatedAt() time.Time {
	return c.updatedAt
}

func (c *Comment) SetID(id string) error {
	if c.id != "" {
		return fmt.Errorf("comment ID is already set")
	}
	if id == "" {
		return fmt.Errorf("comment ID cannot be empty")
	}
	c.id = id
	return nil
}
