package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/cloudcare/helpdesk/internal/domain/audit"
	"github.com/cloudcare/helpdesk/internal/domain/ticket"
	vo "github.com/cloudcare/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/cloudcare/helpdesk/internal/infrastructure/persistence/models"
)

// TicketToModel converts a ticket aggregate to its persistence model.
func TicketToModel(t *ticket.Ticket) (*models.TicketModel, error) {
	tags, err := json.Marshal(t.Tags())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	return &models.TicketModel{
		ID:           t.ID(),
		TicketNumber: t.Number(),
		Title:        t.Title(),
		Description:  t.Description(),
		Priority:     t.Priority().String(),
		Status:       t.Status().String(),
		Category:     t.Category(),
		Tags:         datatypes.JSON(tags),
		CreatedByID:  t.CreatedByID(),
		AssignedToID: t.AssignedToID(),
		DueDate:      t.DueDate(),
		ClosedAt:     t.ClosedAt(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}, nil
}

// TicketToDomain converts a ticket persistence model to a domain entity.
func TicketToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	var tags []string
	if len(model.Tags) > 0 {
		if err := json.Unmarshal(model.Tags, &tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of ticket %s: %w", model.ID, err)
		}
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.TicketNumber,
		model.Title,
		model.Description,
		vo.Priority(model.Priority),
		vo.TicketStatus(model.Status),
		model.Category,
		tags,
		model.CreatedByID,
		model.AssignedToID,
		model.DueDate,
		model.ClosedAt,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:         c.ID(),
		TicketID:   c.TicketID(),
		AuthorID:   c.AuthorID(),
		Content:    c.Content(),
		IsInternal: c.IsInternal(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func CommentToDomain(model *models.CommentModel) (*ticket.Comment, error) {
	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.AuthorID,
		model.Content,
		model.IsInternal,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func AttachmentToDomain(model *models.AttachmentModel) *ticket.Attachment {
	return &ticket.Attachment{
		ID:           model.ID,
		TicketID:     model.TicketID,
		UploadedByID: model.UploadedByID,
		FileName:     model.FileName,
		FileSize:     model.FileSize,
		MimeType:     model.MimeType,
		URL:          model.URL,
		CreatedAt:    model.CreatedAt,
	}
}

func AuditEntryToModel(e *audit.Entry) *models.AuditLogModel {
	return &models.AuditLogModel{
		ID:        e.ID,
		Action:    string(e.Action),
		Entity:    e.Entity,
		EntityID:  e.EntityID,
		UserID:    e.UserID,
		Changes:   datatypes.JSON(e.Changes),
		CreatedAt: e.CreatedAt,
	}
}

func AuditEntryToDomain(model *models.AuditLogModel) *audit.Entry {
	return &audit.Entry{
		ID:        model.ID,
		Action:    audit.Action(model.Action),
		Entity:    model.Entity,
		EntityID:  model.EntityID,
		UserID:    model.UserID,
		Changes:   json.RawMessage(model.Changes),
		CreatedAt: model.CreatedAt,
	}
}
