package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
)

type TicketModel struct {
	ID           string         `gorm:"primaryKey;size:36"`
	TicketNumber string         `gorm:"uniqueIndex;size:50;not null"`
	Title        string         `gorm:"size:200;not null"`
	Description  string         `gorm:"type:text;not null"`
	Priority     string         `gorm:"size:20;not null;default:MEDIUM;index"`
	Status       string         `gorm:"size:30;not null;default:OPEN;index"`
	Category     *string        `gorm:"size:100;index"`
	Tags         datatypes.JSON `gorm:"not null"`
	CreatedByID  string         `gorm:"size:36;not null;index"`
	AssignedToID *string        `gorm:"size:36;index"`
	DueDate      *time.Time
	ClosedAt     *time.Time
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time

	CreatedBy  UserModel  `gorm:"foreignKey:CreatedByID"`
	AssignedTo *UserModel `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

type CommentModel struct {
	ID         string      `gorm:"primaryKey;size:36"`
	TicketID   string      `gorm:"size:36;not null;index"`
	Ticket     TicketModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	AuthorID   string      `gorm:"size:36;not null;index"`
	Author     UserModel   `gorm:"foreignKey:AuthorID"`
	Content    string      `gorm:"type:text;not null"`
	IsInternal bool        `gorm:"not null;default:false"`
	CreatedAt  time.Time   `gorm:"index"`
	UpdatedAt  time.Time
}

func (CommentModel) TableName() string {
	return constants.TableTicketComments
}

type AttachmentModel struct {
	ID           string      `gorm:"primaryKey;size:36"`
	TicketID     string      `gorm:"size:36;not null;index"`
	Ticket       TicketModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	UploadedByID string      `gorm:"size:36;not null;index"`
	UploadedBy   UserModel   `gorm:"foreignKey:UploadedByID"`
	FileName     string      `gorm:"size:255;not null"`
	FileSize     int64       `gorm:"not null"`
	MimeType     string      `gorm:"size:100;not null"`
	URL          string      `gorm:"size:1000;not null"`
	CreatedAt    time.Time   `gorm:"index"`
}

func (AttachmentModel) TableName() string {
	return constants.TableAttachments
}
