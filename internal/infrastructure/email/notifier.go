package email

import (
	"context"

	"github.com/cloudcare/helpdesk/internal/shared/config"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

// AssignmentNotice tells a user that a ticket was assigned to them.
type AssignmentNotice struct {
	To           string
	AssigneeName string
	AssignedBy   string
	TicketID     string
	TicketNumber string
	Title        string
	Priority     string
	Status       string
}

type Notifier interface {
	NotifyAssignment(ctx context.Context, notice AssignmentNotice) error
}

// NoopNotifier drops every notice. Used when SMTP is not configured.
type NoopNotifier struct {
	logger logger.Interface
}

func NewNoopNotifier(log logger.Interface) *NoopNotifier {
	return &NoopNotifier{logger: log}
}

func (n *NoopNotifier) NotifyAssignment(_ context.Context, notice AssignmentNotice) error {
	n.logger.Debugw("email disabled, assignment notice dropped",
		"ticket_number", notice.TicketNumber,
		"to", notice.To)
	return nil
}

// NewNotifier returns an SMTP notifier when email is enabled and a host is set.
func NewNotifier(cfg config.EmailConfig, log logger.Interface) Notifier {
	if !cfg.Enabled || cfg.SMTPHost == "" {
		log.Infow("email notifications disabled")
		return NewNoopNotifier(log)
	}
	return NewSMTPNotifier(SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		BaseURL:     cfg.FrontendURL,
	}, log)
}
