package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/cloudcare/helpdesk/internal/shared/logger"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // web client base for ticket links, e.g. "https://support.example.com"
}

type SMTPNotifier struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

func NewSMTPNotifier(config SMTPConfig, log logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		logger: log,
	}
}

func (s *SMTPNotifier) NotifyAssignment(ctx context.Context, notice AssignmentNotice) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := s.buildAssignmentMessage(notice)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("assignment email sent",
		"ticket_number", notice.TicketNumber,
		"to", notice.To)
	return nil
}

func (s *SMTPNotifier) buildAssignmentMessage(notice AssignmentNotice) *gomail.Message {
	plainBody, htmlBody := assignmentBodies(notice, s.ticketURL(notice.TicketID))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", notice.To)
	m.SetHeader("Subject", assignmentSubject(notice))
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}

func (s *SMTPNotifier) ticketURL(ticketID string) string {
	if s.config.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(s.config.BaseURL, "/") + "/tickets/" + ticketID
}

func assignmentSubject(n AssignmentNotice) string {
	return fmt.Sprintf("[%s] Ticket assigned to you: %s", n.TicketNumber, n.Title)
}

func assignmentBodies(n AssignmentNotice, url string) (plainBody, htmlBody string) {
	var link, htmlLink string
	if url != "" {
		link = "\nOpen the ticket: " + url + "\n"
		htmlLink = fmt.Sprintf(`<p><a href="%s">Open the ticket</a></p>`, html.EscapeString(url))
	}

	plainBody = fmt.Sprintf(`Hello %s,

%s assigned ticket %s to you.

Title:    %s
Priority: %s
Status:   %s
%s`, n.AssigneeName, n.AssignedBy, n.TicketNumber, n.Title, n.Priority, n.Status, link)

	htmlBody = fmt.Sprintf(`
		<html>
		<body>
			<p>Hello %s,</p>
			<p>%s assigned ticket <strong>%s</strong> to you.</p>
			<table>
				<tr><td>Title</td><td>%s</td></tr>
				<tr><td>Priority</td><td>%s</td></tr>
				<tr><td>Status</td><td>%s</td></tr>
			</table>
			%s
		</body>
		</html>
	`,
		html.EscapeString(n.AssigneeName),
		html.EscapeString(n.AssignedBy),
		html.EscapeString(n.TicketNumber),
		html.EscapeString(n.Title),
		html.EscapeString(n.Priority),
		html.EscapeString(n.Status),
		htmlLink)

	return plainBody, htmlBody
}
