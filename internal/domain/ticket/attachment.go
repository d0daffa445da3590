package ticket

import "time"

// Attachment is file metadata linked to a ticket. Rows are read-only here.
type Attachment struct {
	ID           string
	TicketID     string
	UploadedByID string
	FileName     string
	FileSize     int64
	MimeType     string
	URL          string
	CreatedAt    time.Time
}
