package models

// All lists every persistence model in dependency order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&RefreshTokenModel{},
		&TicketModel{},
		&CommentModel{},
		&AttachmentModel{},
		&AuditLogModel{},
	}
}
