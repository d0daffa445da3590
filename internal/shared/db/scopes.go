package db

import (
	"time"

	"gorm.io/gorm"

	"github.com/cloudcare/helpdesk/internal/shared/query"
)

// Paginate applies LIMIT/OFFSET for a page filter.
//
//	db.Model(&TicketModel{}).Scopes(db.Paginate(query.PageFilter{Page: 2, Limit: 10})).Find(&rows)
func Paginate(page query.PageFilter) func(db *gorm.DB) *gorm.DB {
	page = page.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}

// CreatedBetween bounds a timestamp column, both ends inclusive. Nil ends
// are open.
func CreatedBetween(column string, from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where(column+" >= ?", *from)
		}
		if to != nil {
			db = db.Where(column+" <= ?", *to)
		}
		return db
	}
}
