package query

import (
	"math"
	"strings"

	"github.com/cloudcare/helpdesk/internal/shared/constants"
)

type PageFilter struct {
	Page  int
	Limit int
}

// Normalize applies the defaults: page 1, limit 10, limit clamped to [1,100].
func (f PageFilter) Normalize() PageFilter {
	if f.Page < 1 {
		f.Page = constants.DefaultPage
	}
	switch {
	case f.Limit < 1:
		f.Limit = constants.DefaultPageSize
	case f.Limit > constants.MaxPageSize:
		f.Limit = constants.MaxPageSize
	}
	return f
}

// Offset is the number of rows before the page. It saturates at math.MaxInt
// instead of overflowing, so an absurd page lands past the last row.
func (f PageFilter) Offset() int {
	if f.Page <= 1 || f.Limit < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return strings.EqualFold(f.SortOrder, SortDesc)
}

// Direction renders the order keyword for SQL.
func (f SortFilter) Direction() string {
	if f.IsDescending() {
		return "DESC"
	}
	return "ASC"
}

// PageMeta is the pagination block returned with every list.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPageMeta computes totalPages as ceil(total/limit); zero rows give zero pages.
func NewPageMeta(page PageFilter, total int64) PageMeta {
	totalPages := 0
	if page.Limit > 0 {
		totalPages = int((total + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return PageMeta{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
