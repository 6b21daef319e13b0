package persistence

import (
	"github.com/essentials/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies pagination and ordering to a query. The sort field
// is validated against the given whitelist so user input never reaches
// the ORDER BY clause verbatim.
func applyFilter(query *gorm.DB, filter shared.Filter, allowedSortFields map[string]bool, defaultField string) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, allowedSortFields, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(field + " " + dir)
}
