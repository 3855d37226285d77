package repository

import (
	"strings"

	"patients-management/internal/domain/entity"

	"gorm.io/gorm"
)

// paginate limits a query to one page; a zero limit leaves it unbounded.
func paginate(p entity.Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if p.Limit < 1 {
			return db
		}
		return db.Offset(p.Offset()).Limit(p.Limit)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// like wraps a search term for ILIKE matching. Wildcards in the term match literally.
func like(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// ilike ORs a case-insensitive match over columns, one placeholder each.
func ilike(columns ...string) string {
	clauses := make([]string, len(columns))
	for i, column := range columns {
		clauses[i] = column + ` ILIKE ? ESCAPE '\'`
	}
	return strings.Join(clauses, " OR ")
}
