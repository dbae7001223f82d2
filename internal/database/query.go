package database

import "strings"

// QueryBuilder rewrites queries written with ? placeholders for a dialect.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder creates a QueryBuilder for dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build replaces each ? with the dialect's placeholder. SQLite queries pass
// through unchanged; for PostgreSQL
//
//	SELECT data FROM registry_snapshots WHERE slot = ?
//
// becomes
//
//	SELECT data FROM registry_snapshots WHERE slot = $1
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var b strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			b.WriteString(qb.dialect.Placeholder(position))
			position++
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
