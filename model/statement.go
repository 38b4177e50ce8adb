package model

import (
	"fmt"
	"strings"

	"gorm.io/modelcheck/utils"
)

// Statement relation query
type Statement struct {
	Dialect Dialect
	Vars    []interface{}
	sql     strings.Builder
	err     error
}

// WriteString write raw sql
func (stmt *Statement) WriteString(str string) *Statement {
	stmt.sql.WriteString(str)
	return stmt
}

// WriteQuoted write quoted identifier, invalid identifiers are recorded as error
func (stmt *Statement) WriteQuoted(name string) *Statement {
	if !utils.IsValidIdentifier(name) && stmt.err == nil {
		stmt.err = fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	stmt.sql.WriteString(stmt.Dialect.Quote(name))
	return stmt
}

// WriteColumn write quoted `table.column`
func (stmt *Statement) WriteColumn(table, column string) *Statement {
	stmt.WriteQuoted(table)
	stmt.sql.WriteByte('.')
	return stmt.WriteQuoted(column)
}

// AddVar add var and write its placeholder
func (stmt *Statement) AddVar(v interface{}) *Statement {
	stmt.Vars = append(stmt.Vars, v)
	stmt.sql.WriteString(stmt.Dialect.BindVar(len(stmt.Vars)))
	return stmt
}

// SQL rendered sql
func (stmt *Statement) SQL() string {
	return stmt.sql.String()
}

// Error first error happened when building the statement
func (stmt *Statement) Error() error {
	return stmt.err
}

// Explain sql with vars inlined, for logging only
func (stmt *Statement) Explain() string {
	return stmt.Dialect.Explain(stmt.SQL(), stmt.Vars...)
}
