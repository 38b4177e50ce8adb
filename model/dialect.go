package model

import (
	"regexp"
	"strconv"
	"strings"

	"gorm.io/modelcheck/logger"
)

// Dialect database dialect used to render relation queries
type Dialect interface {
	Name() string
	// BindVar placeholder of the n-th var, n starts at 1
	BindVar(n int) string
	Quote(identifier string) string
	Explain(sql string, vars ...interface{}) string
}

var numericPlaceholder = regexp.MustCompile(`\$(\d+)`)

// SQLite sqlite dialect
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) BindVar(int) string { return "?" }

func (SQLite) Quote(str string) string { return quote(str, '`') }

func (SQLite) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, nil, `"`, vars...)
}

// MySQL mysql dialect
type MySQL struct{}

func (MySQL) Name() string { return "mysql" }

func (MySQL) BindVar(int) string { return "?" }

func (MySQL) Quote(str string) string { return quote(str, '`') }

func (MySQL) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, nil, `'`, vars...)
}

// Postgres postgres dialect
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) BindVar(n int) string { return "$" + strconv.Itoa(n) }

func (Postgres) Quote(str string) string { return quote(str, '"') }

func (Postgres) Explain(sql string, vars ...interface{}) string {
	return logger.ExplainSQL(sql, numericPlaceholder, `'`, vars...)
}

// DialectByName returns the dialect registered as name
func DialectByName(name string) (Dialect, bool) {
	switch strings.ToLower(name) {
	case "sqlite", "sqlite3":
		return SQLite{}, true
	case "mysql", "tidb":
		return MySQL{}, true
	case "postgres", "pgx", "postgresql":
		return Postgres{}, true
	}
	return nil, false
}

// quote `users.id` => "`users`.`id`", `*` is kept
func quote(str string, q byte) string {
	var buf strings.Builder
	for idx, part := range strings.Split(str, ".") {
		if idx > 0 {
			buf.WriteByte('.')
		}
		if part == "*" {
			buf.WriteByte('*')
			continue
		}
		buf.WriteByte(q)
		buf.WriteString(part)
		buf.WriteByte(q)
	}
	return buf.String()
}
