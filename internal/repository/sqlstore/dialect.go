package sqlstore

import (
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names, matching the database/sql driver names they are opened with.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "pgx"
)

// Dialect captures the few places where SQLite and PostgreSQL disagree.
type Dialect struct {
	Name string
}

// DialectFor returns the dialect for a database/sql driver name
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DialectSQLite, DialectPostgres:
		return Dialect{Name: driver}, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites ? placeholders into the dialect's bind variable syntax.
func (d Dialect) Rebind(query string) string {
	if d.Name != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsMemory reports whether dsn names a private in-memory SQLite database.
func (d Dialect) IsMemory(dsn string) bool {
	return d.Name == DialectSQLite && (dsn == ":memory:" || strings.Contains(dsn, "mode=memory"))
}
