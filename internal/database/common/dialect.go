package common

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// Dialect captures what the bulk loader needs to know about a SQL engine.
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat
	// MaxParams caps bind parameters per statement; 0 means no cap.
	MaxParams int
	// MaxRows caps rows per VALUES list; 0 means no cap.
	MaxRows int
	// TimeLayout renders timestamps as literals.
	TimeLayout string
	// QuoteString renders s as an escaped string literal, quotes included.
	QuoteString func(s string) string
	// TruncateSQL empties a table; %s is the table name.
	TruncateSQL string
}

// QuoteTime renders t as a timestamp literal in this dialect.
func (d Dialect) QuoteTime(t time.Time) string {
	return d.QuoteString(t.Format(d.TimeLayout))
}

// RowsPerStatement returns how many rows of width columns fit in one INSERT.
// In bind mode every value is a parameter; literal statements only hit MaxRows.
func (d Dialect) RowsPerStatement(columns int, bind bool) int {
	limit := 0
	if d.MaxRows > 0 {
		limit = d.MaxRows
	}
	if bind && d.MaxParams > 0 && columns > 0 {
		byParams := d.MaxParams / columns
		if limit == 0 || byParams < limit {
			limit = byParams
		}
	}
	return limit
}

var Postgres = Dialect{
	Name:        "postgresql",
	Placeholder: squirrel.Dollar,
	MaxParams:   65535,
	TimeLayout:  "2006-01-02 15:04:05",
	QuoteString: pq.QuoteLiteral,
	TruncateSQL: "TRUNCATE TABLE %s",
}

var MySQL = Dialect{
	Name:        "mysql",
	Placeholder: squirrel.Question,
	MaxParams:   65535,
	TimeLayout:  "2006-01-02 15:04:05",
	QuoteString: quoteBackslash,
	TruncateSQL: "TRUNCATE TABLE %s",
}

var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: squirrel.Question,
	MaxParams:   32766,
	TimeLayout:  "2006-01-02 15:04:05",
	QuoteString: quoteStandard,
	TruncateSQL: "DELETE FROM %s",
}

var SQLServer = Dialect{
	Name:        "sqlserver",
	Placeholder: squirrel.AtP,
	MaxParams:   2000,
	MaxRows:     1000,
	TimeLayout:  "2006-01-02T15:04:05",
	QuoteString: quoteNational,
	TruncateSQL: "TRUNCATE TABLE %s",
}

// quoteStandard doubles single quotes (SQL-92 string literal).
func quoteStandard(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteBackslash also escapes backslashes, which MySQL treats as escapes by default.
func quoteBackslash(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", "''")
	return "'" + escaped + "'"
}

func quoteNational(s string) string {
	return "N" + quoteStandard(s)
}
