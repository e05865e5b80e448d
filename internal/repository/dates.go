package repository

import (
	"database/sql"
	"time"
)

// DateLayout is how dates are stored in the SQLite files (ISO local dates,
// matching the historical file format)
const DateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// nullDate maps a zero time to SQL NULL
func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(DateLayout), Valid: true}
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseNullDate(ns sql.NullString) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return parseDate(ns.String)
}
