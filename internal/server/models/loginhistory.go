package models

import (
	"database/sql"
	"time"
)

// LoginTimeLayout is the human-readable form of a login timestamp.
const LoginTimeLayout = "Monday, 02 January 2006 at 03:04 PM"

// LoginHistoryEntry is one row of the append-only login log. DisplayName
// is NULL when the subject has been deleted since.
type LoginHistoryEntry struct {
	ID          int64
	SubjectID   int64
	DisplayName sql.NullString
	Role        Role
	LoginTime   time.Time
}

// Formatted renders LoginTime in loc (UTC when nil).
func (e LoginHistoryEntry) Formatted(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return e.LoginTime.In(loc).Format(LoginTimeLayout)
}
