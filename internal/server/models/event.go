package models

// DateLayout and TimeLayout are the stored forms of Event.Date and
// Event.Time. Dates in this layout sort chronologically as text.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event mirrors the events table. Every event has exactly one owner.
type Event struct {
	ID     int64
	UserID int64
	Title  string
	Person string
	Date   string
	Time   string
	Note   string
}

// OwnedEvent is an Event joined with its owner's username.
type OwnedEvent struct {
	Event
	OwnerUsername string
}

// EventInput holds the mutable fields of an Event.
type EventInput struct {
	Title  string `validate:"required,max=200"`
	Person string `validate:"max=200"`
	Date   string `validate:"required"`
	Time   string
	Note   string `validate:"max=2000"`
}
