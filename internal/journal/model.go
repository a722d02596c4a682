// internal/journal/model.go
//
// Persistence models for journal entries and their activity trail.
package journal

import "time"

// Entry lifecycle statuses.  Deletion is a status transition; rows are
// never physically removed.
const (
	StatusActive  = "Active"
	StatusDeleted = "Deleted"
)

// DefaultPinColor is applied when a create request omits pinColor.
const DefaultPinColor = "green"

// pinColors is the allowed enum set for Entry.PinColor.
var pinColors = map[string]bool{
	"yellow": true,
	"red":    true,
	"green":  true,
	"orange": true,
}

// ValidPinColor reports whether c is one of the allowed pin colors.
func ValidPinColor(c string) bool { return pinColors[c] }

// Entry is one journal note.
type Entry struct {
	ID       int64     `db:"id"        json:"id"`
	Title    string    `db:"title"     json:"title"`
	Content  string    `db:"content"   json:"content"`
	Date     time.Time `db:"date"      json:"date"`
	PinColor string    `db:"pin_color" json:"pinColor"`
	Status   string    `db:"status"    json:"status"`
}

// Activity is one append-only audit record.  EntryID is a weak reference:
// it is nil for entry-less actions (report downloads), and the referenced
// entry may itself be soft-deleted later.
type Activity struct {
	ID        int64     `db:"id"        json:"id"`
	Action    string    `db:"action"    json:"action"`
	EntryID   *int64    `db:"entry_id"  json:"entryId"`
	Details   string    `db:"details"   json:"details"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
}

// ActivityView is an Activity with the referenced entry's title resolved
// for the listing endpoint.  EntryTitle is nil when the reference is.
type ActivityView struct {
	Activity
	EntryTitle *string `db:"entry_title" json:"entryTitle"`
}
