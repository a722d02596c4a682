// internal/journal/store.go
//
// Query helpers for entries and activities.
//
/*
Context
--------
Thin, parameterised sqlx queries; no business logic.  The soft-delete rule
shows up as a `status = 'Active'` predicate on every read and mutation, so
a deleted entry is indistinguishable from a missing one — both surface as
ErrNotFound.  Activity rows are append-only: there is an insert and a
listing join, nothing else.

Entry timestamps (`date`, `timestamp`) default in the database, so creates
re-read the row to return the stored values.

Notes
-----
  • Oxford commas, two spaces after periods.
  • Max line length 100 columns.
*/
package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound reports an entry that is absent or already soft-deleted.
var ErrNotFound = errors.New("entry not found or already deleted")

const entryColumns = `id, title, content, date, pin_color, status`

// Store runs queries against the entry and activity tables.
type Store struct {
	db *sqlx.DB
}

// NewStore returns a Store bound to db.
func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

/*──────────────────────────── entries ─────────────────────────────────────*/

// CreateEntry inserts a new Active entry and returns the stored row,
// including the database-assigned date and defaults.
func (s *Store) CreateEntry(ctx context.Context, title, content, pinColor string) (*Entry, error) {
	if pinColor == "" {
		pinColor = DefaultPinColor
	}

	const q = `INSERT INTO entry (title, content, pin_color) VALUES (?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q, title, content, pinColor)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.EntryByID(ctx, id)
}

// ActiveEntries returns every Active entry in insertion order.
func (s *Store) ActiveEntries(ctx context.Context) ([]Entry, error) {
	const q = `SELECT ` + entryColumns + ` FROM entry WHERE status = 'Active' ORDER BY id`

	entries := make([]Entry, 0, 16)
	if err := s.db.SelectContext(ctx, &entries, q); err != nil {
		return nil, err
	}
	return entries, nil
}

// EntryByID fetches one Active entry.  Missing and soft-deleted rows both
// return ErrNotFound.
func (s *Store) EntryByID(ctx context.Context, id int64) (*Entry, error) {
	const q = `SELECT ` + entryColumns + ` FROM entry WHERE id = ? AND status = 'Active' LIMIT 1`

	var e Entry
	err := s.db.GetContext(ctx, &e, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// SaveEntry persists the mutable fields of e.  The Active predicate keeps
// a concurrent soft-delete from being overwritten.
func (s *Store) SaveEntry(ctx context.Context, e *Entry) error {
	const q = `UPDATE entry SET title = ?, content = ?, pin_color = ?
	            WHERE id = ? AND status = 'Active'`

	res, err := s.db.ExecContext(ctx, q, e.Title, e.Content, e.PinColor, e.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete transitions one Active entry to Deleted.  Deleting twice
// returns ErrNotFound the second time.
func (s *Store) SoftDelete(ctx context.Context, id int64) error {
	const q = `UPDATE entry SET status = 'Deleted' WHERE id = ? AND status = 'Active'`

	res, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// EntriesSince returns Active entries dated at or after since, in
// insertion order.  Used by the weekly report.
func (s *Store) EntriesSince(ctx context.Context, since time.Time) ([]Entry, error) {
	const q = `SELECT ` + entryColumns + ` FROM entry
	            WHERE status = 'Active' AND date >= ? ORDER BY id`

	entries := make([]Entry, 0, 16)
	if err := s.db.SelectContext(ctx, &entries, q, since); err != nil {
		return nil, err
	}
	return entries, nil
}

/*──────────────────────────── activities ──────────────────────────────────*/

// AppendActivity writes one audit record.  entryID may be nil for
// entry-less actions.
func (s *Store) AppendActivity(ctx context.Context, action string, entryID *int64, details string) error {
	const q = `INSERT INTO activity (action, entry_id, details) VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, q, action, entryID, details)
	return err
}

// Activities returns every audit record, oldest first, with the referenced
// entry's title resolved where the reference still points somewhere.
func (s *Store) Activities(ctx context.Context) ([]ActivityView, error) {
	const q = `SELECT a.id, a.action, a.entry_id, a.details, a.timestamp,
	                  e.title AS entry_title
	             FROM activity a
	             LEFT JOIN entry e ON e.id = a.entry_id
	            ORDER BY a.id`

	views := make([]ActivityView, 0, 32)
	if err := s.db.SelectContext(ctx, &views, q); err != nil {
		return nil, err
	}
	return views, nil
}
