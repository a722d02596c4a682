// internal/journal/store_test.go
//
// Unit-tests for the journal store using sqlmock.
//
// Run: go test ./internal/journal -v

package journal

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

const (
	selectEntryQ = `SELECT id, title, content, date, pin_color, status FROM entry ` +
		`WHERE id = ? AND status = 'Active' LIMIT 1`
	entryCols = "id, title, content, date, pin_color, status"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(sqlx.NewDb(db, "sqlmock")), mock
}

func entryRows(entries ...Entry) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "title", "content", "date", "pin_color", "status"})
	for _, e := range entries {
		rows.AddRow(e.ID, e.Title, e.Content, e.Date, e.PinColor, e.Status)
	}
	return rows
}

func TestCreateEntry_AppliesDefaultPinColor(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO entry (title, content, pin_color) VALUES (?, ?, ?)`,
	)).
		WithArgs("A", "B", "green").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectEntryQ)).
		WithArgs(int64(7)).
		WillReturnRows(entryRows(Entry{ID: 7, Title: "A", Content: "B", Date: now,
			PinColor: "green", Status: StatusActive}))

	entry, err := store.CreateEntry(context.Background(), "A", "B", "")
	if err != nil {
		t.Fatalf("CreateEntry error: %v", err)
	}
	if entry.ID != 7 || entry.PinColor != "green" || entry.Status != StatusActive {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestEntryByID_SoftDeletedReadsAsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	// The Active predicate filters the row out, so the driver sees no rows.
	mock.ExpectQuery(regexp.QuoteMeta(selectEntryQ)).
		WithArgs(int64(3)).
		WillReturnRows(entryRows())

	_, err := store.EntryByID(context.Background(), 3)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSoftDelete_SecondDeleteNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	q := regexp.QuoteMeta(`UPDATE entry SET status = 'Deleted' WHERE id = ? AND status = 'Active'`)
	mock.ExpectExec(q).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.SoftDelete(context.Background(), 5); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.SoftDelete(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestSaveEntry_ConcurrentDeleteNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE entry SET title = ?, content = ?, pin_color = ? WHERE id = ? AND status = 'Active'`,
	)).
		WithArgs("A", "B", "red", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.SaveEntry(context.Background(),
		&Entry{ID: 9, Title: "A", Content: "B", PinColor: "red"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestActiveEntries(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+entryCols+` FROM entry WHERE status = 'Active' ORDER BY id`,
	)).
		WillReturnRows(entryRows(
			Entry{ID: 1, Title: "A", Content: "B", Date: now, PinColor: "green", Status: StatusActive},
			Entry{ID: 2, Title: "C", Content: "D", Date: now, PinColor: "red", Status: StatusActive},
		))

	entries, err := store.ActiveEntries(context.Background())
	if err != nil {
		t.Fatalf("ActiveEntries error: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != 1 || entries[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", entries)
	}
}

func TestActivities_ResolvesTitlesNullSafe(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()
	id := int64(1)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT a.id, a.action, a.entry_id, a.details, a.timestamp, e.title AS entry_title `+
			`FROM activity a LEFT JOIN entry e ON e.id = a.entry_id ORDER BY a.id`,
	)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "action", "entry_id", "details", "timestamp", "entry_title"}).
			AddRow(1, "create", id, "Created entry with title: A", now, "A").
			AddRow(2, "download", nil, "User downloaded journal report for the week", now, nil))

	views, err := store.Activities(context.Background())
	if err != nil {
		t.Fatalf("Activities error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len = %d, want 2", len(views))
	}
	if views[0].EntryTitle == nil || *views[0].EntryTitle != "A" {
		t.Fatalf("first view title = %v", views[0].EntryTitle)
	}
	if views[1].EntryID != nil || views[1].EntryTitle != nil {
		t.Fatalf("entry-less view carried a reference: %+v", views[1])
	}
}

func TestAppendActivity_NilEntryID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO activity (action, entry_id, details) VALUES (?, ?, ?)`,
	)).
		WithArgs("download", nil, "User downloaded journal report for the week").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := store.AppendActivity(context.Background(), "download", nil,
		"User downloaded journal report for the week")
	if err != nil {
		t.Fatalf("AppendActivity error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
