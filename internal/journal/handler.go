// internal/journal/handler.go
//
// Journal CRUD endpoints.
//
/*
Context
--------
Mounted under /api/journal.  Every mutating operation appends an audit
record *after* the primary write succeeds; the audit write is best-effort
(logged and counted on failure, never surfaced to the client).

Soft-delete semantics: update and delete only see Active entries, so a
missing id and an already-deleted id produce the same 404.

Error responses never echo driver detail — the fixed legacy messages go to
the client, the detail goes to the log.

Notes
-----
  • Oxford commas, two spaces after periods.
*/
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/webdevx/journal-backend/internal/httpx"
	"github.com/webdevx/journal-backend/internal/metrics"
)

// Handler serves the journal route group.
type Handler struct {
	store *Store
}

// NewHandler returns a Handler over store.
func NewHandler(store *Store) *Handler { return &Handler{store: store} }

// Routes registers the journal endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/activities", h.activities)
	r.Get("/download-report", h.report)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

// entryBody is the create/update payload.  Pointers distinguish "absent"
// from "empty" on partial updates.
type entryBody struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	PinColor *string `json:"pinColor"`
}

// fieldSnapshot renders before/after values inside audit details.  The
// field order matches the legacy log format.
type fieldSnapshot struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	PinColor *string `json:"pinColor,omitempty"`
}

/*──────────────────────────── handlers ────────────────────────────────────*/

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body entryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	if strVal(body.Title) == "" || strVal(body.Content) == "" {
		httpx.Error(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	pinColor := strVal(body.PinColor)
	if pinColor != "" && !ValidPinColor(pinColor) {
		httpx.Error(w, http.StatusBadRequest, "Invalid pin color")
		return
	}

	entry, err := h.store.CreateEntry(r.Context(), *body.Title, *body.Content, pinColor)
	if err != nil {
		zap.S().Errorw("create entry", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to create entry")
		return
	}

	metrics.EntriesCreated.Inc()
	h.audit(r.Context(), "create", &entry.ID,
		fmt.Sprintf("Created entry with title: %s", entry.Title))
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.ActiveEntries(r.Context())
	if err != nil {
		zap.S().Errorw("list entries", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to fetch entries")
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var body entryBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if c := strVal(body.PinColor); c != "" && !ValidPinColor(c) {
		httpx.Error(w, http.StatusBadRequest, "Invalid pin color")
		return
	}

	entry, err := h.store.EntryByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Entry not found or already deleted")
		return
	}
	if err != nil {
		zap.S().Errorw("load entry", "id", id, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	before := fieldSnapshot{Title: &entry.Title, Content: &entry.Content, PinColor: &entry.PinColor}
	beforeJSON, _ := json.Marshal(before)

	// Absent fields keep their prior value; empty strings count as absent,
	// matching the legacy truthiness check.
	if v := strVal(body.Title); v != "" {
		entry.Title = v
	}
	if v := strVal(body.Content); v != "" {
		entry.Content = v
	}
	if v := strVal(body.PinColor); v != "" {
		entry.PinColor = v
	}

	if err := h.store.SaveEntry(r.Context(), entry); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Entry not found or already deleted")
			return
		}
		zap.S().Errorw("save entry", "id", id, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to update entry")
		return
	}

	// The "after" side records only the fields the request carried.
	afterJSON, _ := json.Marshal(fieldSnapshot(body))
	h.audit(r.Context(), "update", &entry.ID,
		fmt.Sprintf("Updated entry from: %s to: %s", beforeJSON, afterJSON))
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := h.store.EntryByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Entry not found or already deleted")
		return
	}
	if err != nil {
		zap.S().Errorw("load entry", "id", id, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	if err := h.store.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Error(w, http.StatusNotFound, "Entry not found or already deleted")
			return
		}
		zap.S().Errorw("soft delete entry", "id", id, "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to delete entry")
		return
	}

	metrics.EntriesDeleted.Inc()
	h.audit(r.Context(), "delete", &entry.ID,
		fmt.Sprintf("Deleted entry with title: %s", entry.Title))
	httpx.Message(w, http.StatusOK, "Entry marked as deleted")
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	views, err := h.store.Activities(r.Context())
	if err != nil {
		zap.S().Errorw("list activities", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}
	httpx.JSON(w, http.StatusOK, views)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// audit appends a best-effort activity record.  In-flight writes run to
// completion even if the client has gone, so the request context is
// detached from cancellation.
func (h *Handler) audit(ctx context.Context, action string, entryID *int64, details string) {
	ctx = context.WithoutCancel(ctx)
	if err := h.store.AppendActivity(ctx, action, entryID, details); err != nil {
		metrics.ActivityWriteErrors.Inc()
		zap.S().Errorw("append activity", "action", action, "err", err)
	}
}

// entryID parses the {id} route parameter, answering 404 on garbage so an
// unparsable id reads the same as a missing one.
func entryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.Error(w, http.StatusNotFound, "Entry not found or already deleted")
		return 0, false
	}
	return id, true
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
