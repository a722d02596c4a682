// internal/journal/report.go
//
// Weekly CSV report export.
//
// Context
// -------
// GET /download-report serializes the Active entries of the last seven
// days as semicolon-delimited text.  Each entry's single timestamp is
// split into a display date ("Monday 2 January 2006") and a 24-hour time
// ("15:04").  The download audit record is written after the response body
// has gone out; a failure there is logged and counted, never surfaced —
// the client already has its file.
package journal

import (
	"encoding/csv"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/webdevx/journal-backend/internal/httpx"
	"github.com/webdevx/journal-backend/internal/metrics"
)

const (
	reportDateLayout = "Monday 2 January 2006"
	reportTimeLayout = "15:04"
	reportWindow     = 7 // days
)

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	since := time.Now().AddDate(0, 0, -reportWindow)

	entries, err := h.store.EntriesSince(r.Context(), since)
	if err != nil {
		zap.S().Errorw("load report entries", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}
	if len(entries) == 0 {
		httpx.Error(w, http.StatusNotFound, "No entries found for this week")
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=journal_report.csv")
	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	_ = cw.Write([]string{"title", "content", "date", "time"})
	for _, e := range entries {
		_ = cw.Write([]string{
			e.Title,
			e.Content,
			e.Date.Format(reportDateLayout),
			e.Date.Format(reportTimeLayout),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Mid-stream write failure; the status line is already sent.
		zap.S().Errorw("write report", "err", err)
		return
	}

	metrics.ReportDownloads.Inc()
	h.audit(r.Context(), "download", nil, "User downloaded journal report for the week")
}
