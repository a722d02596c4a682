// Package metrics holds Prometheus instruments used across the service.
// All collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EmailCaptures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "email_captures_total",
			Help: "Cumulative number of email records captured.",
		})

	EmailDuplicates = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "email_capture_duplicates_total",
			Help: "Cumulative number of capture attempts rejected as duplicates.",
		})

	EntriesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_entries_created_total",
			Help: "Cumulative number of journal entries created.",
		})

	EntriesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_entries_deleted_total",
			Help: "Cumulative number of journal entries soft-deleted.",
		})

	ReportDownloads = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_report_downloads_total",
			Help: "Cumulative number of weekly CSV reports served.",
		})

	ActivityWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_write_errors_total",
			Help: "Cumulative number of best-effort audit writes that failed.",
		})
)

func init() {
	prometheus.MustRegister(
		EmailCaptures,
		EmailDuplicates,
		EntriesCreated,
		EntriesDeleted,
		ReportDownloads,
		ActivityWriteErrors,
	)
}
