// internal/email/handler.go
//
// Email-capture endpoint.
//
/*
Context
--------
POST /api/emails records a visitor's address together with their resolved
public IP and geolocated country.  The handler owns method dispatch (the
legacy deployment served this as a single serverless function), so OPTIONS
preflight and the 405 path live here rather than on the router.

Flow per POST: decode body → resolve public IP → geolocate → normalize and
validate → insert.  Validation runs before the insert so the rules are
unit-testable without a database; the unique constraint stays in the
database, which is the only place it can be race-free.

Error mapping
-------------
  • missing email           → 400 "Email is required"
  • bad email / IP shape    → 400 joined per-field messages
  • duplicate address       → 400 "Email already exists" (legacy-compatible,
    a 409 would be more precise)
  • resolver or DB failure  → 500 "Server error", detail logged only

Notes
-----
  • When the enrichment middleware has run, the capture log also carries
    the visitor's parsed user-agent; without it the log stays terse.
  • Oxford commas, two spaces after periods.
*/
package email

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/webdevx/journal-backend/internal/httpx"
	"github.com/webdevx/journal-backend/internal/metrics"
	"github.com/webdevx/journal-backend/internal/requestinfo"
	"github.com/webdevx/journal-backend/internal/validate"
)

// Resolver yields the public IPv4 behind a request.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// Locator maps an address to a country display name ("Unknown" on a miss).
type Locator interface {
	CountryName(ip string) string
}

// Handler serves the capture endpoint.
type Handler struct {
	store     *Store
	resolver  Resolver
	locator   Locator
	clientURL string
}

// NewHandler wires the capture dependencies.  clientURL is the CORS
// allow-origin for the browser widget that posts here.
func NewHandler(store *Store, resolver Resolver, locator Locator, clientURL string) *Handler {
	return &Handler{store: store, resolver: resolver, locator: locator, clientURL: clientURL}
}

// ServeHTTP dispatches OPTIONS, POST, and the 405 path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		h.preflight(w)
	case http.MethodPost:
		h.capture(w, r)
	default:
		httpx.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// preflight answers the CORS handshake with no body.
func (h *Handler) preflight(w http.ResponseWriter) {
	hdr := w.Header()
	hdr.Set("Access-Control-Allow-Origin", h.clientURL)
	hdr.Set("Access-Control-Allow-Methods", "GET, POST")
	hdr.Set("Access-Control-Allow-Headers", "Content-Type")
	hdr.Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) capture(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		httpx.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	// Resolver failures are caught here and become a clean 500; the
	// legacy variant let them escape as an unhandled rejection.
	ipAddress, err := h.resolver.Resolve(r)
	if err != nil {
		zap.S().Errorw("resolve public IP", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	location := h.locator.CountryName(ipAddress)
	address := validate.NormalizeEmail(body.Email)

	if msgs := fieldErrors(address, ipAddress, location); len(msgs) > 0 {
		httpx.Error(w, http.StatusBadRequest, strings.Join(msgs, ", "))
		return
	}

	switch err := h.store.Insert(r.Context(), address, ipAddress, location); {
	case errors.Is(err, ErrDuplicate):
		metrics.EmailDuplicates.Inc()
		httpx.Error(w, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		zap.S().Errorw("insert email", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	metrics.EmailCaptures.Inc()
	fields := []any{"location", location}
	if ri := requestinfo.FromContext(r.Context()); ri != nil {
		fields = append(fields, "browser", ri.UA.Browser, "device", ri.UA.Device, "bot", ri.UA.IsBot)
	}
	zap.S().Infow("email captured", fields...)

	w.Header().Set("Access-Control-Allow-Origin", h.clientURL)
	httpx.Message(w, http.StatusCreated, "Email saved successfully")
}

// fieldErrors applies the schema rules the storage layer used to own.
func fieldErrors(address, ipAddress, location string) []string {
	var msgs []string
	if !validate.ValidEmail(address) {
		msgs = append(msgs, "Invalid email format")
	}
	if !validate.ValidIPv4(ipAddress) {
		msgs = append(msgs, "Invalid IPv4 format")
	}
	if len(location) < 2 {
		msgs = append(msgs, "Invalid location")
	}
	return msgs
}
