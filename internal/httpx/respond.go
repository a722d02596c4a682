// internal/httpx/respond.go
//
// JSON response envelope helpers shared by both handler sets.
//
// Every error leaving the service has the shape {"error": "<message>"},
// and the message is always a fixed, client-safe string.  Whatever detail
// the failure carried goes to the log at the call site, never to the
// caller.
package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// JSON writes v with the given status.  Encoding failures are logged; at
// that point the status line is already gone so there is nothing else to do.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorw("encode response", "err", err)
	}
}

// Error writes the standard {"error": msg} envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Message writes the standard {"message": msg} envelope.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}
