// internal/middleware/cors.go
//
// Fixed-origin CORS for the journal route group.
//
// The browser client is a single known origin, so this is deliberately not
// a general CORS implementation: one origin, a fixed method list, and a
// fixed header allow-list.  Preflight requests are answered here with 204
// and never reach the handlers.
package middleware

import "net/http"

// CORS returns middleware that allows the given origin on every response
// and short-circuits OPTIONS preflights.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hdr := w.Header()
			hdr.Set("Access-Control-Allow-Origin", origin)
			hdr.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				hdr.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE")
				hdr.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				hdr.Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
