// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
Sits first in the chain.  For every request it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Extracts the candidate client address via the shared clientip helper
     (left-most X-Forwarded-For token → X-Real-Ip → socket address).
  3. Stores a *RequestInfo value in the request context under an unexported
     key, so handlers can read UA, IP, URL, and timestamp attributes
     without reparsing.

Geolocation is NOT done here — only the capture flow pays for a MaxMind
lookup, and it does so against the *resolved public* address, which this
middleware does not have.

Instrumentation
---------------
Each invocation logs a DEBUG span with client IP, browser family, device
class, bot flag, and the request path.

Notes
-----
  • UA parsing and the header reads are allocation-light and lock-free, so
    the middleware is safe under heavy concurrency.
  • Oxford commas, two spaces after periods.
*/
package requestinfo

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/webdevx/journal-backend/internal/clientip"
)

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:        parseUA(r.UserAgent(), r.Header.Get("Accept-Language")),
			ClientIP:  clientip.FromRequest(r),
			URL:       r.URL, // pointer copy; safe for read-only access
			Timestamp: time.Now().UTC(),
		}

		zap.S().Debugw("request info",
			"ip", info.ClientIP,
			"browser", info.UA.Browser,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
			"method", r.Method,
			"path", r.URL.Path,
		)

		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
