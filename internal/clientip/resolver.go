// internal/clientip/resolver.go
//
// Public-IP resolution for the email-capture flow.
//
/*
Context
--------
The capture record stores the visitor's *public* IPv4 address.  Behind a
proxy the socket address is useless, and on a developer laptop every hop is
loopback, so resolution runs in two stages:

  1. Pick a candidate: first X-Forwarded-For token → X-Real-Ip →
     connection source address.  An IPv4-mapped-IPv6 prefix ("::ffff:")
     is stripped.
  2. If the candidate fails the IPv4 shape check, or sits in a private or
     loopback range, ask a public what-is-my-IP endpoint instead.

The fallback answer is the server's own egress address, identical for every
caller, so concurrent lookups are coalesced through singleflight — one
outbound GET serves all waiters.

Notes
-----
  • The outbound call is bounded by the client timeout (3 s default); any
    network error, non-2xx status, or malformed body maps to ErrUnresolvable.
  • Oxford commas, two spaces after periods.
*/
package clientip

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/webdevx/journal-backend/internal/validate"
)

// ErrUnresolvable is returned when the fallback lookup cannot produce a
// usable public address.  Handlers map it to a generic 500.
var ErrUnresolvable = errors.New("unable to determine public IP")

const defaultTimeout = 3 * time.Second

// Resolver answers "which public IPv4 sent this request".  Safe for
// concurrent use.
type Resolver struct {
	endpoint string
	client   *http.Client
	group    singleflight.Group
}

// New returns a Resolver that consults endpoint when the request headers do
// not carry a usable public address.  A non-positive timeout falls back to
// three seconds.
func New(endpoint string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Resolver{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FromRequest extracts the candidate client address without any fallback:
// first X-Forwarded-For token, then X-Real-Ip, then the socket address.
// Exported so the rate limiter can key buckets the same way.
func FromRequest(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if xr := r.Header.Get("X-Real-Ip"); xr != "" {
		return strings.TrimSpace(xr)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Resolve returns the public IPv4 for the request.  Header-supplied public
// addresses are returned directly; everything else goes through the
// fallback endpoint.
func (rv *Resolver) Resolve(r *http.Request) (string, error) {
	ip := strings.TrimPrefix(FromRequest(r), "::ffff:")

	if validate.ValidIPv4(ip) && !validate.PrivateIPv4(ip) {
		return ip, nil
	}
	return rv.public()
}

// public performs the coalesced outbound lookup.
func (rv *Resolver) public() (string, error) {
	v, err, _ := rv.group.Do("public", func() (any, error) {
		resp, err := rv.client.Get(rv.endpoint)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return "", fmt.Errorf("lookup status %d", resp.StatusCode)
		}

		var body struct {
			IP string `json:"ip"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", err
		}
		if !validate.ValidIPv4(body.IP) {
			return "", fmt.Errorf("lookup returned %q", body.IP)
		}
		return body.IP, nil
	})
	if err != nil {
		zap.S().Warnw("public IP lookup failed", "endpoint", rv.endpoint, "err", err)
		return "", ErrUnresolvable
	}
	return v.(string), nil
}
