// internal/clientip/resolver_test.go
//
// Unit-tests for the public-IP resolver.
//
// Context
// -------
// Three behaviors matter: a public header address passes through with no
// outbound call, a private or malformed candidate forces the fallback, and
// fallback failures surface as ErrUnresolvable.  The fallback endpoint is an
// httptest server so no real network traffic occurs.

package clientip

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newRequest(remoteAddr string, hdr map[string]string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/emails", nil)
	r.RemoteAddr = remoteAddr
	for k, v := range hdr {
		r.Header.Set(k, v)
	}
	return r
}

func TestResolve_PublicHeaderAddress_NoFallback(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"ip":"203.0.113.7"}`))
	}))
	defer srv.Close()

	rv := New(srv.URL, time.Second)
	req := newRequest("10.0.0.9:44120", map[string]string{
		"X-Forwarded-For": "8.8.8.8, 10.0.0.9",
	})

	got, err := rv.Resolve(req)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "8.8.8.8" {
		t.Fatalf("Resolve = %q, want 8.8.8.8", got)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("fallback called %d times for a public header address", calls)
	}
}

func TestResolve_MappedIPv6PrefixStripped(t *testing.T) {
	rv := New("http://unused.invalid", time.Second)
	req := newRequest("127.0.0.1:5000", map[string]string{
		"X-Forwarded-For": "::ffff:93.184.216.34",
	})

	got, err := rv.Resolve(req)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "93.184.216.34" {
		t.Fatalf("Resolve = %q, want 93.184.216.34", got)
	}
}

func TestResolve_PrivateAddressUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ip":"203.0.113.7"}`))
	}))
	defer srv.Close()

	rv := New(srv.URL, time.Second)

	// Every private or loopback prefix must be replaced by the fallback
	// answer, never echoed back.
	for _, candidate := range []string{"192.168.1.4", "10.1.2.3", "172.16.0.8", "127.0.0.1"} {
		req := newRequest("127.0.0.1:9000", map[string]string{"X-Forwarded-For": candidate})
		got, err := rv.Resolve(req)
		if err != nil {
			t.Fatalf("Resolve(%s) error: %v", candidate, err)
		}
		if got != "203.0.113.7" {
			t.Fatalf("Resolve(%s) = %q, want fallback answer", candidate, got)
		}
	}
}

func TestResolve_SocketAddressFallbackPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ip":"198.51.100.20"}`))
	}))
	defer srv.Close()

	rv := New(srv.URL, time.Second)

	// No headers at all: candidate is the loopback socket address, which
	// must trigger the fallback.
	got, err := rv.Resolve(newRequest("127.0.0.1:61044", nil))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != "198.51.100.20" {
		t.Fatalf("Resolve = %q, want 198.51.100.20", got)
	}
}

func TestResolve_FallbackNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	rv := New(srv.URL, time.Second)
	_, err := rv.Resolve(newRequest("192.168.0.2:100", nil))
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("err = %v, want ErrUnresolvable", err)
	}
}

func TestResolve_FallbackNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	rv := New(srv.URL, time.Second)
	_, err := rv.Resolve(newRequest("10.0.0.1:80", nil))
	if !errors.Is(err, ErrUnresolvable) {
		t.Fatalf("err = %v, want ErrUnresolvable", err)
	}
}

func TestFromRequest_HeaderPrecedence(t *testing.T) {
	req := newRequest("172.20.0.4:9999", map[string]string{
		"X-Forwarded-For": " 1.2.3.4 ,5.6.7.8",
		"X-Real-Ip":       "9.9.9.9",
	})
	if got := FromRequest(req); got != "1.2.3.4" {
		t.Fatalf("FromRequest = %q, want first forwarded token", got)
	}

	req = newRequest("172.20.0.4:9999", map[string]string{"X-Real-Ip": "9.9.9.9"})
	if got := FromRequest(req); got != "9.9.9.9" {
		t.Fatalf("FromRequest = %q, want X-Real-Ip", got)
	}

	req = newRequest("172.20.0.4:9999", nil)
	if got := FromRequest(req); got != "172.20.0.4" {
		t.Fatalf("FromRequest = %q, want socket host", got)
	}
}
