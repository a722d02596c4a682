// internal/middleware/ratelimit.go
//
// Per-client rate limiting for the capture endpoint.
//
/*
Context
--------
The email endpoint is open to the public internet, so it carries a window
limit of N requests per client per window (50 per 15 minutes in
production).  Each client gets a token bucket refilled at N/window; the
buckets live in a small LRU keyed by client address so idle clients age
out instead of growing the map forever.

Responses carry the draft-standard RateLimit-Limit and RateLimit-Remaining
headers.  Excess requests get a fixed 429 JSON body.

Notes
-----
  • Client identity uses the same header chain as the IP resolver, so a
    proxied deployment limits real clients, not the proxy.
  • Oxford commas, two spaces after periods.
*/
package middleware

import (
	"container/list"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/webdevx/journal-backend/internal/clientip"
	"github.com/webdevx/journal-backend/internal/httpx"
)

// maxTrackedClients bounds the bucket table.
const maxTrackedClients = 4096

// bucketLRU is a least-recently-used table of per-client limiters.
type bucketLRU struct {
	mu   sync.Mutex
	cap  int
	ll   *list.List
	dict map[string]*list.Element

	limit rate.Limit
	burst int
}

type bucketPair struct {
	key     string
	limiter *rate.Limiter
}

func newBucketLRU(capacity int, limit rate.Limit, burst int) *bucketLRU {
	return &bucketLRU{
		cap:   capacity,
		ll:    list.New(),
		dict:  make(map[string]*list.Element, capacity),
		limit: limit,
		burst: burst,
	}
}

// get returns the client's limiter, creating it on first sight and marking
// it MRU.  The oldest client is evicted once the table is full.
func (b *bucketLRU) get(key string) *rate.Limiter {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ele, hit := b.dict[key]; hit {
		b.ll.MoveToFront(ele)
		return ele.Value.(bucketPair).limiter
	}

	limiter := rate.NewLimiter(b.limit, b.burst)
	b.dict[key] = b.ll.PushFront(bucketPair{key, limiter})
	if b.ll.Len() > b.cap {
		last := b.ll.Back()
		b.ll.Remove(last)
		delete(b.dict, last.Value.(bucketPair).key)
	}
	return limiter
}

// RateLimit allows n requests per client per window.
func RateLimit(n int, window time.Duration) func(http.Handler) http.Handler {
	buckets := newBucketLRU(maxTrackedClients, rate.Limit(float64(n)/window.Seconds()), n)
	limitHeader := strconv.Itoa(n)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := buckets.get(clientip.FromRequest(r))

			w.Header().Set("RateLimit-Limit", limitHeader)
			if !limiter.Allow() {
				w.Header().Set("RateLimit-Remaining", "0")
				httpx.Error(w, http.StatusTooManyRequests,
					"Too many requests, please try again later.")
				return
			}
			if remaining := int(limiter.Tokens()); remaining >= 0 {
				w.Header().Set("RateLimit-Remaining", strconv.Itoa(remaining))
			}
			next.ServeHTTP(w, r)
		})
	}
}
