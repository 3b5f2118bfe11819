// Copyright (c) 2026 Encore. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/encore/internal/platform/apperr"
	"github.com/taibuivan/encore/internal/platform/constants"
	"github.com/taibuivan/encore/internal/platform/respond"
)

// # Rate Limiting

// visitor is the token bucket of one client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors tracks one bucket per client IP.
type visitors struct {
	mu      sync.Mutex
	buckets map[string]*visitor
	limit   rate.Limit
	burst   int
}

func newVisitors(rps float64, burst int) *visitors {
	return &visitors{
		buckets: make(map[string]*visitor),
		limit:   rate.Limit(rps),
		burst:   burst,
	}
}

// allow spends one token from the bucket of ip.
func (v *visitors) allow(ip string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	bucket, ok := v.buckets[ip]
	if !ok {
		bucket = &visitor{limiter: rate.NewLimiter(v.limit, v.burst)}
		v.buckets[ip] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1)
}

// sweep forgets buckets idle for longer than ttl.
func (v *visitors) sweep(now time.Time, ttl time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for ip, bucket := range v.buckets {
		if now.Sub(bucket.lastSeen) > ttl {
			delete(v.buckets, ip)
		}
	}
}

// retryAfter is the whole number of seconds until one token refills.
func (v *visitors) retryAfter() int {
	if v.limit <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(1/float64(v.limit))))
}

// RateLimit applies a per-IP token bucket of rps requests per second with the
// given burst. Idle buckets are swept until context is cancelled.
func RateLimit(context context.Context, rps float64, burst int) func(http.Handler) http.Handler {
	clients := newVisitors(rps, burst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				clients.sweep(now, constants.RateLimitClientTTL)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !clients.allow(RealIP(request), time.Now()) {
				retry := clients.retryAfter()
				writer.Header().Set("Retry-After", strconv.Itoa(retry))
				respond.Error(writer, request, apperr.RateLimited(retry))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
