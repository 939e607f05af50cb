// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/gravadora/internal/platform/constants"
	"github.com/taibuivan/gravadora/internal/platform/respond"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle longer than
// [constants.RateLimitClientTTL] are forgotten.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
}

// RateLimit applies the default limits. Idle buckets are swept until ctx is done.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go limiter.sweepUntil(ctx, constants.RateLimitCleanupInterval)
	return limiter.Middleware
}

func (limiter *RateLimiter) Allow(clientIP string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	entry, ok := limiter.buckets[clientIP]
	if !ok {
		entry = &bucket{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.buckets[clientIP] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (limiter *RateLimiter) sweepUntil(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.mu.Lock()
			for ip, entry := range limiter.buckets {
				if now.Sub(entry.lastSeen) > constants.RateLimitClientTTL {
					delete(limiter.buckets, ip)
				}
			}
			limiter.mu.Unlock()
		}
	}
}

// Middleware answers 429 once the caller's bucket is empty.
func (limiter *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if !limiter.Allow(RealIP(request), time.Now()) {
			respond.JSON(writer, http.StatusTooManyRequests, respond.ErrorEnvelope{
				Code:  "RATE_LIMITED",
				Error: "Too many requests, slow down",
			})
			return
		}
		next.ServeHTTP(writer, request)
	})
}
