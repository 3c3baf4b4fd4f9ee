// Package ratelimiter implements token bucket rate limiting with an
// in-memory store and HTTP middleware.
//
// A bucket holds up to Capacity tokens and regains RefillRate tokens every
// RefillInterval. Each request consumes one token; a request that drives the
// bucket below zero is denied until the next refill.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	if err != nil { ... }
//
//	r.Use(ratelimiter.Middleware(limiter, ratelimiter.WithKeyFunc(ratelimiter.ByClientIP)))
//
// The middleware sets X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every response and Retry-After on denials.
package ratelimiter
