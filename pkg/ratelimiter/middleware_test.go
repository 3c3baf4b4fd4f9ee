package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/clientip"
	"github.com/dmitrymomot/folio/pkg/ratelimiter"
)

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("store down")
}

func (failingStore) Reset(context.Context, string) error { return nil }

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("limits by client address", func(t *testing.T) {
		t.Parallel()
		c := newClock()
		b, _ := newBucket(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 10 * time.Second})
		h := ratelimiter.Middleware(b, ratelimiter.WithMiddlewareClock(c.Now))(ok)

		rec := serve(h, "192.0.2.1:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))

		rec = serve(h, "192.0.2.1:2000")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "10", rec.Header().Get("Retry-After"))

		rec = serve(h, "192.0.2.2:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("uses the resolved client address", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, newClock(), ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		h := clientip.Middleware()(ratelimiter.Middleware(b)(ok))

		send := func(forwarded string) int {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:80"
			req.Header.Set("X-Forwarded-For", forwarded)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			return rec.Code
		}
		assert.Equal(t, http.StatusOK, send("198.51.100.1"))
		assert.Equal(t, http.StatusOK, send("198.51.100.2"))
		assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	})

	t.Run("custom denied handler", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, newClock(), ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		denied := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("slow down"))
		})
		h := ratelimiter.Middleware(b, ratelimiter.WithDeniedHandler(denied))(ok)

		serve(h, "192.0.2.1:1")
		rec := serve(h, "192.0.2.1:1")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "slow down", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("empty key is not limited", func(t *testing.T) {
		t.Parallel()
		b, store := newBucket(t, newClock(), ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
		h := ratelimiter.Middleware(b, ratelimiter.WithKeyFunc(func(*http.Request) string { return "" }))(ok)

		for range 3 {
			assert.Equal(t, http.StatusOK, serve(h, "192.0.2.1:1").Code)
		}
		assert.Equal(t, 0, store.Len())
	})

	t.Run("store failure lets requests through", func(t *testing.T) {
		t.Parallel()
		b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
		require.NoError(t, err)
		h := ratelimiter.Middleware(b)(ok)

		rec := serve(h, "192.0.2.1:1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	path := func(r *http.Request) string { return r.URL.Path }
	empty := func(*http.Request) string { return "" }

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.RemoteAddr = "192.0.2.1:1"
	assert.Equal(t, "192.0.2.1:/api/projects", ratelimiter.Composite(ratelimiter.ByClientIP, empty, path)(req))

	long := httptest.NewRequest(http.MethodGet, "/"+strings.Repeat("x", 100), nil)
	key := ratelimiter.Composite(path)(long)
	assert.NotEmpty(t, key)
	assert.LessOrEqual(t, len(key), 64)
	assert.Equal(t, key, ratelimiter.Composite(path)(long))
}
