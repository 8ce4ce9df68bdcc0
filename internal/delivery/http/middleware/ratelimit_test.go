package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	calls := 0
	handler := RateLimit(rl)(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	do := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "http://test/bookings", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusCreated, do("10.0.0.1:1001").Code)
	limited := do("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	// another client has its own bucket
	assert.Equal(t, http.StatusCreated, do("10.0.0.2:1000").Code)
	assert.Equal(t, 3, calls)
}

func TestRateLimit_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, 0)
	handler := RateLimit(rl)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	for i := 0; i < 20; i++ {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodPost, "http://test/bookings", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}
}

func TestRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.get("a")
	now = now.Add(2 * time.Minute)
	rl.get("b")
	rl.Sweep(time.Minute)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.clients, "a")
	assert.Contains(t, rl.clients, "b")
}
