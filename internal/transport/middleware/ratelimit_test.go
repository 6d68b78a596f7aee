package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bookloan-backend/pkg/ctxutil"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(t *testing.T) (*RateLimiter, *manualClock) {
	t.Helper()
	rl := NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)
	clock := &manualClock{now: time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)}
	rl.now = clock.Now
	return rl, clock
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func send(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.RemoteAddr = remoteAddr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(10)(okHandler)

	for i := range 10 {
		assert.Equal(t, http.StatusOK, send(handler, "1.2.3.4:1234").Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(5)(okHandler)

	for range 5 {
		require.Equal(t, http.StatusOK, send(handler, "1.2.3.4:1234").Code)
	}

	rec := send(handler, "1.2.3.4:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "12", rec.Header().Get("Retry-After"))
	assert.Equal(t, codeRateLimited, decodeErrorCode(t, rec))
}

func TestRateLimiter_SameIPDifferentPortsShareBucket(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(2)(okHandler)

	send(handler, "1.1.1.1:1000")
	send(handler, "1.1.1.1:2000")

	assert.Equal(t, http.StatusTooManyRequests, send(handler, "1.1.1.1:3000").Code)
	assert.Equal(t, http.StatusOK, send(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_KeyedByBorrower(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(1)(okHandler)

	sendAs := func(userID uuid.UUID) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req = req.WithContext(ctxutil.WithUserID(req.Context(), userID))
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	alice, bob := uuid.New(), uuid.New()
	assert.Equal(t, http.StatusOK, sendAs(alice))
	assert.Equal(t, http.StatusTooManyRequests, sendAs(alice))
	assert.Equal(t, http.StatusOK, sendAs(bob), "borrowers behind one IP are limited separately")
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl, clock := newTestLimiter(t)
	// 60 per minute = 1 per second.
	handler := rl.Limit(60)(okHandler)

	for range 60 {
		send(handler, "3.3.3.3:1234")
	}
	require.Equal(t, http.StatusTooManyRequests, send(handler, "3.3.3.3:1234").Code)

	clock.Advance(time.Second)
	assert.Equal(t, http.StatusOK, send(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_DisabledWhenZero(t *testing.T) {
	rl, _ := newTestLimiter(t)
	handler := rl.Limit(0)(okHandler)

	for range 100 {
		require.Equal(t, http.StatusOK, send(handler, "4.4.4.4:1").Code)
	}
	assert.Equal(t, 0, rl.size())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(t)
	handler := rl.Limit(5)(okHandler)

	send(handler, "5.5.5.5:1")
	send(handler, "6.6.6.6:1")
	require.Equal(t, 2, rl.size())

	clock.Advance(90 * time.Second)
	send(handler, "6.6.6.6:1")
	clock.Advance(45 * time.Second)
	rl.evictIdle()

	assert.Equal(t, 1, rl.size())
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(time.Minute)
	rl.Stop()
	rl.Stop()
}

func TestRateLimiter_ZeroCleanupIntervalNoEviction(t *testing.T) {
	rl := NewRateLimiter(0)
	t.Cleanup(rl.Stop)
	handler := rl.Limit(2)(okHandler)

	assert.Equal(t, http.StatusOK, send(handler, "7.7.7.7:1").Code)
	assert.Equal(t, http.StatusOK, send(handler, "7.7.7.7:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(handler, "7.7.7.7:1").Code)
	assert.Equal(t, 1, rl.size())
}
