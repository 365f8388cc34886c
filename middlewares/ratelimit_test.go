package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2)
	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(remoteAddr string, session *Session) int {
		r := httptest.NewRequest(http.MethodPost, "/login", nil)
		r.RemoteAddr = remoteAddr
		if session != nil {
			r = r.WithContext(WithSession(r.Context(), session))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234", nil))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:5678", nil))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:9999", nil))

	// other clients get their own limiter
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1234", nil))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234", &Session{UserID: uuid.New()}))
}

func TestRateLimiterCleanupDropsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	clock := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return clock }

	limiter.getLimiter("10.0.0.1")
	clock = clock.Add(20 * time.Minute)
	limiter.getLimiter("10.0.0.2")

	assert.Equal(t, 1, limiter.Cleanup(10*time.Minute))
	assert.Equal(t, 1, limiter.size())

	clock = clock.Add(time.Hour)
	assert.Equal(t, 1, limiter.Cleanup(10*time.Minute))
	assert.Equal(t, 0, limiter.size())
}

func TestRateLimiterStartCleanup(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	limiter.getLimiter("10.0.0.1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter.StartCleanup(ctx, time.Millisecond, 0)

	assert.Eventually(t, func() bool { return limiter.size() == 0 }, time.Second, 5*time.Millisecond)
}
