package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventhub/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(60, 2)
	l.now = func() time.Time { return now }

	handler := l.Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001").Code)

	rr := call("10.0.0.1:1002")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "60", rr.Header().Get("Retry-After"))
	var body helpers.MessageResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, MsgTooManyRequests, body.Message)

	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000").Code, "other clients keep their own budget")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1003").Code, "one token refills per second")
}

func TestRateLimiter_Disabled(t *testing.T) {
	called := 0
	next := func(w http.ResponseWriter, r *http.Request) { called++ }
	handler := NewRateLimiter(0, 0).Wrap(next)
	for i := 0; i < 5; i++ {
		handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	}
	assert.Equal(t, 5, called)

	var nilLimiter *RateLimiter
	nilLimiter.Wrap(next)(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, 6, called)
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewRateLimiter(60, 1)
	l.now = func() time.Time { return now }

	require.True(t, l.allow("a"))
	now = now.Add(limiterTTL + time.Minute)
	require.True(t, l.allow("b"))
	assert.NotContains(t, l.limiters, "a")
	assert.Contains(t, l.limiters, "b")
}
