package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthController_Root(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHealthController(testLogger, fakePinger{}).Root(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Hello from the Backend API!", rr.Body.String())
}

func TestHealthController_Healthz(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewHealthController(testLogger, fakePinger{}).Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var body HealthResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "ok", body.Status)
	})

	t.Run("database down", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewHealthController(testLogger, fakePinger{err: errors.New("refused")}).Healthz(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "Database connection failed!", decodeMessage(t, rr))
	})
}
