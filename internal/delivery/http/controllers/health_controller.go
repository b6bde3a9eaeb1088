package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	h "eventhub/internal/delivery/http/helpers"
)

// Pinger reports whether the persistence layer is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the response body for GET /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

type HealthController struct {
	Logger  *slog.Logger
	DB      Pinger
	Timeout time.Duration
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db, Timeout: 2 * time.Second}
}

// Root godoc
// @Summary Greeting
// @Tags health
// @Produce plain
// @Success 200 {string} string "Hello from the Backend API!"
// @Router / [get]
func (c *HealthController) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "Hello from the Backend API!")
}

// Healthz godoc
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Failure 503 {object} helpers.MessageResponse
// @Router /healthz [get]
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "database ping failed", "err", err)
		h.WriteJSONError(w, http.StatusServiceUnavailable, "Database connection failed!")
		return
	}
	h.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}
