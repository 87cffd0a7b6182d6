package rest

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 3 * time.Second

// dbPinger is the minimal surface needed for database health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and full health endpoints.
type HealthHandler struct {
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthResponse is the JSON body for all three health endpoints.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus reports one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200; it only proves the process is serving requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when the database responds to a ping, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	db, _ := h.pingDB(r.Context())

	status, body := http.StatusOK, "ok"
	if db.Status != "ok" {
		status, body = http.StatusServiceUnavailable, "down"
	}

	writeJSON(w, status, HealthResponse{Status: body, Timestamp: time.Now()})
}

// Health reports per-component status with latency plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db, ok := h.pingDB(r.Context())

	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: map[string]CompStatus{"database": db},
		Timestamp:  time.Now(),
	}

	status := http.StatusOK
	if !ok {
		resp.Status = "down"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}

func (h *HealthHandler) pingDB(ctx context.Context) (CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}, false
	}

	return CompStatus{Status: "ok", Latency: time.Since(start).String()}, true
}
