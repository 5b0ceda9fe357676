package rest

import (
	"context"
	"net/http"
	"time"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sessionCounter interface {
	Len() int
}

// healthTimeout bounds the session store ping.
const healthTimeout = 3 * time.Second

const (
	statusOK   = "ok"
	statusDown = "down"
)

// HealthHandler serves the liveness, readiness and health endpoints.
// Readiness depends on the session store only: lookups degrade without the
// external providers, but syncs cannot be cached without the store.
type HealthHandler struct {
	store     pinger
	component string
	sessions  sessionCounter
	version   string
}

// NewHealthHandler creates a HealthHandler. component names the session
// store in /health output, e.g. "session_cache.redis". sessions may be nil.
func NewHealthHandler(store pinger, component string, sessions sessionCounter, version string) *HealthHandler {
	return &HealthHandler{store: store, component: component, sessions: sessions, version: version}
}

// HealthResponse is the JSON body of every health endpoint.
type HealthResponse struct {
	Status         string                `json:"status"`
	Version        string                `json:"version,omitempty"`
	Components     map[string]CompStatus `json:"components,omitempty"`
	ActiveSessions *int                  `json:"active_sessions,omitempty"`
	Timestamp      time.Time             `json:"timestamp"`
}

// CompStatus is the probe result for one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 200 when the session store responds, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	comp := h.probe(r.Context())
	writeJSON(w, httpStatus(comp), HealthResponse{Status: comp.Status, Timestamp: time.Now()})
}

// Health is Ready plus details: store latency or error, the number of live
// dictionary sessions and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	comp := h.probe(r.Context())

	resp := HealthResponse{
		Status:     comp.Status,
		Version:    h.version,
		Components: map[string]CompStatus{h.component: comp},
		Timestamp:  time.Now(),
	}
	if h.sessions != nil {
		n := h.sessions.Len()
		resp.ActiveSessions = &n
	}
	writeJSON(w, httpStatus(comp), resp)
}

func (h *HealthHandler) probe(ctx context.Context) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		return CompStatus{Status: statusDown, Error: err.Error()}
	}
	return CompStatus{Status: statusOK, Latency: time.Since(start).String()}
}

func httpStatus(c CompStatus) int {
	if c.Status != statusOK {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
