// Package health provides HTTP liveness and readiness handlers for the
// Quiesce diagnostics endpoint.
//
//   - /healthz — liveness; always 200 while the process serves HTTP.
//   - /readyz  — readiness; 200 only when every registered probe passes.
//
// Probes are cheap boolean checks (reader reachable, capability marker
// present), so unlike service health checks they carry no timeout or context.
// Responses are JSON with a top-level "status" and a per-probe "checks" map.
package health

import (
	"encoding/json"
	"net/http"
)

// Probe is a named readiness check. Check returns true when the dependency
// is available. It must be safe for concurrent use and must not block.
type Probe struct {
	// Name labels the probe in the JSON response (e.g. "reader", "marker").
	Name string

	// Check reports availability.
	Check func() bool
}

// result is the JSON response body for health endpoints.
type result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler serves the /healthz and /readyz endpoints. The probe list is fixed
// at construction time; Handler is safe for concurrent use when its probes
// are.
type Handler struct {
	probes []Probe
}

// New creates a [Handler] that evaluates the given probes, in order, on each
// /readyz request.
func New(probes ...Probe) *Handler {
	p := make([]Probe, len(probes))
	copy(p, probes)
	return &Handler{probes: p}
}

// Healthz is the liveness endpoint; it always returns 200 OK.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, result{Status: "ok"})
}

// Readyz returns 200 only when every probe passes, 503 otherwise. Individual
// probe outcomes are reported either way.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	res := result{
		Status: "ok",
		Checks: make(map[string]string, len(h.probes)),
	}
	status := http.StatusOK

	for _, p := range h.probes {
		if p.Check() {
			res.Checks[p.Name] = "ok"
			continue
		}
		res.Checks[p.Name] = "unavailable"
		res.Status = "fail"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, res)
}

// Register adds the /healthz and /readyz routes to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

func writeJSON(w http.ResponseWriter, status int, body result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
