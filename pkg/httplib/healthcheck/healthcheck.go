package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// Checker probes one dependency. A nil error means it is usable.
type Checker func(ctx context.Context) error

// HealthCheck answers GET /health. With no checks registered it is a plain
// liveness probe; otherwise every check must pass for a 200.
type HealthCheck struct {
	Checks  map[string]Checker
	Timeout time.Duration
}

// Result is the body written by ServeHTTP.
type Result struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler is used to control the flow of GET /health endpoint
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)

			return
		}

		h.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

// ServeHTTP runs every check and reports the aggregate status.
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := hc.Run(r.Context())

	status := http.StatusOK
	if result.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(result)
}

// Run executes the checks in name order.
func (hc HealthCheck) Run(ctx context.Context) Result {
	result := Result{Status: "ok"}
	if len(hc.Checks) == 0 {
		return result
	}

	if hc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, hc.Timeout)
		defer cancel()
	}

	names := make([]string, 0, len(hc.Checks))
	for name := range hc.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	result.Checks = make(map[string]string, len(names))
	for _, name := range names {
		if err := hc.Checks[name](ctx); err != nil {
			result.Status = "degraded"
			result.Checks[name] = err.Error()
			continue
		}
		result.Checks[name] = "ok"
	}

	return result
}

// IsHealthCheckRequest is used to check if the request is a health check request
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == "GET" && r.URL.Path == "/health"
}
