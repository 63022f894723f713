// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/hashicorp/consul/api"
)

// Status enumerates the health statuses reported by the check endpoint.
type Status int

const (
	// StatusPassing indicates that the service is fully healthy.
	StatusPassing Status = iota

	// StatusWarning indicates that the service can still take some
	// traffic, but that something is wrong.
	StatusWarning

	// StatusCritical means that the service cannot take traffic.
	StatusCritical

	// StatusMaint indicates a service that is temporarily unavailable,
	// most often due to maintenance.
	StatusMaint
)

// StatusText returns the consul health status text for this Status.  Any
// unrecognized value maps to critical.
func (s Status) StatusText() string {
	switch s {
	case StatusPassing:
		return api.HealthPassing

	case StatusWarning:
		return api.HealthWarning

	case StatusMaint:
		return api.HealthMaint

	default:
		return api.HealthCritical
	}
}

// healthResponse is the JSON shape served by the check endpoint.
type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health holds the mutable health state served at the launcher's health
// path.  It is safe for concurrent access.  The zero value is not usable;
// create instances with NewHealth.
type Health struct {
	lock   sync.RWMutex
	status Status
	detail string
}

// NewHealth constructs a Health in the passing state.
func NewHealth() *Health {
	return new(Health)
}

// Set updates the reported status.  The detail text is included in the
// response body for non-passing states.
func (h *Health) Set(status Status, detail string) {
	defer h.lock.Unlock()
	h.lock.Lock()

	h.status = status
	h.detail = detail
}

// Get returns the current status and detail text.
func (h *Health) Get() (Status, string) {
	defer h.lock.RUnlock()
	h.lock.RLock()

	return h.status, h.detail
}

// Handler returns the HTTP handler the consul agent check polls.  Passing
// and warning states respond 200 with {"status":"ok"}; anything else
// responds 503 with {"status":"unavailable"} and the detail text.
func (h *Health) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		status, detail := h.Get()
		w.Header().Set("Content-Type", "application/json")

		if status == StatusPassing || status == StatusWarning {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
			return
		}

		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(healthResponse{Status: "unavailable", Error: detail})
	})
}
