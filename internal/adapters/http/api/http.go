// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// Activity mirrors the read shape returned by directory queries.
type Activity = model.Activity

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// List returns the full directory keyed by activity name.
	List(ctx context.Context) (map[string]Activity, error)

	// Signup registers email for the named activity.
	Signup(ctx context.Context, activity, email string) error

	// Unregister removes email from the named activity.
	Unregister(ctx context.Context, activity, email string) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	activitiesHandler   *ActivitiesHandler
	registrationHandler *RegistrationHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		activitiesHandler:   NewActivitiesHandler(deps),
		registrationHandler: NewRegistrationHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.activitiesHandler.HandleListActivities, "activities"))
	mux.HandleFunc("/activities/", MetricsMiddleware(s.registrationHandler.HandleRegistration, "registration"))
}

// messageResponse is the success body for signup/unregister.
type messageResponse struct {
	Message string `json:"message"`
}

// detailResponse is the error body shape: a human-readable detail string.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
