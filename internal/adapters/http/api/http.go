// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/critiq/internal/domain/game"
	"github.com/okian/critiq/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Predict scores a validated game input against the loaded model.
	Predict(ctx context.Context, in game.Input) (types.Prediction, error)

	// Read operations expose the loaded reference dataset.
	Options(ctx context.Context) (types.Options, error)
	Examples(ctx context.Context) ([]types.Example, error)
	Insights(ctx context.Context) (types.Insights, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	predictHandler  *PredictHandler
	optionsHandler  *OptionsHandler
	examplesHandler *ExamplesHandler
	insightsHandler *InsightsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		predictHandler:  NewPredictHandler(deps),
		optionsHandler:  NewOptionsHandler(deps),
		examplesHandler: NewExamplesHandler(deps),
		insightsHandler: NewInsightsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/predict", RequestIDMiddleware(MetricsMiddleware(s.predictHandler.HandlePostPredict, "predict")))
	mux.HandleFunc("/options", MetricsMiddleware(s.optionsHandler.HandleGetOptions, "options"))
	mux.HandleFunc("/examples", MetricsMiddleware(s.examplesHandler.HandleGetExamples, "examples"))
	mux.HandleFunc("/insights", MetricsMiddleware(s.insightsHandler.HandleGetInsights, "insights"))
}

// predictRequest mirrors the OpenAPI schema for POST /predict.
type predictRequest struct {
	Metascore    int    `json:"metascore"`
	Month        int    `json:"month"`
	Developer    string `json:"developer"`
	Platform     string `json:"platform"`
	Genre        string `json:"genre"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

func (p predictRequest) toInput() game.Input {
	return game.Input{
		Metascore:    p.Metascore,
		Month:        p.Month,
		Developer:    p.Developer,
		Platform:     p.Platform,
		Genre:        p.Genre,
		Manufacturer: p.Manufacturer,
	}
}

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeValidationError returns a 400 listing every violated constraint.
func writeValidationError(w http.ResponseWriter, verr *game.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Code:    "validation_error",
		Message: verr.Error(),
		Details: verr.Messages,
	})
}
