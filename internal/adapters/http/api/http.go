// Package api serves the configured deck over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/deckgen/internal/app"
	"github.com/okian/deckgen/internal/domain/layout"
)

// Builder renders decks in memory. *service.Service implements it.
type Builder interface {
	Render(ctx context.Context, req service.Request) ([]byte, *layout.Plan, error)
	Workbook(ctx context.Context, req service.Request) ([]byte, *layout.Plan, error)
	Validate(ctx context.Context, req service.Request) (*layout.Plan, error)
}

// Server wires HTTP routes for the deck API.
type Server struct {
	healthHandler *HealthHandler
	deckHandler   *DeckHandler
}

// NewServer creates a new API server serving the deck at path; an empty
// path serves the embedded deck.
func NewServer(b Builder, path string) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		deckHandler:   NewDeckHandler(b, path),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/deck.pptx", MetricsMiddleware(s.deckHandler.HandlePresentation, "deck"))
	mux.HandleFunc("/deck/outline", MetricsMiddleware(s.deckHandler.HandleOutline, "outline"))
	mux.HandleFunc("/deck/data.xlsx", MetricsMiddleware(s.deckHandler.HandleWorkbook, "workbook"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

// writeBuildError maps build stage errors to HTTP statuses.
func writeBuildError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrLoad),
		errors.Is(err, service.ErrLayout),
		errors.Is(err, service.ErrValidate):
		writeError(w, http.StatusUnprocessableEntity, "invalid_deck", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "cancelled", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
