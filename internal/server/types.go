// Package server exposes language identification over HTTP: REST endpoints
// for identify/score/model inventory, Prometheus metrics, and a WebSocket
// endpoint streaming per-candidate scores.
package server

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/langid/internal/identifier"
)

// identifierInterface defines what the server needs from the identifier.
type identifierInterface interface {
	Identify(text string) (string, bool)
	Scores(text string) []identifier.LanguageScore
	Languages() []string
	Scorer(language string) (identifier.Scorer, bool)
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	identifier   identifierInterface
	corsOrigin   string
	maxBodyBytes int64
}

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	CORSOrigin string
	MaxBodyKB  int64
	Identifier *identifier.Identifier
}

// Response types for API endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type ModelInfo struct {
	Language      string  `json:"language"`
	NgramSize     int     `json:"ngram_size"`
	Smooth        float64 `json:"smooth"`
	PadUtterances bool    `json:"pad_utterances"`
	Contexts      int     `json:"contexts"`
}

type ModelsResponse struct {
	Models []ModelInfo `json:"models"`
	Count  int         `json:"count"`
}

type IdentifyRequest struct {
	Text string `json:"text"`
}

type IdentifyResponse struct {
	Success  bool                       `json:"success"`
	Language string                     `json:"language,omitempty"`
	Scores   []identifier.LanguageScore `json:"scores,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

type ScoreRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type ScoreResponse struct {
	Success  bool    `json:"success"`
	Language string  `json:"language,omitempty"`
	Score    float64 `json:"score"`
	Scored   bool    `json:"scored"`
	Error    string  `json:"error,omitempty"`
}

// NewServer creates a new identification server instance.
func NewServer(config Config) (*Server, error) {
	if config.Identifier == nil {
		return nil, errors.New("server requires a loaded identifier")
	}
	maxBodyKB := config.MaxBodyKB
	if maxBodyKB <= 0 {
		maxBodyKB = 64
	}
	return &Server{
		identifier:   config.Identifier,
		corsOrigin:   config.CORSOrigin,
		maxBodyBytes: maxBodyKB * 1024,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/models", s.corsMiddleware(s.modelsHandler))
	mux.HandleFunc("/identify", s.corsMiddleware(s.identifyHandler))
	mux.HandleFunc("/score", s.corsMiddleware(s.scoreHandler))
	mux.HandleFunc("/ws/identify", s.identifyWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
