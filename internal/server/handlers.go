package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/MeKo-Tech/langid/internal/identifier"
)

// modelDetails is implemented by scorers that expose their hyperparameters
// (*langmodel.Model does); the inventory endpoint reports them when present.
type modelDetails interface {
	NgramSize() int
	Smooth() float64
	PadUtterances() bool
	ContextCount() int
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	s.writeJSON(w, http.StatusOK, response)
}

// modelsHandler returns the loaded model inventory.
func (s *Server) modelsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	langs := s.identifier.Languages()
	infos := make([]ModelInfo, 0, len(langs))
	for _, lang := range langs {
		info := ModelInfo{Language: lang}
		if scorer, ok := s.identifier.Scorer(lang); ok {
			if d, ok := scorer.(modelDetails); ok {
				info.NgramSize = d.NgramSize()
				info.Smooth = d.Smooth()
				info.PadUtterances = d.PadUtterances()
				info.Contexts = d.ContextCount()
			}
		}
		infos = append(infos, info)
	}

	s.writeJSON(w, http.StatusOK, ModelsResponse{Models: infos, Count: len(infos)})
}

// identifyHandler scores a text under every model and returns the winner.
func (s *Server) identifyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req IdentifyRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if req.Text == "" {
		s.writeIdentifyError(w, "text must not be empty", http.StatusBadRequest)
		return
	}

	identifyTextLength.Observe(float64(utf8.RuneCountInString(req.Text)))

	start := time.Now()
	scores := s.identifier.Scores(req.Text)
	identifyDuration.Observe(time.Since(start).Seconds())

	best, ok := identifier.PickBest(scores)
	if !ok {
		identifyRequestsTotal.WithLabelValues("degenerate", "").Inc()
		s.writeIdentifyError(w, "text yields no n-grams and cannot be scored", http.StatusUnprocessableEntity)
		return
	}

	identifyRequestsTotal.WithLabelValues("ok", best).Inc()
	s.writeJSON(w, http.StatusOK, IdentifyResponse{
		Success:  true,
		Language: best,
		Scores:   scores,
	})
}

// scoreHandler scores a text under one named model.
func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScoreRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	if req.Text == "" || req.Language == "" {
		s.writeJSON(w, http.StatusBadRequest, ScoreResponse{Error: "text and language must not be empty"})
		return
	}

	scorer, ok := s.identifier.Scorer(req.Language)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, ScoreResponse{Error: fmt.Sprintf("no model for language %q", req.Language)})
		return
	}

	val, scored := scorer.Score(req.Text)
	s.writeJSON(w, http.StatusOK, ScoreResponse{
		Success:  true,
		Language: req.Language,
		Score:    val,
		Scored:   scored,
	})
}

// decodeRequest parses a JSON body with the configured size limit. It writes
// the error response itself and reports whether decoding succeeded.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		s.writeIdentifyError(w, "invalid JSON request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) writeIdentifyError(w http.ResponseWriter, msg string, status int) {
	s.writeJSON(w, status, IdentifyResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
