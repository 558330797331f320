package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/langid/internal/identifier"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketIdentifyRequest is one identification request frame.
type WebSocketIdentifyRequest struct {
	Text string `json:"text"`
}

// WebSocketIdentifyResponse is one response frame. The server streams one
// "score" frame per candidate model followed by a single "result" frame.
type WebSocketIdentifyResponse struct {
	Type     string                    `json:"type"` // "score", "result", "error"
	Score    *identifier.LanguageScore `json:"score,omitempty"`
	Language string                    `json:"language,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// identifyWebSocketHandler streams per-model scores for each submitted text.
func (s *Server) identifyWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)
	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes identify requests from one connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var req WebSocketIdentifyRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		if req.Text == "" {
			if err := conn.WriteJSON(WebSocketIdentifyResponse{Type: "error", Error: "text must not be empty"}); err != nil {
				return
			}
			continue
		}

		scores := s.identifier.Scores(req.Text)
		for i := range scores {
			frame := WebSocketIdentifyResponse{Type: "score", Score: &scores[i]}
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}

		best, ok := identifier.PickBest(scores)
		final := WebSocketIdentifyResponse{Type: "result", Language: best}
		if !ok {
			final = WebSocketIdentifyResponse{Type: "error", Error: "text yields no n-grams and cannot be scored"}
			identifyRequestsTotal.WithLabelValues("degenerate", "").Inc()
		} else {
			identifyRequestsTotal.WithLabelValues("ok", best).Inc()
		}
		if err := conn.WriteJSON(final); err != nil {
			return
		}
	}
}
