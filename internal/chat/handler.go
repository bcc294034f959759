package chat

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/serenaspa/massoterapia-platform/internal/observability/metrics"
	"github.com/serenaspa/massoterapia-platform/pkg/logging"
	"golang.org/x/net/websocket"
)

const (
	// historyLimit caps the per-session transcript kept in memory.
	historyLimit = 100
	// maxSessions bounds the session table; the least recently active
	// session is evicted when a new one would exceed it.
	maxSessions = 1000
	// sessionTTL is how long an idle session's transcript is kept.
	sessionTTL = 30 * time.Minute
)

// HistoryMessage is one transcript entry.
type HistoryMessage struct {
	Role      string `json:"role"` // "assistant" or "user"
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// InboundMessage is what the widget sends over the socket.
type InboundMessage struct {
	Type      string `json:"type"` // "message", "ping"
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type         string           `json:"type"` // "message", "typing", "history", "session", "pong"
	Text         string           `json:"text,omitempty"`
	Role         string           `json:"role,omitempty"`
	SessionID    string           `json:"session_id,omitempty"`
	Timestamp    string           `json:"timestamp,omitempty"`
	Messages     []HistoryMessage `json:"messages,omitempty"`
	QuickReplies []string         `json:"quick_replies,omitempty"`
}

type session struct {
	messages   []HistoryMessage
	lastActive time.Time
}

// Handler manages chat sessions over HTTP and WebSocket. Session ids are
// client-supplied, so the table is bounded: idle sessions expire after
// sessionTTL and the table never grows past maxSessions.
type Handler struct {
	responder *Responder
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewHandler creates a chat handler. phone is the clinic contact number used
// in canned replies; empty selects the default.
func NewHandler(phone string, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder: NewResponder(phone),
		metrics:   m,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// record appends a transcript entry, trimming the oldest beyond the cap.
// Creating a session first expires idle ones and, if the table is still
// full, evicts the least recently active.
func (h *Handler) record(sessionID string, msg HistoryMessage) {
	now := h.now()
	h.mu.Lock()
	defer h.mu.Unlock()

	sess, ok := h.sessions[sessionID]
	if !ok {
		h.pruneLocked(now)
		if len(h.sessions) >= maxSessions {
			h.evictOldestLocked()
		}
		sess = &session{}
		h.sessions[sessionID] = sess
	}

	sess.messages = append(sess.messages, msg)
	if len(sess.messages) > historyLimit {
		sess.messages = sess.messages[len(sess.messages)-historyLimit:]
	}
	sess.lastActive = now
}

func (h *Handler) pruneLocked(now time.Time) {
	cutoff := now.Add(-sessionTTL)
	for id, sess := range h.sessions {
		if sess.lastActive.Before(cutoff) {
			delete(h.sessions, id)
		}
	}
}

func (h *Handler) evictOldestLocked() {
	var oldestID string
	var oldest time.Time
	for id, sess := range h.sessions {
		if oldestID == "" || sess.lastActive.Before(oldest) {
			oldestID = id
			oldest = sess.lastActive
		}
	}
	if oldestID != "" {
		delete(h.sessions, oldestID)
	}
}

func (h *Handler) history(sessionID string) []HistoryMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sess, ok := h.sessions[sessionID]
	if !ok {
		return nil
	}
	return append([]HistoryMessage(nil), sess.messages...)
}

// exchange records the visitor message, computes the canned reply and
// records it too. Returns the reply entry.
func (h *Handler) exchange(sessionID, text string) HistoryMessage {
	ts := h.now().UTC().Format(time.RFC3339)
	h.record(sessionID, HistoryMessage{Role: "user", Text: text, Timestamp: ts})
	reply := HistoryMessage{Role: "assistant", Text: h.responder.Reply(text), Timestamp: ts}
	h.record(sessionID, reply)
	return reply
}

// HandleMessage is the HTTP fallback for widgets without WebSocket support.
// POST /chat/message
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID string `json:"session_id"`
		Text      string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = generateSessionID()
	}

	h.metrics.ObserveMessage("http")
	reply := h.exchange(req.SessionID, req.Text)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(OutboundMessage{
		Type:      "message",
		Role:      reply.Role,
		Text:      reply.Text,
		SessionID: req.SessionID,
		Timestamp: reply.Timestamp,
	})
}

// HandleHistory returns the transcript for a session.
// GET /chat/history?session=<id>
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	history := h.history(sessionID)
	if history == nil {
		history = []HistoryMessage{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"messages": history})
}

// HandleWebSocket upgrades to WebSocket for real-time chat.
// GET /chat/ws?session=<id>
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:         "session",
		SessionID:    sessionID,
		QuickReplies: QuickReplies,
	})

	history := h.history(sessionID)
	if len(history) > 0 {
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "history", Messages: history})
	} else {
		// Greet fresh sessions the way the widget does on open.
		greeting := HistoryMessage{
			Role:      "assistant",
			Text:      Greeting,
			Timestamp: h.now().UTC().Format(time.RFC3339),
		}
		h.record(sessionID, greeting)
		_ = websocket.JSON.Send(conn, OutboundMessage{
			Type:      "message",
			Role:      greeting.Role,
			Text:      greeting.Text,
			Timestamp: greeting.Timestamp,
		})
	}

	h.logger.Info("chat: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("chat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "message" || strings.TrimSpace(msg.Text) == "" {
			continue
		}

		h.metrics.ObserveMessage("websocket")
		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

		reply := h.exchange(sessionID, msg.Text)
		_ = websocket.JSON.Send(conn, OutboundMessage{
			Type:      "message",
			Role:      reply.Role,
			Text:      reply.Text,
			Timestamp: reply.Timestamp,
		})
	}
}
