package assistant

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/bramliclinic/clinic-platform/internal/observability/metrics"
	"github.com/bramliclinic/clinic-platform/pkg/logging"
)

// Handler manages chat widget connections and their sessions.
type Handler struct {
	machine *Machine
	logger  *logging.Logger
	metrics *metrics.AssistantMetrics

	mu       sync.RWMutex
	sessions map[string]*Session // sessionID -> active session
}

// InboundMessage is what the widget sends.
type InboundMessage struct {
	Type   string `json:"type"` // "start", "option", "cta", "message", "restart", "ping"
	Option string `json:"option,omitempty"`
	Text   string `json:"text,omitempty"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type      string   `json:"type"` // "session", "message", "typing", "navigate", "pong", "error"
	SessionID string   `json:"session_id,omitempty"`
	ID        string   `json:"id,omitempty"`
	Role      string   `json:"role,omitempty"`
	Text      string   `json:"text,omitempty"`
	Options   []string `json:"options,omitempty"`
	Typing    *bool    `json:"typing,omitempty"`
}

// NewHandler creates a chat handler around a shared machine.
func NewHandler(machine *Machine, logger *logging.Logger, m *metrics.AssistantMetrics) *Handler {
	if machine == nil {
		panic("assistant: machine is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		machine:  machine,
		logger:   logger,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and drives one widget conversation.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

// wsSink delivers session output over one WebSocket connection.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) send(msg OutboundMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = websocket.JSON.Send(s.conn, msg)
}

func (s *wsSink) MessageAdded(msg Message) {
	s.send(OutboundMessage{
		Type:    "message",
		ID:      msg.ID,
		Role:    string(msg.Role),
		Text:    msg.Content,
		Options: msg.Options,
	})
}

func (s *wsSink) TypingChanged(typing bool) {
	s.send(OutboundMessage{Type: "typing", Typing: &typing})
}

func (s *wsSink) Navigate() {
	s.send(OutboundMessage{Type: "navigate"})
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	sink := &wsSink{conn: conn}
	session := NewSession(sessionID, h.machine, sink, h.logger, h.metrics)

	h.mu.Lock()
	h.sessions[sessionID] = session
	h.mu.Unlock()
	defer func() {
		session.Close()
		h.mu.Lock()
		if h.sessions[sessionID] == session {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
	}()

	sink.send(OutboundMessage{Type: "session", SessionID: sessionID})
	h.logger.Info("assistant: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("assistant: connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			sink.send(OutboundMessage{Type: "pong"})
		case "start":
			session.Handle(Start{})
		case "option":
			if strings.TrimSpace(msg.Option) != "" {
				session.Handle(OptionSelected{Option: msg.Option})
			}
		case "cta":
			if strings.TrimSpace(msg.Option) != "" {
				session.Handle(CTASelected{Option: msg.Option})
			}
		case "message":
			if strings.TrimSpace(msg.Text) != "" {
				session.Handle(FreeText{Text: msg.Text})
			}
		case "restart":
			session.Handle(Restart{})
		}
	}
}

// HandleMessage is the HTTP fallback for clients without WebSocket support.
// It answers a single free-text message synchronously.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	reply := fallbackText
	if h.machine.cfg.FreeTextResponder != nil {
		reply = h.machine.cfg.FreeTextResponder(req.Text)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"reply": reply,
	})
}
