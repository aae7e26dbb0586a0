package interview

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/interviai/backend/internal/service/relay"
)

const readDeadline = 60 * time.Second

// Handler serves the live interview relay endpoint and the one-shot
// question route.
type Handler struct {
	relay     *relay.Service
	generator relay.AnswerGenerator
	upgrader  websocket.Upgrader
}

// New creates the interview handler. allowedOrigin is the browser origin
// permitted to open relay connections; non-browser clients carry no Origin
// header and are accepted.
func New(relaySvc *relay.Service, generator relay.AnswerGenerator, allowedOrigin string) *Handler {
	return &Handler{
		relay:     relaySvc,
		generator: generator,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the relay websocket and question routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/interview/ws", h.handleWebSocket)
	r.Post("/aiquestion", h.handleQuestion)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type joinMessage struct {
	SessionKey string `json:"sessionKey"`
}

type utteranceMessage struct {
	SessionKey    string `json:"sessionKey"`
	MessageText   string `json:"messageText"`
	ResumeSummary string `json:"resumeSummary,omitempty"`
}

type outgoingMessage struct {
	Type       string      `json:"type"`
	SessionKey string      `json:"sessionKey,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Timestamp  int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[websocket] connection opened from %s", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := newClient(conn)
	defer h.relay.Disconnect(context.WithoutCancel(ctx), c)

	conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})

	go c.writePump(ctx)

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[websocket] read error: %v", err)
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(readDeadline))
		h.handleMessage(ctx, c, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *client, msg *inboundMessage) {
	switch msg.Type {
	case "join":
		h.handleJoin(ctx, c, msg.Data)
	case "utterance":
		h.handleUtterance(ctx, c, msg.Data)
	default:
		c.enqueueError("unsupported message type: " + msg.Type)
	}
}

func (h *Handler) handleJoin(ctx context.Context, c *client, raw json.RawMessage) {
	var join joinMessage
	if err := json.Unmarshal(raw, &join); err != nil {
		c.enqueueError("invalid join payload")
		return
	}
	if join.SessionKey == "" {
		c.enqueueError("sessionKey is required")
		return
	}

	h.relay.Join(ctx, c, join.SessionKey)
}

func (h *Handler) handleUtterance(ctx context.Context, c *client, raw json.RawMessage) {
	var utterance utteranceMessage
	if err := json.Unmarshal(raw, &utterance); err != nil {
		c.enqueueError("invalid utterance payload")
		return
	}
	if utterance.SessionKey == "" {
		c.enqueueError("sessionKey is required")
		return
	}

	// Each utterance runs as its own task so one slow generation never
	// blocks the read loop. The sender disconnecting must not abort a
	// broadcast still owed to other members, so the connection's cancel
	// is stripped; the relay applies its own deadline.
	go func() {
		err := h.relay.HandleUtterance(context.WithoutCancel(ctx), relay.Utterance{
			SessionKey:    utterance.SessionKey,
			MessageText:   utterance.MessageText,
			ResumeSummary: utterance.ResumeSummary,
		})
		if err != nil {
			c.enqueueError(err.Error())
		}
	}()
}
