package interview

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/interviai/backend/internal/service/relay"
)

const sendBuffer = 16

// client implements relay.Member over one websocket connection. Outbound
// frames go through the send channel so broadcasts from other goroutines
// never write the socket concurrently.
type client struct {
	conn *websocket.Conn
	send chan outgoingMessage
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan outgoingMessage, sendBuffer),
	}
}

// Deliver enqueues a reply broadcast for this connection. A full buffer or a
// gone connection loses the frame for this member only.
func (c *client) Deliver(reply relay.Reply) error {
	msg := outgoingMessage{
		Type:       "reply",
		SessionKey: reply.SessionKey,
		Data:       map[string]string{"text": reply.Text},
		Timestamp:  time.Now().Unix(),
	}

	select {
	case c.send <- msg:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

func (c *client) enqueueError(message string) {
	msg := outgoingMessage{
		Type:      "error",
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().Unix(),
	}

	select {
	case c.send <- msg:
	default:
	}
}

// writePump owns all writes to the socket: queued frames plus the periodic
// ping that keeps read deadlines alive.
func (c *client) writePump(ctx context.Context) {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.send:
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[websocket] write failed: %v", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
