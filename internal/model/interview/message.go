package interview

import "time"

// Senders recorded on interview transcript turns.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Message is a single transcript turn within a session.
type Message struct {
	ID         string    `json:"id"`
	SessionKey string    `json:"sessionKey"`
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
