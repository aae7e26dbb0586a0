package interview

import "time"

// Session is one live interview conversation, keyed by the candidate-supplied
// session key. It exists only for the process lifetime.
type Session struct {
	Key           string    `json:"key"`
	ResumeSummary string    `json:"resumeSummary,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
