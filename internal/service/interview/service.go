package interview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/interviai/backend/internal/model/interview"
)

var ErrSessionNotFound = errors.New("session not found")

// HistoryLimit caps how many transcript turns are fed back to the model as
// conversation context.
const HistoryLimit = 10

// Service keeps in-memory session and transcript state for live interviews.
// Sessions appear when the first participant joins and vanish with the last
// one; nothing outlives the process.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]interview.Session
	messages map[string][]interview.Message
}

// NewService bootstraps the in-memory interview state.
func NewService() *Service {
	return &Service{
		sessions: make(map[string]interview.Session),
		messages: make(map[string][]interview.Message),
	}
}

// EnsureSession returns the session for key, creating it on first use.
func (s *Service) EnsureSession(_ context.Context, key, resumeSummary string) interview.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[key]; ok {
		if resumeSummary != "" && session.ResumeSummary == "" {
			session.ResumeSummary = resumeSummary
			s.sessions[key] = session
		}
		return s.sessions[key]
	}

	session := interview.Session{
		Key:           key,
		ResumeSummary: resumeSummary,
		CreatedAt:     time.Now().UTC(),
	}
	s.sessions[key] = session
	s.messages[key] = make([]interview.Message, 0, 16)
	return session
}

// SaveMessage appends a transcript turn to the session.
func (s *Service) SaveMessage(_ context.Context, message interview.Message) error {
	if message.SessionKey == "" {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionKey]; !ok {
		return ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.messages[message.SessionKey] = append(s.messages[message.SessionKey], message)
	return nil
}

// Transcript returns a copy of the stored turns for the session.
func (s *Service) Transcript(_ context.Context, key string) ([]interview.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[key]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]interview.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// History returns the trailing transcript window used as model context.
func (s *Service) History(ctx context.Context, key string) []interview.Message {
	messages, err := s.Transcript(ctx, key)
	if err != nil || len(messages) == 0 {
		return nil
	}
	if len(messages) > HistoryLimit {
		messages = messages[len(messages)-HistoryLimit:]
	}
	return messages
}

// Remove drops the session and its transcript.
func (s *Service) Remove(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	delete(s.messages, key)
}
