package relay

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/interviai/backend/internal/model/interview"
	interviewsvc "github.com/interviai/backend/internal/service/interview"
)

// FallbackReply is broadcast verbatim whenever the answer generator fails.
// Upstream faults are absorbed here; the session always hears something.
const FallbackReply = "Error generating response"

var ErrEmptyMessage = errors.New("message text is required")

// Utterance is one inbound candidate turn addressed to a session.
type Utterance struct {
	SessionKey    string
	MessageText   string
	ResumeSummary string
}

// Reply is the outbound text broadcast to every member of a session.
type Reply struct {
	SessionKey string
	Text       string
}

// AnswerGenerator produces a reply for an utterance. Implemented by
// ai.Service; faked in tests.
type AnswerGenerator interface {
	Answer(ctx context.Context, sessionKey, messageText, resumeSummary string, history []interview.Message) (string, error)
}

// Member is one connected participant. Deliver errors are the member's
// problem: a dropped connection never fails the broadcast to the rest.
type Member interface {
	Deliver(reply Reply) error
}

// Service routes utterances to replies. It owns the session registry:
// which members belong to which session key. Constructed at startup and
// injected into the websocket handler; there is no package-level state.
type Service struct {
	generator   AnswerGenerator
	transcripts *interviewsvc.Service
	timeout     time.Duration

	mu         sync.RWMutex
	rooms      map[string]map[Member]struct{}
	membership map[Member]string
}

// NewService builds a relay over the given generator and transcript store.
// timeout bounds each generator call; zero means no bound.
func NewService(generator AnswerGenerator, transcripts *interviewsvc.Service, timeout time.Duration) *Service {
	return &Service{
		generator:   generator,
		transcripts: transcripts,
		timeout:     timeout,
		rooms:       make(map[string]map[Member]struct{}),
		membership:  make(map[Member]string),
	}
}

// Join adds m to the session's member set, creating the session on demand.
// A member belongs to at most one session: joining a new key moves it.
// Join always succeeds.
func (s *Service) Join(ctx context.Context, m Member, sessionKey string) {
	s.transcripts.EnsureSession(ctx, sessionKey, "")

	s.mu.Lock()
	s.detachLocked(ctx, m)
	room, ok := s.rooms[sessionKey]
	if !ok {
		room = make(map[Member]struct{})
		s.rooms[sessionKey] = room
	}
	room[m] = struct{}{}
	s.membership[m] = sessionKey
	s.mu.Unlock()

	log.Printf("[relay] member joined session=%s members=%d", sessionKey, s.MemberCount(sessionKey))
}

// Disconnect removes m from whatever session it belongs to. The last member
// leaving tears the session down.
func (s *Service) Disconnect(ctx context.Context, m Member) {
	s.mu.Lock()
	s.detachLocked(ctx, m)
	s.mu.Unlock()
}

func (s *Service) detachLocked(ctx context.Context, m Member) {
	key, ok := s.membership[m]
	if !ok {
		return
	}
	delete(s.membership, m)

	room, ok := s.rooms[key]
	if !ok {
		return
	}
	delete(room, m)
	if len(room) == 0 {
		delete(s.rooms, key)
		s.transcripts.Remove(ctx, key)
		log.Printf("[relay] session closed key=%s", key)
	}
}

// MemberCount reports the current size of a session's member set.
func (s *Service) MemberCount(sessionKey string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms[sessionKey])
}

// HandleUtterance runs one turn: record the utterance, call the generator,
// broadcast exactly one reply to the session. Generator failures (including
// the deadline expiring) are converted to the fixed fallback broadcast and
// never returned to the caller. Only an empty message is an error, and it
// produces no broadcast.
//
// Each call is independent; nothing serializes concurrent utterances for one
// session, so two in-flight turns broadcast in generator-completion order.
func (s *Service) HandleUtterance(ctx context.Context, u Utterance) error {
	if u.MessageText == "" {
		return ErrEmptyMessage
	}

	// Any connection may address any session key; the session comes into
	// being if it does not exist yet.
	s.transcripts.EnsureSession(ctx, u.SessionKey, u.ResumeSummary)
	history := s.transcripts.History(ctx, u.SessionKey)

	userTurn := interview.Message{
		SessionKey: u.SessionKey,
		Sender:     interview.SenderUser,
		Content:    u.MessageText,
	}
	if err := s.transcripts.SaveMessage(ctx, userTurn); err != nil {
		log.Printf("[relay] save user turn failed session=%s: %v", u.SessionKey, err)
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var text string
	var err error
	if s.generator == nil {
		err = errors.New("answer generator unavailable")
	} else {
		text, err = s.generator.Answer(callCtx, u.SessionKey, u.MessageText, u.ResumeSummary, history)
	}
	if err != nil {
		log.Printf("[relay] generation failed session=%s: %v", u.SessionKey, err)
		text = FallbackReply
	} else {
		assistantTurn := interview.Message{
			SessionKey: u.SessionKey,
			Sender:     interview.SenderAssistant,
			Content:    text,
		}
		if saveErr := s.transcripts.SaveMessage(ctx, assistantTurn); saveErr != nil {
			log.Printf("[relay] save assistant turn failed session=%s: %v", u.SessionKey, saveErr)
		}
	}

	s.Broadcast(u.SessionKey, text)

	// A turn addressed to a session nobody joined must not leave transcript
	// state behind; only member lifecycle keeps a session alive.
	s.mu.Lock()
	if _, ok := s.rooms[u.SessionKey]; !ok {
		s.transcripts.Remove(ctx, u.SessionKey)
	}
	s.mu.Unlock()

	return nil
}

// Broadcast fans text out to every current member of the session. Delivery
// failures are logged and skipped; remaining members still receive the reply.
func (s *Service) Broadcast(sessionKey, text string) {
	s.mu.RLock()
	members := make([]Member, 0, len(s.rooms[sessionKey]))
	for m := range s.rooms[sessionKey] {
		members = append(members, m)
	}
	s.mu.RUnlock()

	reply := Reply{SessionKey: sessionKey, Text: text}
	for _, m := range members {
		if err := m.Deliver(reply); err != nil {
			log.Printf("[relay] deliver failed session=%s: %v", sessionKey, err)
		}
	}
}
