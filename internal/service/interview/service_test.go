package interview_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	model "github.com/interviai/backend/internal/model/interview"
	interview "github.com/interviai/backend/internal/service/interview"
)

func TestEnsureSessionIsIdempotent(t *testing.T) {
	svc := interview.NewService()
	ctx := context.Background()

	first := svc.EnsureSession(ctx, "u1", "resume summary")
	second := svc.EnsureSession(ctx, "u1", "")

	if first.Key != "u1" || second.Key != "u1" {
		t.Fatalf("unexpected keys: %q %q", first.Key, second.Key)
	}
	if second.ResumeSummary != "resume summary" {
		t.Fatalf("expected resume summary preserved, got %q", second.ResumeSummary)
	}
	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Fatal("expected the same session on repeat ensure")
	}
}

func TestSaveMessageRequiresSession(t *testing.T) {
	svc := interview.NewService()
	ctx := context.Background()

	err := svc.SaveMessage(ctx, model.Message{SessionKey: "missing", Sender: model.SenderUser, Content: "hi"})
	if !errors.Is(err, interview.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	svc := interview.NewService()
	ctx := context.Background()

	svc.EnsureSession(ctx, "u1", "")
	if err := svc.SaveMessage(ctx, model.Message{SessionKey: "u1", Sender: model.SenderUser, Content: "hello"}); err != nil {
		t.Fatalf("SaveMessage err: %v", err)
	}

	turns, err := svc.Transcript(ctx, "u1")
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if turns[0].ID == "" {
		t.Fatal("expected assigned message id")
	}
	if turns[0].Content != "hello" {
		t.Fatalf("unexpected content %q", turns[0].Content)
	}
}

func TestHistoryWindowIsBounded(t *testing.T) {
	svc := interview.NewService()
	ctx := context.Background()

	svc.EnsureSession(ctx, "u1", "")
	for i := 0; i < interview.HistoryLimit+5; i++ {
		msg := model.Message{SessionKey: "u1", Sender: model.SenderUser, Content: fmt.Sprintf("turn-%d", i)}
		if err := svc.SaveMessage(ctx, msg); err != nil {
			t.Fatalf("SaveMessage err: %v", err)
		}
	}

	history := svc.History(ctx, "u1")
	if len(history) != interview.HistoryLimit {
		t.Fatalf("expected %d history turns, got %d", interview.HistoryLimit, len(history))
	}
	if history[len(history)-1].Content != fmt.Sprintf("turn-%d", interview.HistoryLimit+4) {
		t.Fatalf("expected the trailing window, got last=%q", history[len(history)-1].Content)
	}
}

func TestRemoveDropsSessionAndTranscript(t *testing.T) {
	svc := interview.NewService()
	ctx := context.Background()

	svc.EnsureSession(ctx, "u1", "")
	svc.Remove(ctx, "u1")

	if _, err := svc.Transcript(ctx, "u1"); !errors.Is(err, interview.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after remove, got %v", err)
	}
}
