package resume

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/interviai/backend/internal/model/user"
)

type stubSummarizer struct {
	summary string
	err     error
	gotText string
}

func (s *stubSummarizer) SummarizeResume(_ context.Context, resumeText string) (string, error) {
	s.gotText = resumeText
	return s.summary, s.err
}

func textExtractor(text string, err error) func(io.ReaderAt, int64) (string, error) {
	return func(io.ReaderAt, int64) (string, error) {
		return text, err
	}
}

func TestProcessUploadStoresSummary(t *testing.T) {
	store := user.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, user.User{Email: "jane@example.com"})
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	summarizer := &stubSummarizer{summary: "Senior backend engineer, 5 yrs"}
	svc := NewService(store, summarizer)
	svc.extract = textExtractor("raw resume text", nil)

	summary, err := svc.ProcessUpload(ctx, created.ID, bytes.NewReader(nil), 0)
	if err != nil {
		t.Fatalf("ProcessUpload err: %v", err)
	}
	if summary != "Senior backend engineer, 5 yrs" {
		t.Fatalf("unexpected summary %q", summary)
	}
	if summarizer.gotText != "raw resume text" {
		t.Fatalf("summarizer got %q", summarizer.gotText)
	}

	stored, err := store.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID err: %v", err)
	}
	if stored.ResumeSummary != summary {
		t.Fatalf("summary not persisted: %q", stored.ResumeSummary)
	}
}

func TestProcessUploadEmptyExtraction(t *testing.T) {
	store := user.NewMemoryStore()
	svc := NewService(store, &stubSummarizer{summary: "unused"})
	svc.extract = textExtractor("", nil)

	_, err := svc.ProcessUpload(context.Background(), "any", bytes.NewReader(nil), 0)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestProcessUploadUnknownUser(t *testing.T) {
	store := user.NewMemoryStore()
	svc := NewService(store, &stubSummarizer{summary: "summary"})
	svc.extract = textExtractor("text", nil)

	_, err := svc.ProcessUpload(context.Background(), "missing", bytes.NewReader(nil), 0)
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessUploadSummarizerFailure(t *testing.T) {
	store := user.NewMemoryStore()
	svc := NewService(store, &stubSummarizer{err: errors.New("model down")})
	svc.extract = textExtractor("text", nil)

	if _, err := svc.ProcessUpload(context.Background(), "any", bytes.NewReader(nil), 0); err == nil {
		t.Fatal("expected error from failed summarization")
	}
}
