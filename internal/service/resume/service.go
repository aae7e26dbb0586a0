package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/interviai/backend/internal/model/user"
)

var ErrNoText = errors.New("no text could be extracted from the resume")

// Summarizer condenses raw resume text. Implemented by ai.Service.
type Summarizer interface {
	SummarizeResume(ctx context.Context, resumeText string) (string, error)
}

// Service turns an uploaded resume file into a stored summary on the user
// profile.
type Service struct {
	store      user.Store
	summarizer Summarizer
	extract    func(r io.ReaderAt, size int64) (string, error)
}

// NewService builds the upload pipeline over the given store and summarizer.
func NewService(store user.Store, summarizer Summarizer) *Service {
	return &Service{
		store:      store,
		summarizer: summarizer,
		extract:    extractPDFText,
	}
}

// ProcessUpload extracts the resume text, summarizes it, persists the summary
// to the user record, and returns it.
func (s *Service) ProcessUpload(ctx context.Context, userID string, file io.ReaderAt, size int64) (string, error) {
	text, err := s.extract(file, size)
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}
	if text == "" {
		return "", ErrNoText
	}

	summary, err := s.summarizer.SummarizeResume(ctx, text)
	if err != nil {
		return "", fmt.Errorf("failed to summarize resume: %w", err)
	}

	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	u.ResumeSummary = summary
	if err := s.store.Update(ctx, u); err != nil {
		return "", err
	}

	log.Printf("[resume] summary stored user=%s length=%d", userID, len(summary))
	return summary, nil
}
