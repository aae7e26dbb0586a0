package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/interviai/backend/internal/config"
	"github.com/interviai/backend/internal/model/interview"
)

// EmptyReply substitutes for a successful generation that produced no text.
// It is a normal reply, not a fault.
const EmptyReply = "No response from AI"

// Service adapts the chat model into the answer generator consumed by the
// relay, plus resume summarization for uploads.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService compiles the prompt chain over the configured chat model.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
		chain:     runnable,
	}, nil
}

// Answer generates one interview reply. A single attempt, no retry; any
// upstream error is returned as-is for the relay to absorb.
func (s *Service) Answer(ctx context.Context, sessionKey, messageText, resumeSummary string, history []interview.Message) (string, error) {
	input := map[string]any{
		"system":  interviewerPrompt(resumeSummary),
		"history": historyMessages(history),
		"query":   fmt.Sprintf("Answer the following: %s", messageText),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated reply session=%s length=%d", sessionKey, len(response.Content))
	if response.Content == "" {
		return EmptyReply, nil
	}
	return response.Content, nil
}

// SummarizeResume produces the short resume summary stored on the user
// profile and fed back as interview context.
func (s *Service) SummarizeResume(ctx context.Context, resumeText string) (string, error) {
	input := map[string]any{
		"system":  resumeExpertPrompt,
		"history": []*schema.Message(nil),
		"query":   fmt.Sprintf("give a short summary of the following resume: %s", resumeText),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run AI chain: %w", err)
	}

	log.Printf("[ai] generated resume summary length=%d", len(response.Content))
	if response.Content == "" {
		return EmptyReply, nil
	}
	return response.Content, nil
}

func historyMessages(messages []interview.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Sender {
		case interview.SenderUser:
			history = append(history, schema.UserMessage(msg.Content))
		case interview.SenderAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
