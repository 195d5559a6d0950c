package chat

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// Message is a minimal chat message exchanged with the backend. Role must
// be one of: "system", "user", or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Streamer produces an assistant reply as a sequence of text deltas.
// onDelta is invoked once per token chunk in arrival order; returning an
// error from it aborts the stream.
type Streamer interface {
	StreamChat(ctx context.Context, messages []Message, onDelta func(text string) error) error
}

// OpenAIStreamer streams chat completions from an OpenAI-compatible
// backend.
type OpenAIStreamer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIStreamer constructs a streaming chat client. baseURL may be
// empty to use the default API endpoint.
func NewOpenAIStreamer(apiKey, baseURL, model string, maxTokens int, temperature float32) *OpenAIStreamer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIStreamer{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// StreamChat sends the message history to the chat completion API and
// feeds response deltas to onDelta as they arrive.
func (s *OpenAIStreamer) StreamChat(ctx context.Context, messages []Message, onDelta func(text string) error) error {
	if s.client == nil {
		return errors.New("chat client not initialized")
	}

	oaMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role != openai.ChatMessageRoleSystem && role != openai.ChatMessageRoleUser && role != openai.ChatMessageRoleAssistant {
			// coerce anything unknown to user
			role = openai.ChatMessageRoleUser
		}
		oaMsgs = append(oaMsgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    oaMsgs,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Stream:      true,
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if delta := resp.Choices[0].Delta.Content; delta != "" {
			if err := onDelta(delta); err != nil {
				return err
			}
		}
	}
}
