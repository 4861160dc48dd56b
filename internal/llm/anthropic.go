package llm

import (
	"context"
	"io"
	"sync"

	"github.com/liushuangls/go-anthropic/v2"
)

const defaultAnthropicMaxTokens = 2048

// AnthropicClient wraps the go-anthropic client.
type AnthropicClient struct {
	client *anthropic.Client
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(apiKey)
	return &AnthropicClient{client: client}
}

// AnthropicCompletionStreamWrapper wraps the Anthropic streaming responses for chat requests.
// The producer closes the tokens channel once the underlying stream has returned,
// so Recv always drains the remaining tokens before reporting the stream result.
type AnthropicCompletionStreamWrapper struct {
	tokens chan string
	err    chan error

	once     sync.Once
	finalErr error
}

func newAnthropicCompletionStreamWrapper() *AnthropicCompletionStreamWrapper {
	return &AnthropicCompletionStreamWrapper{
		tokens: make(chan string, 100),
		err:    make(chan error, 1),
	}
}

func (s *AnthropicCompletionStreamWrapper) Close() {
}

func (s *AnthropicCompletionStreamWrapper) Recv() (*StreamEvent, error) {
	token, ok := <-s.tokens
	if ok {
		return &StreamEvent{Token: token}, nil
	}
	s.once.Do(func() {
		s.finalErr = <-s.err
	})
	if s.finalErr != nil {
		return nil, s.finalErr
	}
	return nil, io.EOF
}

// push a token onto the stream. Non-text delta events carry a nil text.
func (s *AnthropicCompletionStreamWrapper) push(text *string) {
	if text == nil {
		return
	}
	s.tokens <- *text
}

// finish the stream. The error is parked before the tokens channel closes
// so Recv never blocks on it.
func (s *AnthropicCompletionStreamWrapper) finish(err error) {
	s.err <- err
	close(s.tokens)
}

// CreateTextGeneration sends a text generation request to the Anthropic API.
func (c *AnthropicClient) CreateTextGeneration(ctx context.Context, request *CreateTextGenerationRequest) (Stream, error) {
	messages := make([]anthropic.Message, 0, len(request.Messages))
	for _, message := range request.Messages {
		switch message.Role {
		case UserRole, SystemRole:
			messages = append(messages, anthropic.NewUserTextMessage(message.Content))
		case AssistantRole:
			messages = append(messages, anthropic.NewAssistantTextMessage(message.Content))
		}
	}
	maxTokens := request.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	sw := newAnthropicCompletionStreamWrapper()
	anthropicRequest := anthropic.MessagesStreamRequest{
		MessagesRequest: anthropic.MessagesRequest{
			Model:     anthropic.Model(request.Model),
			Messages:  messages,
			MaxTokens: maxTokens,
		},
		OnContentBlockDelta: func(data anthropic.MessagesEventContentBlockDeltaData) {
			sw.push(data.Delta.Text)
		},
	}

	go func() {
		_, err := c.client.CreateMessagesStream(ctx, anthropicRequest)
		sw.finish(err)
	}()
	return sw, nil
}
