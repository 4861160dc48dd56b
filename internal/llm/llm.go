// Package llm abstracts the model providers behind a streaming client.
package llm

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/malonaz/gcommit/internal/configuration"
)

// Message roles.
const (
	SystemRole    = "system"
	UserRole      = "user"
	AssistantRole = "assistant"
)

// Opts for model selection.
type Opts struct {
	Model string
}

// GetOpts on the given command.
func GetOpts(cmd *cobra.Command, defaultModel string) *Opts {
	opts := &Opts{}
	cmd.Flags().StringVarP(&opts.Model, "model", "m", defaultModel, "specify a model")
	return opts
}

// NewClient instantiates and returns a client for the requested model.
func NewClient(config *configuration.Config, opts *Opts) (Client, *configuration.Model, *configuration.Provider, error) {
	var model *configuration.Model
	var provider *configuration.Provider
	for _, p := range config.Providers {
		for _, m := range p.Models {
			if m.Name == opts.Model || m.Alias == opts.Model {
				model = m
				provider = p
				break
			}
		}
	}
	if model == nil {
		return nil, nil, nil, errors.Errorf("unknown model (%s)", opts.Model)
	}

	switch provider.Type {
	case configuration.ProviderTypeOpenAI:
		return NewOpenAIClient(provider.APIKey, provider.APIHost), model, provider, nil
	case configuration.ProviderTypeAnthropic:
		return NewAnthropicClient(provider.APIKey), model, provider, nil
	}
	return nil, nil, nil, errors.Errorf("unknown provider type (%s)", provider.Type)
}

type Message struct {
	Role    string
	Content string
}

type CreateTextGenerationRequest struct {
	Model       string
	Messages    []*Message
	StopWords   []string
	MaxTokens   int
	Temperature float32
}

type StreamEvent struct {
	Token        string
	FinishReason string
}

type Stream interface {
	Recv() (*StreamEvent, error)
	Close()
}

type Client interface {
	CreateTextGeneration(context.Context, *CreateTextGenerationRequest) (Stream, error)
}

// Complete drains a text generation stream into a single completion.
func Complete(ctx context.Context, client Client, request *CreateTextGenerationRequest) (string, error) {
	stream, err := client.CreateTextGeneration(ctx, request)
	if err != nil {
		return "", errors.Wrap(err, "creating text generation")
	}
	defer stream.Close()

	builder := &strings.Builder{}
	for {
		event, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "receiving stream event")
		}
		builder.WriteString(event.Token)
	}
	return builder.String(), nil
}
