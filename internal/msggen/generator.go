// Package msggen generates the human-facing intervention message from a
// prompt context via an OpenAI-compatible chat completion endpoint. Callers
// must treat any error as "fall back to the deterministic template"; the
// user is never left without a response.
package msggen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 30 * time.Second
	maxRetries     = 2
)

// Generator produces a message from a fully built prompt context.
type Generator interface {
	Generate(ctx context.Context, promptContext string) (string, error)
}

// OpenAIGenerator calls an OpenAI-compatible chat completion API.
type OpenAIGenerator struct {
	client openaigo.Client
	model  string
}

// NewOpenAIGenerator builds a generator. baseURL may be empty for the default
// endpoint; an empty model uses the package default. The API key is required.
func NewOpenAIGenerator(baseURL, apiKey, model string) (*OpenAIGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("msggen: api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithHTTPClient(&http.Client{Timeout: requestTimeout}),
		option.WithMaxRetries(maxRetries),
		option.WithRequestTimeout(requestTimeout),
	}
	if u := strings.TrimRight(strings.TrimSpace(baseURL), "/"); u != "" {
		opts = append(opts, option.WithBaseURL(u))
	}

	return &OpenAIGenerator{
		client: openaigo.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate sends the prompt context as a single user message and returns the
// completion text.
func (g *OpenAIGenerator) Generate(ctx context.Context, promptContext string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(g.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.UserMessage(promptContext),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	msg := strings.TrimSpace(resp.Choices[0].Message.Content)
	if msg == "" {
		return "", fmt.Errorf("blank completion content")
	}
	return msg, nil
}
