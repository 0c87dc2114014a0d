package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultOpenAIBaseURL is the OpenAI-compatible API root.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	openAITemperature = 0.4
)

// openAIBackend calls chat completions through go-openai. A client is built per
// request since the credential can change between calls.
type openAIBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenAIBackend creates an OpenAI-compatible backend.
func NewOpenAIBackend(baseURL string, httpClient *http.Client) Backend {
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &openAIBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Generate sends one chat completion request.
func (b *openAIBackend) Generate(ctx context.Context, req Request) Outcome {
	cfg := openai.DefaultConfig(req.Credential)
	cfg.BaseURL = b.baseURL
	cfg.HTTPClient = b.httpClient
	client := openai.NewClientWithConfig(cfg)

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: openAITemperature,
	})
	if err != nil {
		return openAIFailure(err, req.Credential)
	}

	if len(resp.Choices) == 0 {
		return EmptyOutcome()
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return EmptyOutcome()
	}
	return TextOutcome(text)
}

func openAIFailure(err error, credential string) Outcome {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return FailureOutcome(FailureRateLimited, "429 too many requests")
		}
		return FailureOutcome(FailureProvider, Redact(apiErr.Message, credential))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return FailureOutcome(FailureRateLimited, "429 too many requests")
		}
		return FailureOutcome(FailureNetwork, Redact(fmt.Sprintf("status %d", reqErr.HTTPStatusCode), credential))
	}

	return transportFailure(err, credential)
}
