package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultGeminiBaseURL is the Gemini-compatible API root.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// geminiBackend calls the generateContent endpoint with plain net/http.
type geminiBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewGeminiBackend creates a Gemini-compatible backend. An empty baseURL uses the
// public endpoint and a nil client uses a fresh http.Client with no timeout,
// leaving deadlines to the caller's context.
func NewGeminiBackend(baseURL string, httpClient *http.Client) Backend {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &geminiBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Error      *geminiError `json:"error,omitempty"`
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
}

// Generate sends one generateContent request.
func (b *geminiBackend) Generate(ctx context.Context, req Request) Outcome {
	contents := make([]geminiContent, 0, 2)
	if req.System != "" {
		contents = append(contents, geminiContent{Role: "model", Parts: []geminiPart{{Text: req.System}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: req.User}}})

	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return FailureOutcome(FailureNetwork, fmt.Sprintf("failed to marshal request: %v", err))
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		b.baseURL, url.PathEscape(req.Model), url.QueryEscape(req.Credential))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return FailureOutcome(FailureNetwork, Redact(fmt.Sprintf("failed to create request: %v", err), req.Credential))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return transportFailure(err, req.Credential)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return FailureOutcome(FailureRateLimited, "429 too many requests")
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportFailure(err, req.Credential)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return FailureOutcome(FailureNetwork, fmt.Sprintf("invalid response (status %d)", resp.StatusCode))
	}

	if parsed.Error != nil {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("%d %s", parsed.Error.Code, parsed.Error.Status)
		}
		return FailureOutcome(FailureProvider, Redact(msg, req.Credential))
	}

	if text := geminiText(parsed); text != "" {
		return TextOutcome(text)
	}
	return EmptyOutcome()
}

// geminiText prefers the first part of the first candidate and otherwise joins
// every part of that candidate.
func geminiText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	if parts[0].Text != "" {
		return parts[0].Text
	}

	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, p.Text)
	}
	return strings.TrimSpace(strings.Join(texts, "\n"))
}

// transportFailure classifies an http.Client error. url.Error embeds the
// request URL, which carries the Gemini key, so only the inner error is kept.
func transportFailure(err error, credential string) Outcome {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureOutcome(FailureTimeout, "request timeout")
	}
	return FailureOutcome(FailureNetwork, Redact(err.Error(), credential))
}
