package llm

import (
	"fmt"
	"strings"
)

// Provider identifies which wire protocol a credential belongs to.
type Provider int

const (
	// ProviderGemini is the Gemini-compatible generateContent API.
	ProviderGemini Provider = iota
	// ProviderOpenAI is the OpenAI-compatible chat completions API.
	ProviderOpenAI
)

func (p Provider) String() string {
	switch p {
	case ProviderGemini:
		return "gemini"
	case ProviderOpenAI:
		return "openai"
	default:
		return fmt.Sprintf("Provider(%d)", int(p))
	}
}

const (
	// DefaultGeminiModel is used when neither an override nor a preference is set.
	DefaultGeminiModel = "gemini-2.5-flash-lite"
	// OpenAIModel is the only model used with OpenAI credentials.
	OpenAIModel = "gpt-4o-mini"

	openAIKeyPrefix = "sk-"
)

// GeminiModels is the allow-list of selectable Gemini models, in display order.
var GeminiModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-001",
	"gemini-2.0-flash",
	"gemini-2.5-flash-lite",
	"gemini-1.5-flash-8b",
}

// IsGeminiModel reports whether name is on the Gemini allow-list.
func IsGeminiModel(name string) bool {
	for _, m := range GeminiModels {
		if m == name {
			return true
		}
	}
	return false
}

// Route is the provider and model a call is dispatched to.
type Route struct {
	Model    string
	Provider Provider
}

// ClassifyCredential picks the provider a credential belongs to.
// Keys starting with "sk-" in any case are OpenAI keys; everything else is Gemini.
func ClassifyCredential(credential string) Provider {
	if strings.HasPrefix(strings.ToLower(credential), openAIKeyPrefix) {
		return ProviderOpenAI
	}
	return ProviderGemini
}

// ResolveModel returns the effective model for p. OpenAI ignores both the override
// and the stored preference.
func ResolveModel(p Provider, override, preference string) string {
	switch p {
	case ProviderOpenAI:
		return OpenAIModel
	case ProviderGemini:
		if override != "" {
			return override
		}
		if preference != "" {
			return preference
		}
		return DefaultGeminiModel
	default:
		panic(fmt.Sprintf("llm: unknown provider %d", int(p)))
	}
}

// NewRoute classifies credential and resolves the model in one step.
func NewRoute(credential, override, preference string) Route {
	p := ClassifyCredential(credential)
	return Route{Provider: p, Model: ResolveModel(p, override, preference)}
}
