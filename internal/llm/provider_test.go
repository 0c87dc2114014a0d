package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCredential(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		want       Provider
	}{
		{"lowercase openai", "sk-abc123", ProviderOpenAI},
		{"uppercase openai", "SK-ABC123", ProviderOpenAI},
		{"mixed case openai", "Sk-proj-xyz", ProviderOpenAI},
		{"gemini key", "AIzaSyExample", ProviderGemini},
		{"prefix not at start", "xsk-abc", ProviderGemini},
		{"bare sk", "sk", ProviderGemini},
		{"empty", "", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyCredential(tt.credential))
		})
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name       string
		override   string
		preference string
		want       string
		provider   Provider
	}{
		{name: "openai ignores override", provider: ProviderOpenAI, override: "gemini-2.0-flash", want: OpenAIModel},
		{name: "openai ignores preference", provider: ProviderOpenAI, preference: "gemini-1.5-flash", want: OpenAIModel},
		{name: "gemini override wins", provider: ProviderGemini, override: "gemini-2.0-flash", preference: "gemini-1.5-flash", want: "gemini-2.0-flash"},
		{name: "gemini preference", provider: ProviderGemini, preference: "gemini-1.5-flash-8b", want: "gemini-1.5-flash-8b"},
		{name: "gemini default", provider: ProviderGemini, want: DefaultGeminiModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveModel(tt.provider, tt.override, tt.preference))
		})
	}
}

func TestNewRoute_OpenAIAlwaysUsesFixedModel(t *testing.T) {
	for _, cred := range []string{"sk-1", "SK-2", "sK-3", "Sk-4"} {
		for _, override := range []string{"", "gemini-2.0-flash", "gpt-4", "anything"} {
			route := NewRoute(cred, override, "gemini-1.5-flash")
			assert.Equal(t, ProviderOpenAI, route.Provider, cred)
			assert.Equal(t, OpenAIModel, route.Model, override)
		}
	}
}

func TestIsGeminiModel(t *testing.T) {
	assert.True(t, IsGeminiModel("gemini-2.5-flash-lite"))
	assert.True(t, IsGeminiModel("gemini-1.5-flash-8b"))
	assert.False(t, IsGeminiModel("gpt-4o-mini"))
	assert.False(t, IsGeminiModel(""))
	assert.Contains(t, GeminiModels, DefaultGeminiModel)
}

func TestProviderString(t *testing.T) {
	assert.Equal(t, "gemini", ProviderGemini.String())
	assert.Equal(t, "openai", ProviderOpenAI.String())
}
