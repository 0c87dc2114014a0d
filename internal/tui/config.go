package tui

import (
	"context"

	"github.com/Veraticus/spendwise/internal/llm"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/service"
	"github.com/Veraticus/spendwise/internal/tui/themes"
)

// Assistant answers chat prompts. *llm.Gateway satisfies it.
type Assistant interface {
	Complete(ctx context.Context, text string, opts ...llm.CallOption) string
	CompleteWithContext(ctx context.Context, snapshot model.Snapshot, text string, opts ...llm.CallOption) string
}

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Assistant      Assistant
	Data           service.DataStore
	CallOptions    []llm.CallOption
	Width          int
	Height         int
	ContextEnabled bool
	AltScreen      bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Width:          80,
		Height:         24,
		ContextEnabled: true,
		AltScreen:      true,
	}
}

// WithAssistant sets the assistant that answers prompts.
func WithAssistant(assistant Assistant) Option {
	return func(c *Config) {
		c.Assistant = assistant
	}
}

// WithData sets the store the budgeting context is loaded from.
func WithData(data service.DataStore) Option {
	return func(c *Config) {
		c.Data = data
	}
}

// WithCallOptions sets per-call overrides such as a credential or model.
func WithCallOptions(opts ...llm.CallOption) Option {
	return func(c *Config) {
		c.CallOptions = opts
	}
}

// WithContextEnabled sets whether prompts start out carrying budget context.
func WithContextEnabled(enabled bool) Option {
	return func(c *Config) {
		c.ContextEnabled = enabled
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
