package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/spendwise/internal/exchange"
	"github.com/Veraticus/spendwise/internal/llm"
)

// DefaultDatabasePath is where the settings database lives unless configured.
const DefaultDatabasePath = "$HOME/.local/share/spendwise/spendwise.db"

// SetDefaults registers every configuration default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("llm.max_attempts", llm.DefaultMaxAttempts)
	v.SetDefault("llm.call_timeout", llm.DefaultCallTimeout)
	v.SetDefault("llm.insight_timeout", llm.DefaultInsightTimeout)
	v.SetDefault("llm.min_interval", llm.DefaultMinInterval)
	v.SetDefault("llm.gemini_base_url", llm.DefaultGeminiBaseURL)
	v.SetDefault("llm.openai_base_url", llm.DefaultOpenAIBaseURL)

	v.SetDefault("rates.base_url", exchange.DefaultBaseURL)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Gateway holds the tunable limits of the AI gateway.
type Gateway struct {
	GeminiBaseURL  string
	OpenAIBaseURL  string
	MaxAttempts    int
	CallTimeout    time.Duration
	InsightTimeout time.Duration
	MinInterval    time.Duration
}

// LoadGateway reads the llm.* keys from v.
func LoadGateway(v *viper.Viper) Gateway {
	return Gateway{
		MaxAttempts:    v.GetInt("llm.max_attempts"),
		CallTimeout:    v.GetDuration("llm.call_timeout"),
		InsightTimeout: v.GetDuration("llm.insight_timeout"),
		MinInterval:    v.GetDuration("llm.min_interval"),
		GeminiBaseURL:  v.GetString("llm.gemini_base_url"),
		OpenAIBaseURL:  v.GetString("llm.openai_base_url"),
	}
}

// DatabasePath returns the expanded database path from v.
func DatabasePath(v *viper.Viper) string {
	return ExpandPath(v.GetString("database.path"))
}
