package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spendwise/internal/common"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("SPENDWISE_TEST_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: "/home/tester"},
		{input: "~/budget.db", want: filepath.Join("/home/tester", "budget.db")},
		{input: "$SPENDWISE_TEST_DIR/budget.db", want: "/data/budget.db"},
		{input: "/abs/path.db", want: "/abs/path.db"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoadGateway_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := LoadGateway(v)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 15*time.Second, cfg.CallTimeout)
	assert.Equal(t, 10*time.Second, cfg.InsightTimeout)
	assert.Equal(t, 2*time.Second, cfg.MinInterval)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta", cfg.GeminiBaseURL)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
}

func TestLoadGateway_Overrides(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("llm.max_attempts", 5)
	v.Set("llm.call_timeout", "30s")

	cfg := LoadGateway(v)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	v := viper.New()
	SetDefaults(v)

	assert.Equal(t, "/home/tester/.local/share/spendwise/spendwise.db", DatabasePath(v))
}

func TestLoadSheetsConfig(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")

	v := viper.New()
	v.Set("sheets.service_account_path", "~/key.json")
	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/key.json", cfg.ServiceAccountPath)
	assert.Equal(t, "from-env", cfg.SpreadsheetID)
	assert.Equal(t, "Spendwise Budget", cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_MissingAuth(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")

	_, err := LoadSheetsConfig(viper.New())
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestSheetsTokenFile(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, "/home/tester/.config/spendwise/sheets-token.json", SheetsTokenFile(viper.New()))

	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/spendwise/sheets-token.json", SheetsTokenFile(viper.New()))

	v := viper.New()
	v.Set("sheets.token_file", "~/tok.json")
	assert.Equal(t, "/home/tester/tok.json", SheetsTokenFile(v))
}
