package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/sheets"
)

// LoadSheetsConfig builds the Google Sheets configuration. Values from viper
// (config file or SPENDWISE_ env vars) win; GOOGLE_SHEETS_* variables fill the gaps.
func LoadSheetsConfig(v *viper.Viper) (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()
	cfg.SpreadsheetName = ""

	cfg.ServiceAccountPath = ExpandPath(v.GetString("sheets.service_account_path"))
	cfg.ClientID = v.GetString("sheets.client_id")
	cfg.ClientSecret = v.GetString("sheets.client_secret")
	cfg.RefreshToken = v.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	cfg.SpreadsheetName = v.GetString("sheets.spreadsheet_name")

	cfg.LoadFromEnv()
	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMissingConfig, err)
	}
	return &cfg, nil
}

// SheetsTokenFile is where the interactive OAuth flow caches its token.
func SheetsTokenFile(v *viper.Viper) string {
	if path := v.GetString("sheets.token_file"); path != "" {
		return ExpandPath(path)
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = ExpandPath("~/.config")
	}
	return filepath.Join(configDir, "spendwise", "sheets-token.json")
}
