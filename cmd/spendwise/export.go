package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/config"
	"github.com/Veraticus/spendwise/internal/service"
	"github.com/Veraticus/spendwise/internal/sheets"
)

func newSheetsWriter(ctx context.Context, cfg sheets.Config, logger *slog.Logger) (service.ReportWriter, error) {
	return sheets.NewWriter(ctx, cfg, logger)
}

func (a *app) exportSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export-sheets",
		Short: "Export your budget to Google Sheets",
		Long: `Export salary, budgets and transactions to a Google spreadsheet.

Configure either a service account (sheets.service_account_path) or OAuth2
credentials (sheets.client_id, sheets.client_secret and a refresh token from
'spendwise export-sheets auth').`,
		Args: cobra.NoArgs,
		RunE: a.runExportSheets,
	}
	cmd.AddCommand(a.sheetsAuthCmd())
	return cmd
}

func (a *app) runExportSheets(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadSheetsConfig(a.v)
	if err != nil {
		return fmt.Errorf("google sheets is not configured: %w", err)
	}

	snapshot, err := a.loadSnapshot(ctx)
	if err != nil {
		return err
	}

	writer, err := a.newWriter(ctx, *cfg, a.logger)
	if err != nil {
		return err
	}

	spreadsheetID, err := writer.Write(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	outln(cmd, cli.FormatSuccess("Exported to https://docs.google.com/spreadsheets/d/"+spreadsheetID))
	return nil
}

func (a *app) sheetsAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This opens a browser flow, caches the token and stores the refresh token in
your config file. Run it once before exporting with OAuth2 credentials.`,
		Args: cobra.NoArgs,
		RunE: a.runSheetsAuth,
	}
	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	return cmd
}

func (a *app) runSheetsAuth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	clientID := a.v.GetString("sheets.client_id")
	clientSecret := a.v.GetString("sheets.client_secret")
	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}
	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("OAuth2 credentials not found: set sheets.client_id and sheets.client_secret or use --client-id and --client-secret")
	}

	tokenFile := config.SheetsTokenFile(a.v)
	a.logger.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	token, err := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	a.v.Set("sheets.client_id", clientID)
	a.v.Set("sheets.client_secret", clientSecret)
	a.v.Set("sheets.refresh_token", token.RefreshToken)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("Failed to update config file with refresh token", "error", err)
		outln(cmd, cli.FormatWarning("Could not save the refresh token; set sheets.refresh_token in your config manually."))
		return nil
	}

	outln(cmd, cli.FormatSuccess("Google Sheets is configured. Run 'spendwise export-sheets' to export."))
	return nil
}

func (a *app) saveConfig() error {
	configFile := a.v.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(home, ".config", "spendwise", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0o750); err != nil {
		return err
	}
	return a.v.WriteConfigAs(configFile)
}
