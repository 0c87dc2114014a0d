package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/exchange"
	"github.com/Veraticus/spendwise/internal/model"
	"github.com/Veraticus/spendwise/internal/ofx"
	"github.com/Veraticus/spendwise/internal/service"
	"github.com/Veraticus/spendwise/internal/sheets"
)

func (a *app) ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Manage currency exchange rates",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Download current rates for the base currency",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				var fetcher service.RateFetcher = exchange.NewFetcher(a.v.GetString("rates.base_url"), nil, a.logger)

				snapshot, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
					s.ExchangeRates = fetcher.Fetch(cmd.Context(), s.BaseCurrency)
					return nil
				})
				if err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Stored %d rates relative to %s", len(snapshot.ExchangeRates), snapshot.BaseCurrency)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored rates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				snapshot, err := a.loadSnapshot(cmd.Context())
				if err != nil {
					return err
				}
				if len(snapshot.ExchangeRates) == 0 {
					outln(cmd, cli.FormatInfo("No rates stored. Run 'spendwise rates refresh'."))
					return nil
				}

				codes := make([]string, 0, len(snapshot.ExchangeRates))
				for code := range snapshot.ExchangeRates {
					codes = append(codes, code)
				}
				sort.Strings(codes)

				rows := make([][]string, 0, len(codes))
				for _, code := range codes {
					rows = append(rows, []string{code, fmt.Sprintf("%g", snapshot.ExchangeRates[code])})
				}
				outln(cmd, cli.RenderTable([]string{"Currency", "Per 1 " + snapshot.BaseCurrency}, rows))
				return nil
			},
		},
	)
	return cmd
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show salary, budgets and spending at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshot, err := a.loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			report := sheets.BuildReport(snapshot, time.Now())

			summary := make([][]string, 0, len(report.Summary))
			for _, row := range report.Summary {
				amount, _ := row.Amount.Float64()
				summary = append(summary, []string{row.Label, cli.FormatMoney(amount, report.BaseCurrency)})
			}

			budgets := make([][]string, 0, len(report.Budgets))
			for _, row := range report.Budgets {
				planned, _ := row.Planned.Float64()
				spent, _ := row.Spent.Float64()
				remaining, _ := row.Remaining.Float64()
				remainingText := cli.FormatMoney(remaining, report.BaseCurrency)
				if row.Remaining.IsNegative() {
					remainingText = cli.StyleError(remainingText)
				}
				budgets = append(budgets, []string{
					row.Category,
					cli.FormatMoney(planned, report.BaseCurrency),
					cli.FormatMoney(spent, report.BaseCurrency),
					remainingText,
				})
			}

			outln(cmd, cli.FormatTitle("Summary"))
			outln(cmd, cli.RenderTable([]string{"", "Amount"}, summary))
			outln(cmd, "")
			outln(cmd, cli.RenderTable([]string{"Category", "Planned", "Spent", "Remaining"}, budgets))
			return nil
		},
	}
}

func (a *app) importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Transactions already imported are skipped.

Examples:
  spendwise import-ofx ~/Downloads/checking_jan.qfx
  spendwise import-ofx ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runImportOFX,
	}
	cmd.Flags().BoolP("dry-run", "d", false, "preview import without saving")
	return cmd
}

func (a *app) runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
			} else {
				a.logger.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()
	var imported []model.Transaction
	for _, path := range files {
		txns, err := parseOFXFile(cmd, parser, path)
		if err != nil {
			return err
		}
		a.logger.Info("Parsed OFX file", "file", filepath.Base(path), "transactions", len(txns))
		imported = append(imported, txns...)
	}

	// Files may overlap; keep the overall list newest first before merging.
	sort.SliceStable(imported, func(i, j int) bool {
		return imported[i].Date.After(imported[j].Date)
	})

	if dryRun {
		preview := model.Snapshot{}
		added := ofx.Merge(&preview, imported)
		outln(cmd, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions found in %d files", added, len(files))))
		return nil
	}

	var added int
	if _, err := a.updateSnapshot(ctx, func(s *model.Snapshot) error {
		added = ofx.Merge(s, imported)
		return nil
	}); err != nil {
		return err
	}

	outln(cmd, cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d already present)", added, len(imported)-added)))
	return nil
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path) //nolint:gosec // user-supplied import path
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	txns, err := parser.ParseFile(cmd.Context(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return txns, nil
}
