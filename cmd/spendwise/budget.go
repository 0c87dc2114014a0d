package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
)

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || amount < 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid amount %q: must be a non-negative number", s), err)
	}
	return amount, nil
}

func (a *app) salaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salary",
		Short: "Manage your monthly salary",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set your monthly salary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			snapshot, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
				s.Salary = amount
				return nil
			})
			if err != nil {
				return err
			}
			outln(cmd, cli.FormatSuccess("Salary set to "+cli.FormatMoney(snapshot.Salary, snapshot.BaseCurrency)))
			return nil
		},
	})
	return cmd
}

func (a *app) currencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Manage your base currency",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <code>",
			Short: "Set the base currency used for totals",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				currency, err := model.LookupCurrency(args[0])
				if err != nil {
					return common.NewUserError(err.Error(), nil)
				}
				if _, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
					s.BaseCurrency = currency.Code
					return nil
				}); err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Base currency set to %s (%s)", currency.Code, currency.Name)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List supported currencies",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				rows := make([][]string, 0, len(model.Currencies()))
				for _, c := range model.Currencies() {
					rows = append(rows, []string{c.Code, c.Symbol, c.Name})
				}
				outln(cmd, cli.RenderTable([]string{"Code", "Symbol", "Name"}, rows))
			},
		},
	)
	return cmd
}

func (a *app) budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly category budgets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <category> <amount>",
			Short: "Plan a monthly amount for a category",
			Example: `  spendwise budget add "Food & Dining" 650
  spendwise budget add Health 80`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := parseAmount(args[1])
				if err != nil {
					return err
				}
				var added model.Budget
				snapshot, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
					added = s.AddBudget(model.Budget{Category: strings.TrimSpace(args[0]), PlannedAmount: amount})
					return nil
				})
				if err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess(fmt.Sprintf("Budgeted %s for %s (id %s)",
					cli.FormatMoney(added.PlannedAmount, snapshot.BaseCurrency), added.Category, added.ID)))
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List budgets",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				snapshot, err := a.loadSnapshot(cmd.Context())
				if err != nil {
					return err
				}
				if len(snapshot.Budgets) == 0 {
					outln(cmd, cli.FormatInfo("No budgets yet. Add one with 'spendwise budget add'."))
					return nil
				}
				rows := make([][]string, 0, len(snapshot.Budgets))
				for _, b := range snapshot.Budgets {
					rows = append(rows, []string{b.ID, b.Category, cli.FormatMoney(b.PlannedAmount, snapshot.BaseCurrency)})
				}
				outln(cmd, cli.RenderTable([]string{"ID", "Category", "Planned"}, rows))
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Delete a budget",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
					if !s.RemoveBudget(args[0]) {
						return common.NewUserError("no budget with id "+args[0], common.ErrUnknownBudget)
					}
					return nil
				}); err != nil {
					return err
				}
				outln(cmd, cli.FormatSuccess("Budget removed"))
				return nil
			},
		},
	)
	return cmd
}
