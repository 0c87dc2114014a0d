package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spendwise/internal/cli"
	"github.com/Veraticus/spendwise/internal/common"
	"github.com/Veraticus/spendwise/internal/model"
)

func (a *app) txnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "txn",
		Aliases: []string{"transaction"},
		Short:   "Record and review transactions",
	}
	cmd.AddCommand(a.txnAddCmd(), a.txnListCmd(), a.txnRemoveCmd())
	return cmd
}

func (a *app) txnAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense or income",
		Example: `  spendwise txn add 12.50 --category "Food & Dining" --note "Lunch"
  spendwise txn add 2000 --type income --category Other --note "Freelance"
  spendwise txn add 30 --currency EUR --date 2026-03-14`,
		Args: cobra.ExactArgs(1),
		RunE: a.runTxnAdd,
	}

	cmd.Flags().String("category", model.CategoryOther, "category name")
	cmd.Flags().String("note", "", "short description")
	cmd.Flags().String("type", string(model.TransactionExpense), "expense or income")
	cmd.Flags().String("currency", "", "currency code (default: base currency)")
	cmd.Flags().String("date", "", "date as YYYY-MM-DD (default: today)")
	return cmd
}

func (a *app) runTxnAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	note, _ := cmd.Flags().GetString("note")
	typeFlag, _ := cmd.Flags().GetString("type")
	currencyFlag, _ := cmd.Flags().GetString("currency")
	dateFlag, _ := cmd.Flags().GetString("date")

	txType, err := model.ParseTransactionType(strings.ToLower(typeFlag))
	if err != nil {
		return common.NewUserError(err.Error(), nil)
	}

	date := time.Now()
	if dateFlag != "" {
		date, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", dateFlag), err)
		}
	}

	var currency string
	if currencyFlag != "" {
		c, lookupErr := model.LookupCurrency(currencyFlag)
		if lookupErr != nil {
			return common.NewUserError(lookupErr.Error(), nil)
		}
		currency = c.Code
	}

	var added model.Transaction
	if _, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
		added = s.AddTransaction(model.Transaction{
			Date:     date,
			Amount:   amount,
			Category: strings.TrimSpace(category),
			Note:     strings.TrimSpace(note),
			Type:     txType,
			Currency: currency,
		})
		return nil
	}); err != nil {
		return err
	}

	outln(cmd, cli.FormatSuccess(fmt.Sprintf("Recorded %s %s for %s (id %s)",
		added.Type, cli.FormatMoney(added.Amount, added.Currency), added.Label(), added.ID)))
	return nil
}

func (a *app) txnListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			snapshot, err := a.loadSnapshot(cmd.Context())
			if err != nil {
				return err
			}
			if len(snapshot.Transactions) == 0 {
				outln(cmd, cli.FormatInfo("No transactions yet. Add one with 'spendwise txn add'."))
				return nil
			}

			txns := snapshot.Transactions
			if limit > 0 {
				txns = snapshot.Recent(limit)
			}

			rows := make([][]string, 0, len(txns))
			for _, t := range txns {
				amount := cli.FormatMoney(t.Amount, t.Currency)
				if t.IsExpense() {
					amount = "-" + amount
				}
				rows = append(rows, []string{t.ID, t.Date.Format("2006-01-02"), t.Category, t.Note, amount})
			}
			outln(cmd, cli.RenderTable([]string{"ID", "Date", "Category", "Note", "Amount"}, rows))
			return nil
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "show at most n transactions")
	return cmd
}

func (a *app) txnRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.updateSnapshot(cmd.Context(), func(s *model.Snapshot) error {
				if !s.RemoveTransaction(args[0]) {
					return common.NewUserError("no transaction with id "+args[0], common.ErrUnknownTransaction)
				}
				return nil
			}); err != nil {
				return err
			}
			outln(cmd, cli.FormatSuccess("Transaction removed"))
			return nil
		},
	}
}
