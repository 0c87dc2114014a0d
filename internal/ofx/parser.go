// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/spendwise/internal/model"
)

// IDPrefix marks transactions created from a statement. The rest of the ID is
// the institution's FITID, so re-importing a statement yields the same IDs.
const IDPrefix = "ofx-"

// unknownCurrency is what an unset ISO 4217 unit renders as.
const unknownCurrency = "XXX"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser converts OFX statements into budgeting transactions.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style exports sometimes drop the closing bracket of a bare tag line.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns its transactions, newest first.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList, stmt.CurDef.String())...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList, stmt.CurDef.String())...)
		}
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, currency string) []model.Transaction {
	if list == nil {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		transactions = append(transactions, p.convertTransaction(ofxTx, currency))
	}
	return transactions
}

// convertTransaction maps one statement line. Debits are negative in OFX.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, currency string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	txType := model.TransactionIncome
	if amount < 0 {
		txType = model.TransactionExpense
		amount = -amount
	}

	if ofxTx.Currency != nil {
		if sym := ofxTx.Currency.CurSym.String(); sym != "" && sym != unknownCurrency {
			currency = sym
		}
	}
	if currency == unknownCurrency {
		currency = ""
	}

	return model.Transaction{
		ID:       IDPrefix + string(ofxTx.FiTID),
		Date:     ofxTx.DtPosted.Time,
		Amount:   amount,
		Category: categoryFor(ofxTx.TrnType.String()),
		Note:     p.extractMerchantName(ofxTx),
		Type:     txType,
		Currency: strings.ToUpper(currency),
	}
}

// categoryFor infers a budget category from the OFX transaction type.
func categoryFor(trnType string) string {
	switch trnType {
	case "INT", "DIV":
		return model.CategorySavings
	case "FEE", "SRVCHG":
		return model.CategoryUtilities
	default:
		return model.CategoryOther
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// Merge adds imported transactions to snapshot, skipping IDs it already has.
// It returns how many were added.
func Merge(snapshot *model.Snapshot, imported []model.Transaction) int {
	existing := make(map[string]struct{}, len(snapshot.Transactions))
	for _, t := range snapshot.Transactions {
		existing[t.ID] = struct{}{}
	}

	// Imported is newest first; add oldest first so the newest ends up on top.
	added := 0
	for i := len(imported) - 1; i >= 0; i-- {
		t := imported[i]
		if _, ok := existing[t.ID]; ok {
			continue
		}
		snapshot.AddTransaction(t)
		existing[t.ID] = struct{}{}
		added++
	}
	return added
}
