package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spendwise/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>INT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>2.15
<FITID>2024012501
<NAME>INTEREST PAYMENT
</STMTTRN>
<STMTTRN>
<TRNTYPE>FEE
<DTPOSTED>20240126120000[0:GMT]
<TRNAMT>-5.00
<FITID>2024012601
<NAME>MONTHLY SERVICE FEE
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>EUR
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240110120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC2024011001
<NAME>POS PURCHASE AMAZON.COM
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	tests := []struct {
		name          string
		ofxData       string
		expectedCount int
		expectedError bool
	}{
		{name: "valid bank statement", ofxData: sampleBankOFX, expectedCount: 4},
		{name: "valid credit card statement", ofxData: sampleCreditCardOFX, expectedCount: 2},
		{name: "invalid OFX data", ofxData: "not valid OFX", expectedError: true},
		{name: "empty OFX", ofxData: "", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(tt.ofxData))

			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, transactions, tt.expectedCount)
		})
	}
}

func TestParseBankTransactions(t *testing.T) {
	transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 4)

	// Newest first.
	fee := transactions[0]
	assert.Equal(t, IDPrefix+"2024012601", fee.ID)
	assert.Equal(t, model.TransactionExpense, fee.Type)
	assert.Equal(t, model.CategoryUtilities, fee.Category)
	assert.Equal(t, 5.0, fee.Amount)

	interest := transactions[1]
	assert.Equal(t, model.TransactionIncome, interest.Type)
	assert.Equal(t, model.CategorySavings, interest.Category)
	assert.InDelta(t, 2.15, interest.Amount, 1e-9)
	assert.Equal(t, "INTEREST PAYMENT", interest.Note)

	groceries := transactions[2]
	assert.Equal(t, "Whole Foods Market", groceries.Note)
	assert.Equal(t, 125.0, groceries.Amount)
	assert.Equal(t, model.CategoryOther, groceries.Category)

	coffee := transactions[3]
	assert.Equal(t, IDPrefix+"2024011501", coffee.ID)
	assert.Equal(t, "STARBUCKS STORE #1234", coffee.Note)
	assert.Equal(t, 25.50, coffee.Amount)
	assert.Equal(t, model.TransactionExpense, coffee.Type)
	assert.Equal(t, "USD", coffee.Currency)
	assert.Equal(t, 2024, coffee.Date.Year())
	assert.Equal(t, time.January, coffee.Date.Month())
	assert.Equal(t, 15, coffee.Date.Day())
}

func TestParseCreditCardTransactions(t *testing.T) {
	transactions, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	netflix := transactions[0]
	assert.Equal(t, IDPrefix+"CC2024011501", netflix.ID)
	assert.Equal(t, "NETFLIX.COM", netflix.Note)
	assert.Equal(t, 15.0, netflix.Amount)
	assert.Equal(t, "EUR", netflix.Currency)

	amazon := transactions[1]
	assert.Equal(t, "AMAZON.COM", amazon.Note)
	assert.Equal(t, 45.99, amazon.Amount)
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewParser().ParseFile(ctx, strings.NewReader(sampleBankOFX))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractMerchantName(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{name: "remove POS prefix", tx: ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"}, expected: "STARBUCKS"},
		{name: "remove DEBIT CARD prefix", tx: ofxgo.Transaction{Name: "DEBIT CARD PURCHASE WHOLE FOODS"}, expected: "WHOLE FOODS"},
		{name: "keep clean name", tx: ofxgo.Transaction{Name: "NETFLIX.COM"}, expected: "NETFLIX.COM"},
		{name: "trim whitespace", tx: ofxgo.Transaction{Name: "  AMAZON.COM  "}, expected: "AMAZON.COM"},
		{name: "strip leading date", tx: ofxgo.Transaction{Name: "01/15 CORNER DELI"}, expected: "CORNER DELI"},
		{name: "generic name uses memo", tx: ofxgo.Transaction{Name: "DEBIT", Memo: "CITY PARKING"}, expected: "CITY PARKING"},
		{name: "payee wins", tx: ofxgo.Transaction{Name: "SQ *BLUE BOTTLE", Payee: &ofxgo.Payee{Name: "Blue Bottle Coffee"}}, expected: "Blue Bottle Coffee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parser.extractMerchantName(tt.tx))
		})
	}
}

func TestMerge(t *testing.T) {
	imported, err := NewParser().ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	snapshot := model.DefaultSnapshot()
	snapshot.AddTransaction(model.Transaction{ID: "manual", Amount: 3, Type: model.TransactionExpense})

	assert.Equal(t, 4, Merge(&snapshot, imported))
	require.Len(t, snapshot.Transactions, 5)
	assert.Equal(t, IDPrefix+"2024012601", snapshot.Transactions[0].ID)
	assert.Equal(t, IDPrefix+"2024011501", snapshot.Transactions[3].ID)
	assert.Equal(t, "manual", snapshot.Transactions[4].ID)

	// Importing the same statement again adds nothing.
	assert.Zero(t, Merge(&snapshot, imported))
	assert.Len(t, snapshot.Transactions, 5)
}
