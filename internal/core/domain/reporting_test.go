package domain_test

import (
	"testing"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartOfAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "acc-cash", Name: "Cash", AccountType: domain.Asset},
		{AccountID: "acc-loan", Name: "Bank Loan", AccountType: domain.Liability},
		{AccountID: "acc-capital", Name: "Owner Capital", AccountType: domain.Equity},
		{AccountID: "acc-sales", Name: "Sales", AccountType: domain.Income},
		{AccountID: "acc-rent", Name: "Rent", AccountType: domain.Expense},
		{AccountID: "acc-idle", Name: "Unused", AccountType: domain.Asset},
	}
}

func tbLine(accountID string, lineType domain.LineType, amount string) domain.JournalEntryLine {
	return domain.JournalEntryLine{AccountID: accountID, LineType: lineType, Amount: amt(amount)}
}

func TestComputeTrialBalance(t *testing.T) {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	lines := []domain.JournalEntryLine{
		// Sale: cash 500 / sales 500
		tbLine("acc-cash", domain.Debit, "500"),
		tbLine("acc-sales", domain.Credit, "500"),
		// Rent: rent 120 / cash 120
		tbLine("acc-rent", domain.Debit, "120"),
		tbLine("acc-cash", domain.Credit, "120"),
		// Loan drawdown: cash 1000 / loan 1000
		tbLine("acc-cash", domain.Debit, "1000"),
		tbLine("acc-loan", domain.Credit, "1000"),
	}

	tb := domain.ComputeTrialBalance("company-1", asOf, chartOfAccounts(), lines)

	require.Len(t, tb.Rows, 6, "every chart account appears exactly once")

	rows := make(map[string]domain.TrialBalanceRow, len(tb.Rows))
	for _, row := range tb.Rows {
		rows[row.AccountID] = row
	}

	cash := rows["acc-cash"]
	assert.True(t, cash.TotalDebits.Equal(amt("1500")))
	assert.True(t, cash.TotalCredits.Equal(amt("120")))
	assert.True(t, cash.Balance.Equal(amt("1380")), "balance is debits minus credits")

	sales := rows["acc-sales"]
	assert.True(t, sales.Balance.Equal(amt("-500")))

	idle := rows["acc-idle"]
	assert.True(t, idle.TotalDebits.IsZero(), "zero-line account still appears")
	assert.True(t, idle.TotalCredits.IsZero())
	assert.True(t, idle.Balance.IsZero())

	// Grand totals are the sums across the returned rows.
	sumDebits, sumCredits := decimal.Zero, decimal.Zero
	for _, row := range tb.Rows {
		sumDebits = sumDebits.Add(row.TotalDebits)
		sumCredits = sumCredits.Add(row.TotalCredits)
	}
	assert.True(t, tb.TotalDebits.Equal(sumDebits))
	assert.True(t, tb.TotalCredits.Equal(sumCredits))
	assert.True(t, tb.IsBalanced)
	assert.Equal(t, asOf, tb.AsOf)
	assert.Equal(t, "company-1", tb.CompanyID)
}

func TestComputeTrialBalance_EmptyLedger(t *testing.T) {
	tb := domain.ComputeTrialBalance("company-1", time.Now(), chartOfAccounts(), nil)

	require.Len(t, tb.Rows, 6)
	for _, row := range tb.Rows {
		assert.True(t, row.TotalDebits.IsZero())
		assert.True(t, row.TotalCredits.IsZero())
		assert.True(t, row.Balance.IsZero())
	}
	assert.True(t, tb.IsBalanced, "an empty ledger balances")
}

func TestComputeTrialBalance_BalancedVerdictTolerance(t *testing.T) {
	accounts := chartOfAccounts()

	tests := []struct {
		name         string
		debit        string
		credit       string
		wantBalanced bool
	}{
		{"exact", "100", "100", true},
		{"inside tolerance", "100.005", "100", true},
		{"at tolerance boundary", "100.01", "100", false},
		{"clearly off", "100", "90", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []domain.JournalEntryLine{
				tbLine("acc-cash", domain.Debit, tt.debit),
				tbLine("acc-sales", domain.Credit, tt.credit),
			}
			tb := domain.ComputeTrialBalance("company-1", time.Now(), accounts, lines)
			assert.Equal(t, tt.wantBalanced, tb.IsBalanced)
			// Row totals stay exact regardless of the verdict.
			assert.True(t, tb.TotalDebits.Equal(amt(tt.debit)))
			assert.True(t, tb.TotalCredits.Equal(amt(tt.credit)))
		})
	}
}

func TestComputeTrialBalance_IgnoresLinesOutsideChart(t *testing.T) {
	lines := []domain.JournalEntryLine{
		tbLine("acc-cash", domain.Debit, "10"),
		tbLine("acc-ghost", domain.Credit, "10"),
	}
	tb := domain.ComputeTrialBalance("company-1", time.Now(), chartOfAccounts(), lines)

	require.Len(t, tb.Rows, 6)
	assert.True(t, tb.TotalCredits.IsZero(), "line against an unknown account contributes nothing")
}

func TestComputeProfitAndLoss(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	lines := []domain.JournalEntryLine{
		tbLine("acc-cash", domain.Debit, "500"),
		tbLine("acc-sales", domain.Credit, "500"),
		tbLine("acc-rent", domain.Debit, "120"),
		tbLine("acc-cash", domain.Credit, "120"),
		// Refund shrinks income: sales 50 / cash 50
		tbLine("acc-sales", domain.Debit, "50"),
		tbLine("acc-cash", domain.Credit, "50"),
	}

	report := domain.ComputeProfitAndLoss(from, to, chartOfAccounts(), lines)

	require.Len(t, report.Income, 1)
	assert.True(t, report.Income[0].NetAmount.Equal(amt("450")), "income is credits minus debits")
	require.Len(t, report.Expenses, 1)
	assert.True(t, report.Expenses[0].NetAmount.Equal(amt("120")))
	assert.True(t, report.TotalIncome.Equal(amt("450")))
	assert.True(t, report.TotalExpenses.Equal(amt("120")))
	assert.True(t, report.NetProfit.Equal(amt("330")))
}

func TestComputeBalanceSheet(t *testing.T) {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	lines := []domain.JournalEntryLine{
		tbLine("acc-cash", domain.Debit, "1000"),
		tbLine("acc-loan", domain.Credit, "600"),
		tbLine("acc-capital", domain.Credit, "400"),
	}
	tb := domain.ComputeTrialBalance("company-1", asOf, chartOfAccounts(), lines)

	report := domain.ComputeBalanceSheet(tb)

	assert.True(t, report.TotalAssets.Equal(amt("1000")))
	assert.True(t, report.TotalLiabilities.Equal(amt("600")), "liabilities stated credit-normal")
	assert.True(t, report.TotalEquity.Equal(amt("400")))
	assert.Equal(t, asOf, report.AsOf)
	// Income and expense accounts do not appear on the balance sheet.
	for _, section := range [][]domain.AccountAmount{report.Assets, report.Liabilities, report.Equity} {
		for _, a := range section {
			assert.NotEqual(t, "acc-sales", a.AccountID)
			assert.NotEqual(t, "acc-rent", a.AccountID)
		}
	}
}
