package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow holds one chart-of-accounts account with its total debits,
// total credits and signed balance (debits minus credits). Totals are exact
// sums; no tolerance is applied at row level.
type TrialBalanceRow struct {
	AccountID    string          `json:"accountID"`
	AccountName  string          `json:"accountName"`
	AccountType  AccountType     `json:"accountType"`
	TotalDebits  decimal.Decimal `json:"totalDebits"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Balance      decimal.Decimal `json:"balance"`
}

// TrialBalance is a derived read model recomputed on demand from all journal
// entry lines dated on or before AsOf. It is never persisted.
type TrialBalance struct {
	CompanyID    string            `json:"companyID"`
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// AccountAmount pairs an account with its net amount for the derived
// financial statements.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// ProfitAndLossReport nets income against expenses over a period.
type ProfitAndLossReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Income        []AccountAmount `json:"income"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport states assets, liabilities and equity as of a date.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
}

type runningTotals struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// aggregateLines builds per-account running totals in a single pass over the
// lines. Lines referencing accounts absent from the totals map are kept; the
// consumer decides whether they appear in the output.
func aggregateLines(lines []JournalEntryLine) map[string]runningTotals {
	totals := make(map[string]runningTotals, len(lines))
	for _, line := range lines {
		t := totals[line.AccountID]
		if line.LineType == Debit {
			t.debits = t.debits.Add(line.Amount)
		} else {
			t.credits = t.credits.Add(line.Amount)
		}
		totals[line.AccountID] = t
	}
	return totals
}

func (t runningTotals) normalized() (decimal.Decimal, decimal.Decimal) {
	// The zero decimal.Decimal is a valid 0, but Add gives it an exponent;
	// returning explicit zeros keeps zero-line rows comparable.
	d, c := t.debits, t.credits
	if d.IsZero() {
		d = decimal.Zero
	}
	if c.IsZero() {
		c = decimal.Zero
	}
	return d, c
}

// ComputeTrialBalance aggregates the qualifying journal entry lines (the
// caller supplies only lines whose parent entry is dated on or before asOf)
// against the company's chart of accounts. Every account appears exactly
// once, in chart order; an account with no lines appears with zero debits,
// credits and balance. Lines referencing accounts missing from the chart are
// ignored. The pass is O(lines + accounts).
func ComputeTrialBalance(companyID string, asOf time.Time, accounts []Account, lines []JournalEntryLine) TrialBalance {
	totals := aggregateLines(lines)

	tb := TrialBalance{
		CompanyID:    companyID,
		AsOf:         asOf,
		Rows:         make([]TrialBalanceRow, 0, len(accounts)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, acc := range accounts {
		debits, credits := totals[acc.AccountID].normalized()
		tb.Rows = append(tb.Rows, TrialBalanceRow{
			AccountID:    acc.AccountID,
			AccountName:  acc.Name,
			AccountType:  acc.AccountType,
			TotalDebits:  debits,
			TotalCredits: credits,
			Balance:      debits.Sub(credits),
		})
		tb.TotalDebits = tb.TotalDebits.Add(debits)
		tb.TotalCredits = tb.TotalCredits.Add(credits)
	}
	tb.IsBalanced = tb.TotalDebits.Sub(tb.TotalCredits).Abs().LessThan(BalanceTolerance)
	return tb
}

// ComputeProfitAndLoss nets the qualifying lines (the caller supplies only
// lines whose parent entry falls inside [from, to]) over the income and
// expense accounts of the chart. Income is credits minus debits; expenses are
// debits minus credits.
func ComputeProfitAndLoss(from, to time.Time, accounts []Account, lines []JournalEntryLine) ProfitAndLossReport {
	totals := aggregateLines(lines)

	report := ProfitAndLossReport{
		From:          from,
		To:            to,
		Income:        []AccountAmount{},
		Expenses:      []AccountAmount{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, acc := range accounts {
		debits, credits := totals[acc.AccountID].normalized()
		switch acc.AccountType {
		case Income:
			net := credits.Sub(debits)
			report.Income = append(report.Income, AccountAmount{AccountID: acc.AccountID, Name: acc.Name, NetAmount: net})
			report.TotalIncome = report.TotalIncome.Add(net)
		case Expense:
			net := debits.Sub(credits)
			report.Expenses = append(report.Expenses, AccountAmount{AccountID: acc.AccountID, Name: acc.Name, NetAmount: net})
			report.TotalExpenses = report.TotalExpenses.Add(net)
		}
	}
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)
	return report
}

// ComputeBalanceSheet derives the balance sheet from a trial balance. Assets
// carry their debit-normal balance; liabilities and equity are stated
// credit-normal (credits minus debits).
func ComputeBalanceSheet(tb TrialBalance) BalanceSheetReport {
	report := BalanceSheetReport{
		AsOf:             tb.AsOf,
		Assets:           []AccountAmount{},
		Liabilities:      []AccountAmount{},
		Equity:           []AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, row := range tb.Rows {
		amount := AccountAmount{AccountID: row.AccountID, Name: row.AccountName}
		switch row.AccountType {
		case Asset:
			amount.NetAmount = row.Balance
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(amount.NetAmount)
		case Liability:
			amount.NetAmount = row.Balance.Neg()
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount.NetAmount)
		case Equity:
			amount.NetAmount = row.Balance.Neg()
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(amount.NetAmount)
		}
	}
	return report
}
