package domain_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(lineType domain.LineType, amount string) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:    "line-" + amount,
		AccountID: "acc-1",
		LineType:  lineType,
		Amount:    amt(amount),
	}
}

func TestJournalEntry_ValidateDoubleEntry(t *testing.T) {
	tests := []struct {
		name           string
		lines          []domain.JournalEntryLine
		wantValid      bool
		wantViolations int
	}{
		{
			name: "balanced two-line entry",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "100"),
				line(domain.Credit, "100"),
			},
			wantValid: true,
		},
		{
			name: "balanced split entry",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "150"),
				line(domain.Credit, "100"),
				line(domain.Credit, "50"),
			},
			wantValid: true,
		},
		{
			name: "difference inside tolerance",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "100.005"),
				line(domain.Credit, "100"),
			},
			wantValid: true,
		},
		{
			name: "difference exactly at tolerance is unbalanced",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "100.01"),
				line(domain.Credit, "100"),
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "unbalanced entry",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "100"),
				line(domain.Credit, "90"),
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "single line fails count, sum and credit presence",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "100"),
			},
			wantValid:      false,
			wantViolations: 3,
		},
		{
			name: "all debits accumulates sum and credit-presence violations",
			lines: []domain.JournalEntryLine{
				line(domain.Debit, "50"),
				line(domain.Debit, "50"),
			},
			wantValid:      false,
			wantViolations: 2,
		},
		{
			name: "all credits accumulates sum and debit-presence violations",
			lines: []domain.JournalEntryLine{
				line(domain.Credit, "50"),
				line(domain.Credit, "50"),
			},
			wantValid:      false,
			wantViolations: 2,
		},
		{
			name:           "no lines",
			lines:          nil,
			wantValid:      false,
			wantViolations: 3, // count, debit presence, credit presence (sums are both zero)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := domain.JournalEntry{EntryID: "entry-1", Lines: tt.lines}
			report := entry.ValidateDoubleEntry()

			assert.Equal(t, tt.wantValid, report.IsValid)
			if tt.wantValid {
				assert.Empty(t, report.Violations)
				diff := entry.TotalDebits().Sub(entry.TotalCredits()).Abs()
				assert.True(t, diff.LessThan(domain.BalanceTolerance),
					"valid entries keep totals within tolerance, diff=%s", diff)
			} else {
				assert.Len(t, report.Violations, tt.wantViolations)
				assert.Error(t, report.DoubleEntryError())
			}
		})
	}
}

func TestJournalEntry_Totals(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		line(domain.Debit, "150"),
		line(domain.Credit, "100"),
		line(domain.Credit, "50"),
	}}

	assert.True(t, entry.TotalDebits().Equal(amt("150")))
	assert.True(t, entry.TotalCredits().Equal(amt("150")))
}

func TestDoubleEntryReport_ErrorOnValidReportPanics(t *testing.T) {
	entry := domain.JournalEntry{Lines: []domain.JournalEntryLine{
		line(domain.Debit, "10"),
		line(domain.Credit, "10"),
	}}
	report := entry.ValidateDoubleEntry()
	require.True(t, report.IsValid)
	assert.Panics(t, func() { _ = report.DoubleEntryError() })
}

func TestNewJournalEntry(t *testing.T) {
	now := time.Now().UTC()
	nextID := 0
	idFn := func() string {
		nextID++
		return fmt.Sprintf("line-%d", nextID)
	}

	t.Run("valid entry gets lines with derived IDs", func(t *testing.T) {
		o := domain.NewJournalEntry(domain.NewEntryParams{
			EntryID:     "entry-1",
			CompanyID:   "company-1",
			EntryDate:   now,
			Description: "Office rent",
			Lines: []domain.NewLineParams{
				{AccountID: "acc-rent", LineType: domain.Debit, Amount: amt("1200")},
				{AccountID: "acc-bank", LineType: domain.Credit, Amount: amt("1200")},
			},
			CreatedBy: "user-1",
			Now:       now,
		}, idFn)

		require.True(t, o.IsSuccess())
		entry := o.Value()
		require.Len(t, entry.Lines, 2)
		assert.Equal(t, "entry-1", entry.Lines[0].EntryID)
		assert.Equal(t, "user-1", entry.CreatedBy)
		assert.NotEqual(t, entry.Lines[0].LineID, entry.Lines[1].LineID)
	})

	t.Run("all violations reported together", func(t *testing.T) {
		o := domain.NewJournalEntry(domain.NewEntryParams{
			EntryID:   "entry-2",
			CompanyID: "", // missing
			EntryDate: time.Time{},
			Lines: []domain.NewLineParams{
				{AccountID: "", LineType: "SIDEWAYS", Amount: amt("-5")},
			},
			CreatedBy: "user-1",
			Now:       now,
		}, idFn)

		require.True(t, o.IsFailure())
		msg := o.Err().Error()
		assert.Contains(t, msg, "company ID is required")
		assert.Contains(t, msg, "entry description is required")
		assert.Contains(t, msg, "entry date is required")
		assert.Contains(t, msg, "line 1: account ID is required")
		assert.Contains(t, msg, "DEBIT or CREDIT")
		assert.Contains(t, msg, "amount must be positive")
	})

	t.Run("zero amount is invalid", func(t *testing.T) {
		violations := domain.ValidateLineInput("acc-1", domain.Debit, decimal.Zero)
		assert.Len(t, violations, 1)
	})
}
