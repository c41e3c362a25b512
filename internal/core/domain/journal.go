package domain

import (
	"fmt"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
	"github.com/shopspring/decimal"
)

// LineType indicates whether a journal entry line is a debit or a credit.
type LineType string

const (
	Debit  LineType = "DEBIT"
	Credit LineType = "CREDIT"
)

// ValidLineType reports whether t is DEBIT or CREDIT.
func ValidLineType(t LineType) bool {
	return t == Debit || t == Credit
}

// BalanceTolerance is the rounding noise absorbed when comparing debit and
// credit totals: 0.01 currency units. It applies to the balanced/unbalanced
// verdict only, never to the totals themselves.
var BalanceTolerance = decimal.RequireFromString("0.01")

// JournalEntryLine is a single debit or credit against one account. Lines
// have no lifecycle of their own; they exist only inside their owning entry.
type JournalEntryLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	LineType  LineType        `json:"lineType"`
	Amount    decimal.Decimal `json:"amount"` // always positive
	AuditFields
}

// JournalEntry represents a single financial event translated into debits
// and credits. It exclusively owns its lines; line order is insertion order
// and carries no meaning.
type JournalEntry struct {
	EntryID          string             `json:"entryID"`
	CompanyID        string             `json:"companyID"`
	EntryDate        time.Time          `json:"entryDate"`
	Description      string             `json:"description"`
	SourceDocumentID *string            `json:"sourceDocumentID,omitempty"`
	IsAdjusting      bool               `json:"isAdjusting"`
	Lines            []JournalEntryLine `json:"lines"`
	AuditFields
}

// NewLineParams carries caller-supplied fields for one line of a new entry.
type NewLineParams struct {
	AccountID string
	LineType  LineType
	Amount    decimal.Decimal
}

// NewEntryParams carries caller-supplied fields for a new journal entry.
type NewEntryParams struct {
	EntryID          string
	CompanyID        string
	EntryDate        time.Time
	Description      string
	SourceDocumentID *string
	IsAdjusting      bool
	Lines            []NewLineParams
	CreatedBy        string
	Now              time.Time
}

// ValidateEntryInput checks entry-level fields and returns every violation
// found.
func ValidateEntryInput(companyID, description string, entryDate time.Time) []string {
	var violations []string
	if companyID == "" {
		violations = append(violations, "company ID is required")
	}
	if description == "" {
		violations = append(violations, "entry description is required")
	}
	if entryDate.IsZero() {
		violations = append(violations, "entry date is required")
	}
	return violations
}

// ValidateLineInput checks a single line and returns every violation found.
// Amounts must be strictly positive; zero or negative is invalid.
func ValidateLineInput(accountID string, lineType LineType, amount decimal.Decimal) []string {
	var violations []string
	if accountID == "" {
		violations = append(violations, "account ID is required")
	}
	if !ValidLineType(lineType) {
		violations = append(violations, fmt.Sprintf("line type must be DEBIT or CREDIT, got %q", lineType))
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		violations = append(violations, fmt.Sprintf("amount must be positive, got %s", amount))
	}
	return violations
}

// NewJournalEntry builds a validated entry together with its lines. Entry and
// line violations are accumulated into one failure so the caller receives the
// complete correction list in a single pass. Line IDs are derived by the
// caller through idFn so the factory stays deterministic under test.
func NewJournalEntry(p NewEntryParams, idFn func() string) outcome.Outcome[JournalEntry] {
	violations := ValidateEntryInput(p.CompanyID, p.Description, p.EntryDate)
	for i, lp := range p.Lines {
		for _, v := range ValidateLineInput(lp.AccountID, lp.LineType, lp.Amount) {
			violations = append(violations, fmt.Sprintf("line %d: %s", i+1, v))
		}
	}
	if len(violations) > 0 {
		return outcome.Fail[JournalEntry](validationError(violations))
	}

	entry := JournalEntry{
		EntryID:          p.EntryID,
		CompanyID:        p.CompanyID,
		EntryDate:        p.EntryDate,
		Description:      p.Description,
		SourceDocumentID: p.SourceDocumentID,
		IsAdjusting:      p.IsAdjusting,
		Lines:            make([]JournalEntryLine, len(p.Lines)),
		AuditFields:      NewAuditFields(p.CreatedBy, p.Now),
	}
	for i, lp := range p.Lines {
		entry.Lines[i] = JournalEntryLine{
			LineID:      idFn(),
			EntryID:     p.EntryID,
			AccountID:   lp.AccountID,
			LineType:    lp.LineType,
			Amount:      lp.Amount,
			AuditFields: NewAuditFields(p.CreatedBy, p.Now),
		}
	}
	return outcome.Ok(entry)
}

// TotalDebits returns the exact sum of all DEBIT line amounts.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		if line.LineType == Debit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// TotalCredits returns the exact sum of all CREDIT line amounts.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		if line.LineType == Credit {
			total = total.Add(line.Amount)
		}
	}
	return total
}

// DoubleEntryReport is the accumulated result of the double-entry check.
type DoubleEntryReport struct {
	IsValid    bool
	Violations []string
}

// ValidateDoubleEntry enforces the double-entry law on a postable entry:
// at least two lines, debit and credit totals equal within BalanceTolerance,
// at least one debit, and at least one credit. All failing checks are
// reported together rather than short-circuiting, since fixing one imbalance
// often reveals another. The check is pure: no I/O, deterministic over Lines.
func (e *JournalEntry) ValidateDoubleEntry() DoubleEntryReport {
	var violations []string

	if len(e.Lines) < 2 {
		violations = append(violations, fmt.Sprintf("entry must have at least two lines, got %d", len(e.Lines)))
	}

	debits := e.TotalDebits()
	credits := e.TotalCredits()
	if debits.Sub(credits).Abs().GreaterThanOrEqual(BalanceTolerance) {
		violations = append(violations, fmt.Sprintf("debits (%s) do not equal credits (%s)", debits, credits))
	}

	hasDebit := false
	hasCredit := false
	for _, line := range e.Lines {
		switch line.LineType {
		case Debit:
			hasDebit = true
		case Credit:
			hasCredit = true
		}
	}
	if !hasDebit {
		violations = append(violations, "entry must have at least one DEBIT line")
	}
	if !hasCredit {
		violations = append(violations, "entry must have at least one CREDIT line")
	}

	return DoubleEntryReport{IsValid: len(violations) == 0, Violations: violations}
}

// DoubleEntryError converts a failed report into a single validation error
// listing every violation. Calling it on a valid report is a programming
// fault.
func (r DoubleEntryReport) DoubleEntryError() error {
	if r.IsValid {
		panic("domain: DoubleEntryError called on a valid report")
	}
	return validationError(r.Violations)
}
