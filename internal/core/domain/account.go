package domain

import (
	"fmt"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// ValidAccountType reports whether t is one of the five fundamental types.
func ValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is one entry in a company's chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`
	CompanyID   string      `json:"companyID"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}

// NewAccountParams carries the validated inputs for creating an account.
type NewAccountParams struct {
	AccountID   string
	CompanyID   string
	Name        string
	AccountType AccountType
	Description string
	CreatedBy   string
	Now         time.Time
}

// ValidateAccountInput checks the caller-supplied fields and returns every
// violation found.
func ValidateAccountInput(companyID, name string, accountType AccountType) []string {
	var violations []string
	if companyID == "" {
		violations = append(violations, "company ID is required")
	}
	if name == "" {
		violations = append(violations, "account name must not be empty")
	}
	if !ValidAccountType(accountType) {
		violations = append(violations, fmt.Sprintf("unknown account type %q", accountType))
	}
	return violations
}

// NewAccount builds a validated Account.
func NewAccount(p NewAccountParams) outcome.Outcome[Account] {
	if violations := ValidateAccountInput(p.CompanyID, p.Name, p.AccountType); len(violations) > 0 {
		return outcome.Fail[Account](validationError(violations))
	}
	return outcome.Ok(Account{
		AccountID:   p.AccountID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		AccountType: p.AccountType,
		Description: p.Description,
		IsActive:    true,
		AuditFields: NewAuditFields(p.CreatedBy, p.Now),
	})
}
