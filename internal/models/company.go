package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the database row for a company.
type Company struct {
	CompanyID        string  `db:"company_id"`
	OwnerUserID      string  `db:"owner_user_id"`
	AccountantUserID *string `db:"accountant_user_id"` // Nullable
	Name             string  `db:"name"`
	BusinessType     string  `db:"business_type"`
	IsActive         bool    `db:"is_active"`
	AuditFields
}

// OpeningBalance is the write-once row recording the funds a company started
// bookkeeping with.
type OpeningBalance struct {
	OpeningBalanceID string          `db:"opening_balance_id"`
	CompanyID        string          `db:"company_id"`
	Amount           decimal.Decimal `db:"amount"`
	AsOf             time.Time       `db:"as_of"`
	AuditFields
}
