package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningBalance records the starting position captured when a company is
// onboarded. It is written once as a side effect of company creation and
// never mutated.
type OpeningBalance struct {
	OpeningBalanceID string          `json:"openingBalanceID"`
	CompanyID        string          `json:"companyID"`
	Amount           decimal.Decimal `json:"amount"`
	AsOf             time.Time       `json:"asOf"`
	AuditFields
}
