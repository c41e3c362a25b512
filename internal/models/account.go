package models

// Account is the database row for one chart-of-accounts account.
type Account struct {
	AccountID   string `db:"account_id"`
	CompanyID   string `db:"company_id"`
	Name        string `db:"name"`
	AccountType string `db:"account_type"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
