package dto

import "time"

// TrialBalanceRequest asks for the trial balance of a company as of a date.
// AsOf must not be in the future relative to the request time.
type TrialBalanceRequest struct {
	CompanyID string    `json:"companyID" binding:"required"`
	AsOf      time.Time `json:"asOf" binding:"required"`
}

// ProfitAndLossRequest asks for the profit and loss statement over a period.
type ProfitAndLossRequest struct {
	CompanyID string    `json:"companyID" binding:"required"`
	From      time.Time `json:"from" binding:"required"`
	To        time.Time `json:"to" binding:"required"`
}

// BalanceSheetRequest asks for the balance sheet of a company as of a date.
type BalanceSheetRequest struct {
	CompanyID string    `json:"companyID" binding:"required"`
	AsOf      time.Time `json:"asOf" binding:"required"`
}
