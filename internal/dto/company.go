package dto

import (
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest defines the input for creating a company. The opening
// balance is optional; when present it is recorded as a side effect.
type CreateCompanyRequest struct {
	Name               string           `json:"name" binding:"required"`
	BusinessType       string           `json:"businessType" binding:"required"`
	OpeningBalance     *decimal.Decimal `json:"openingBalance,omitempty"`
	OpeningBalanceAsOf *time.Time       `json:"openingBalanceAsOf,omitempty"`
}

// AssignAccountantRequest assigns an accountant to a company.
type AssignAccountantRequest struct {
	AccountantUserID string `json:"accountantUserID" binding:"required"`
}

// RenameCompanyRequest renames a company.
type RenameCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID        string    `json:"companyID"`
	OwnerUserID      string    `json:"ownerUserID"`
	AccountantUserID *string   `json:"accountantUserID,omitempty"`
	Name             string    `json:"name"`
	BusinessType     string    `json:"businessType"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to its response DTO.
func ToCompanyResponse(c domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:        c.CompanyID,
		OwnerUserID:      c.OwnerUserID,
		AccountantUserID: c.AccountantUserID,
		Name:             c.Name,
		BusinessType:     string(c.BusinessType),
		IsActive:         c.IsActive,
		CreatedAt:        c.CreatedAt,
	}
}
