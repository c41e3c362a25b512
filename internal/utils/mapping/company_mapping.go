package mapping

import (
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:        d.CompanyID,
		OwnerUserID:      d.OwnerUserID,
		AccountantUserID: d.AccountantUserID,
		Name:             d.Name,
		BusinessType:     string(d.BusinessType),
		IsActive:         d.IsActive,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:        m.CompanyID,
		OwnerUserID:      m.OwnerUserID,
		AccountantUserID: m.AccountantUserID,
		Name:             m.Name,
		BusinessType:     domain.BusinessType(m.BusinessType),
		IsActive:         m.IsActive,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of model Companies to domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}

// ToModelOpeningBalance converts a domain OpeningBalance to a model OpeningBalance
func ToModelOpeningBalance(d domain.OpeningBalance) models.OpeningBalance {
	return models.OpeningBalance{
		OpeningBalanceID: d.OpeningBalanceID,
		CompanyID:        d.CompanyID,
		Amount:           d.Amount,
		AsOf:             d.AsOf,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}
