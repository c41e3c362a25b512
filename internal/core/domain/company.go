package domain

import (
	"fmt"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// BusinessType classifies a company into one of a fixed small set of tags.
type BusinessType string

const (
	SoleProprietorship BusinessType = "SOLE_PROPRIETORSHIP"
	Partnership        BusinessType = "PARTNERSHIP"
	LimitedCompany     BusinessType = "LIMITED_COMPANY"
	Corporation        BusinessType = "CORPORATION"
	OtherBusiness      BusinessType = "OTHER"
)

// ValidBusinessType reports whether t is one of the known classifications.
func ValidBusinessType(t BusinessType) bool {
	switch t {
	case SoleProprietorship, Partnership, LimitedCompany, Corporation, OtherBusiness:
		return true
	}
	return false
}

// Company represents a client business whose books are kept on the platform.
// A company owns its documents and journal entries; it is soft-deactivated,
// never hard-deleted in the normal flow.
type Company struct {
	CompanyID        string       `json:"companyID"`
	OwnerUserID      string       `json:"ownerUserID"`
	AccountantUserID *string      `json:"accountantUserID,omitempty"`
	Name             string       `json:"name"`
	BusinessType     BusinessType `json:"businessType"`
	IsActive         bool         `json:"isActive"`
	AuditFields
}

// NewCompanyParams carries the validated inputs for creating a company.
type NewCompanyParams struct {
	CompanyID    string
	OwnerUserID  string
	Name         string
	BusinessType BusinessType
	CreatedBy    string
	Now          time.Time
}

// ValidateCompanyInput checks the caller-supplied fields and returns every
// violation found. An empty slice means the input is valid.
func ValidateCompanyInput(ownerUserID, name string, businessType BusinessType) []string {
	var violations []string
	if ownerUserID == "" {
		violations = append(violations, "owner user ID is required")
	}
	if name == "" {
		violations = append(violations, "company name must not be empty")
	}
	if !ValidBusinessType(businessType) {
		violations = append(violations, fmt.Sprintf("unknown business type %q", businessType))
	}
	return violations
}

// NewCompany builds a validated Company. All input violations are reported
// together in the failure branch.
func NewCompany(p NewCompanyParams) outcome.Outcome[Company] {
	if violations := ValidateCompanyInput(p.OwnerUserID, p.Name, p.BusinessType); len(violations) > 0 {
		return outcome.Fail[Company](validationError(violations))
	}
	return outcome.Ok(Company{
		CompanyID:    p.CompanyID,
		OwnerUserID:  p.OwnerUserID,
		Name:         p.Name,
		BusinessType: p.BusinessType,
		IsActive:     true,
		AuditFields:  NewAuditFields(p.CreatedBy, p.Now),
	})
}

// Rename changes the display name, rejecting an empty replacement.
func (c *Company) Rename(name, actorUserID string, now time.Time) error {
	if name == "" {
		return fmt.Errorf("%w: company name must not be empty", apperrors.ErrValidation)
	}
	c.Name = name
	c.Touch(actorUserID, now)
	return nil
}

// AssignAccountant sets or replaces the assigned accountant.
func (c *Company) AssignAccountant(accountantUserID, actorUserID string, now time.Time) error {
	if accountantUserID == "" {
		return fmt.Errorf("%w: accountant user ID is required", apperrors.ErrValidation)
	}
	c.AccountantUserID = &accountantUserID
	c.Touch(actorUserID, now)
	return nil
}

// Deactivate soft-deletes the company. Deactivating an already inactive
// company is a state-order violation.
func (c *Company) Deactivate(actorUserID string, now time.Time) error {
	if !c.IsActive {
		return fmt.Errorf("%w: company %s is already inactive", apperrors.ErrConflict, c.CompanyID)
	}
	c.IsActive = false
	c.Touch(actorUserID, now)
	return nil
}

// Activate re-enables a previously deactivated company.
func (c *Company) Activate(actorUserID string, now time.Time) error {
	if c.IsActive {
		return fmt.Errorf("%w: company %s is already active", apperrors.ErrConflict, c.CompanyID)
	}
	c.IsActive = true
	c.Touch(actorUserID, now)
	return nil
}
