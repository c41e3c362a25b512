package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
)

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// NewAuditFields returns audit fields stamped with now and the acting user.
func NewAuditFields(actorUserID string, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}
}

// Touch updates the last-updated audit fields in place.
func (a *AuditFields) Touch(actorUserID string, now time.Time) {
	a.LastUpdatedAt = now
	a.LastUpdatedBy = actorUserID
}

// validationError folds a list of violation messages into a single error
// wrapping apperrors.ErrValidation. Every violation found is reported, not
// just the first, so a caller can surface the complete correction list in one
// round trip.
func validationError(violations []string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(violations, "; "))
}
