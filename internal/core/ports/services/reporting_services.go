package services

import (
	"context"

	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// ReportingSvcFacade defines the derived financial statements. All three are
// recomputed on demand; nothing is persisted.
type ReportingSvcFacade interface {
	// GetTrialBalance computes per-account debit/credit totals and the
	// balanced verdict as of a date. A future as-of date is rejected before
	// the repository is consulted.
	GetTrialBalance(ctx context.Context, req dto.TrialBalanceRequest, requestingUserID string) outcome.Outcome[domain.TrialBalance]

	// GetProfitAndLoss nets income against expenses over a period.
	GetProfitAndLoss(ctx context.Context, req dto.ProfitAndLossRequest, requestingUserID string) outcome.Outcome[domain.ProfitAndLossReport]

	// GetBalanceSheet states assets, liabilities and equity as of a date.
	GetBalanceSheet(ctx context.Context, req dto.BalanceSheetRequest, requestingUserID string) outcome.Outcome[domain.BalanceSheetReport]
}
