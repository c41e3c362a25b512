package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portsrepo "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

// reportingService computes the derived financial statements on demand.
type reportingService struct {
	BaseService
	journalRepo portsrepo.JournalEntryRepository
	accountRepo portsrepo.AccountReader
	now         func() time.Time
}

// ReportingServiceOption configures optional dependencies of the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer sets the authorizer used for access checks.
func WithReportingAuthorizer(a portssvc.AuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.Authorizer = a
	}
}

// WithReportingClock overrides the clock, for tests.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(journalRepo portsrepo.JournalEntryRepository, accountRepo portsrepo.AccountReader, opts ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	s := &reportingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// validateAsOf rejects a zero or future as-of date before any repository call.
func (s *reportingService) validateAsOf(asOf time.Time) error {
	if asOf.IsZero() {
		return fmtValidation("as-of date is required")
	}
	if asOf.After(s.now()) {
		return fmtValidation("as-of date %s is in the future", asOf.Format(time.RFC3339))
	}
	return nil
}

// GetTrialBalance computes per-account debit/credit totals and the balanced
// verdict as of a date.
func (s *reportingService) GetTrialBalance(ctx context.Context, req dto.TrialBalanceRequest, requestingUserID string) outcome.Outcome[domain.TrialBalance] {
	if err := s.validateAsOf(req.AsOf); err != nil {
		return outcome.Fail[domain.TrialBalance](err)
	}
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, req.CompanyID); err != nil {
		return outcome.Fail[domain.TrialBalance](err)
	}

	computed := s.journalRepo.ComputeTrialBalance(ctx, req.CompanyID, req.AsOf)
	if computed.IsFailure() {
		s.LogError(ctx, computed.Err(), "failed to compute trial balance", slog.String("company_id", req.CompanyID))
		return outcome.Fail[domain.TrialBalance](computed.Err())
	}

	tb := computed.Value()
	if !tb.IsBalanced {
		// Posting enforces balance per entry, so an unbalanced trial balance
		// means the stored data itself is damaged. Worth shouting about.
		s.LogError(ctx, apperrors.ErrInternal, "trial balance does not balance",
			slog.String("company_id", req.CompanyID),
			slog.String("total_debits", tb.TotalDebits.String()),
			slog.String("total_credits", tb.TotalCredits.String()))
	}
	return outcome.Ok(tb)
}

// GetProfitAndLoss nets income against expenses over a period.
func (s *reportingService) GetProfitAndLoss(ctx context.Context, req dto.ProfitAndLossRequest, requestingUserID string) outcome.Outcome[domain.ProfitAndLossReport] {
	if req.From.IsZero() || req.To.IsZero() {
		return outcome.Fail[domain.ProfitAndLossReport](fmtValidation("both period dates are required"))
	}
	if req.To.Before(req.From) {
		return outcome.Fail[domain.ProfitAndLossReport](fmtValidation("period end %s precedes start %s", req.To.Format(time.DateOnly), req.From.Format(time.DateOnly)))
	}
	if err := s.AuthorizeCompanyAccess(ctx, requestingUserID, req.CompanyID); err != nil {
		return outcome.Fail[domain.ProfitAndLossReport](err)
	}

	accounts := s.accountRepo.FindAccountsByCompany(ctx, req.CompanyID)
	if accounts.IsFailure() {
		return outcome.Fail[domain.ProfitAndLossReport](accounts.Err())
	}
	entries := s.journalRepo.FindEntriesByDateRange(ctx, req.CompanyID, req.From, req.To)
	if entries.IsFailure() {
		return outcome.Fail[domain.ProfitAndLossReport](entries.Err())
	}

	var lines []domain.JournalEntryLine
	for _, entry := range entries.Value() {
		lines = append(lines, entry.Lines...)
	}
	return outcome.Ok(domain.ComputeProfitAndLoss(req.From, req.To, accounts.Value(), lines))
}

// GetBalanceSheet states assets, liabilities and equity as of a date. It is
// derived from the trial balance, so the same as-of rules apply.
func (s *reportingService) GetBalanceSheet(ctx context.Context, req dto.BalanceSheetRequest, requestingUserID string) outcome.Outcome[domain.BalanceSheetReport] {
	tb := s.GetTrialBalance(ctx, dto.TrialBalanceRequest{CompanyID: req.CompanyID, AsOf: req.AsOf}, requestingUserID)
	if tb.IsFailure() {
		return outcome.Fail[domain.BalanceSheetReport](tb.Err())
	}
	return outcome.Ok(domain.ComputeBalanceSheet(tb.Value()))
}

func fmtValidation(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{apperrors.ErrValidation}, args...)...)
}
