package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.ReportingSvcFacade
	companyID       string
	userID          string
	now             time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewReportingService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		services.WithReportingAuthorizer(suite.mockAuthorizer),
		services.WithReportingClock(func() time.Time { return suite.now }),
	)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *ReportingServiceTestSuite) allowAccess() {
	suite.mockAuthorizer.On("CanAccessCompany", mock.Anything, suite.userID, suite.companyID).Return(outcome.Ok(true))
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_Success() {
	suite.allowAccess()
	asOf := suite.now.AddDate(0, -1, 0)
	tb := domain.TrialBalance{
		CompanyID:    suite.companyID,
		AsOf:         asOf,
		TotalDebits:  decimal.NewFromInt(150),
		TotalCredits: decimal.NewFromInt(150),
		IsBalanced:   true,
	}
	suite.mockJournalRepo.On("ComputeTrialBalance", mock.Anything, suite.companyID, asOf).Return(outcome.Ok(tb))

	res := suite.service.GetTrialBalance(context.Background(), dto.TrialBalanceRequest{CompanyID: suite.companyID, AsOf: asOf}, suite.userID)

	suite.True(res.IsSuccess())
	suite.True(res.Value().IsBalanced)
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_FutureAsOfRejectedBeforeRepo() {
	asOf := suite.now.AddDate(0, 0, 1)

	res := suite.service.GetTrialBalance(context.Background(), dto.TrialBalanceRequest{CompanyID: suite.companyID, AsOf: asOf}, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ComputeTrialBalance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetTrialBalance_ForbiddenWithoutAccess() {
	suite.mockAuthorizer.On("CanAccessCompany", mock.Anything, suite.userID, suite.companyID).Return(outcome.Ok(false))
	asOf := suite.now.AddDate(0, -1, 0)

	res := suite.service.GetTrialBalance(context.Background(), dto.TrialBalanceRequest{CompanyID: suite.companyID, AsOf: asOf}, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestGetProfitAndLoss_Success() {
	suite.allowAccess()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	sales := domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Sales", AccountType: domain.Income, IsActive: true}
	rent := domain.Account{AccountID: uuid.NewString(), CompanyID: suite.companyID, Name: "Rent", AccountType: domain.Expense, IsActive: true}
	suite.mockAccountRepo.On("FindAccountsByCompany", mock.Anything, suite.companyID).Return(outcome.Ok([]domain.Account{sales, rent}))
	entries := []domain.JournalEntry{{
		EntryID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Lines: []domain.JournalEntryLine{
			{AccountID: sales.AccountID, LineType: domain.Credit, Amount: decimal.NewFromInt(900)},
			{AccountID: rent.AccountID, LineType: domain.Debit, Amount: decimal.NewFromInt(400)},
		},
	}}
	suite.mockJournalRepo.On("FindEntriesByDateRange", mock.Anything, suite.companyID, from, to).Return(outcome.Ok(entries))

	res := suite.service.GetProfitAndLoss(context.Background(), dto.ProfitAndLossRequest{CompanyID: suite.companyID, From: from, To: to}, suite.userID)

	suite.True(res.IsSuccess())
	report := res.Value()
	suite.True(report.TotalIncome.Equal(decimal.NewFromInt(900)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(400)))
	suite.True(report.NetProfit.Equal(decimal.NewFromInt(500)))
}

func (suite *ReportingServiceTestSuite) TestGetProfitAndLoss_InvertedPeriodRejected() {
	from := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	res := suite.service.GetProfitAndLoss(context.Background(), dto.ProfitAndLossRequest{CompanyID: suite.companyID, From: from, To: to}, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestGetBalanceSheet_DerivesFromTrialBalance() {
	suite.allowAccess()
	asOf := suite.now.AddDate(0, -1, 0)
	tb := domain.TrialBalance{
		CompanyID: suite.companyID,
		AsOf:      asOf,
		Rows: []domain.TrialBalanceRow{
			{AccountID: uuid.NewString(), AccountName: "Cash", AccountType: domain.Asset, Balance: decimal.NewFromInt(700)},
			{AccountID: uuid.NewString(), AccountName: "Loan", AccountType: domain.Liability, Balance: decimal.NewFromInt(-700)},
		},
		TotalDebits:  decimal.NewFromInt(700),
		TotalCredits: decimal.NewFromInt(700),
		IsBalanced:   true,
	}
	suite.mockJournalRepo.On("ComputeTrialBalance", mock.Anything, suite.companyID, asOf).Return(outcome.Ok(tb))

	res := suite.service.GetBalanceSheet(context.Background(), dto.BalanceSheetRequest{CompanyID: suite.companyID, AsOf: asOf}, suite.userID)

	suite.True(res.IsSuccess())
	report := res.Value()
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(700)))
	suite.True(report.TotalLiabilities.Equal(decimal.NewFromInt(700)))
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
