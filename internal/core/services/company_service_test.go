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

type CompanyServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	mockUserRepo    *MockUserRepository
	mockAuthorizer  *MockAuthorizer
	service         portssvc.CompanySvcFacade
	userID          string
	now             time.Time
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewCompanyService(
		suite.mockCompanyRepo,
		suite.mockUserRepo,
		services.WithCompanyAuthorizer(suite.mockAuthorizer),
		services.WithCompanyClock(func() time.Time { return suite.now }),
	)
	suite.userID = uuid.NewString()
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_Success() {
	suite.mockCompanyRepo.On("FindCompanyByUser", mock.Anything, suite.userID).Return(outcome.Fail[domain.Company](apperrors.ErrNotFound))
	suite.mockCompanyRepo.On("SaveCompany", mock.Anything, mock.MatchedBy(func(c domain.Company) bool {
		return c.OwnerUserID == suite.userID && c.IsActive
	})).Return(outcome.Done())

	req := dto.CreateCompanyRequest{Name: "Brightside Bakery", BusinessType: "SOLE_PROPRIETORSHIP"}
	res := suite.service.CreateCompany(context.Background(), req, suite.userID)

	suite.True(res.IsSuccess())
	suite.Equal("Brightside Bakery", res.Value().Name)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveOpeningBalance", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_SecondCompanyIsRejected() {
	existing := domain.Company{CompanyID: uuid.NewString(), OwnerUserID: suite.userID}
	suite.mockCompanyRepo.On("FindCompanyByUser", mock.Anything, suite.userID).Return(outcome.Ok(existing))

	req := dto.CreateCompanyRequest{Name: "Second Venture", BusinessType: "PARTNERSHIP"}
	res := suite.service.CreateCompany(context.Background(), req, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrDuplicate)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_RecordsOpeningBalance() {
	suite.mockCompanyRepo.On("FindCompanyByUser", mock.Anything, suite.userID).Return(outcome.Fail[domain.Company](apperrors.ErrNotFound))
	suite.mockCompanyRepo.On("SaveCompany", mock.Anything, mock.Anything).Return(outcome.Done())
	amount := decimal.NewFromInt(5000)
	suite.mockCompanyRepo.On("SaveOpeningBalance", mock.Anything, mock.MatchedBy(func(ob domain.OpeningBalance) bool {
		return ob.Amount.Equal(amount)
	})).Return(outcome.Done())

	req := dto.CreateCompanyRequest{
		Name:           "Brightside Bakery",
		BusinessType:   "LIMITED_COMPANY",
		OpeningBalance: &amount,
	}
	res := suite.service.CreateCompany(context.Background(), req, suite.userID)

	suite.True(res.IsSuccess())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_InvalidBusinessType() {
	suite.mockCompanyRepo.On("FindCompanyByUser", mock.Anything, suite.userID).Return(outcome.Fail[domain.Company](apperrors.ErrNotFound))

	req := dto.CreateCompanyRequest{Name: "Brightside Bakery", BusinessType: "FRANCHISE"}
	res := suite.service.CreateCompany(context.Background(), req, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "SaveCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestAssignAccountant_Success() {
	companyID := uuid.NewString()
	accountantID := uuid.NewString()
	suite.mockAuthorizer.On("HasPermission", mock.Anything, suite.userID, services.PermManageCompanies).Return(outcome.Ok(true))
	suite.mockUserRepo.On("FindUserByID", mock.Anything, accountantID).Return(outcome.Ok(domain.User{
		UserID: accountantID, Role: domain.RoleAccountant, IsActive: true,
	}))
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(outcome.Ok(domain.Company{
		CompanyID: companyID, OwnerUserID: uuid.NewString(), IsActive: true,
	}))
	suite.mockCompanyRepo.On("UpdateCompany", mock.Anything, mock.MatchedBy(func(c domain.Company) bool {
		return c.AccountantUserID != nil && *c.AccountantUserID == accountantID
	})).Return(outcome.Done())

	res := suite.service.AssignAccountant(context.Background(), companyID, dto.AssignAccountantRequest{AccountantUserID: accountantID}, suite.userID)

	suite.True(res.IsSuccess())
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestAssignAccountant_RejectsPlainUserRole() {
	companyID := uuid.NewString()
	assigneeID := uuid.NewString()
	suite.mockAuthorizer.On("HasPermission", mock.Anything, suite.userID, services.PermManageCompanies).Return(outcome.Ok(true))
	suite.mockUserRepo.On("FindUserByID", mock.Anything, assigneeID).Return(outcome.Ok(domain.User{
		UserID: assigneeID, Role: domain.RoleUser, IsActive: true,
	}))

	res := suite.service.AssignAccountant(context.Background(), companyID, dto.AssignAccountantRequest{AccountantUserID: assigneeID}, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrValidation)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "UpdateCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestAssignAccountant_ForbiddenWithoutPermission() {
	suite.mockAuthorizer.On("HasPermission", mock.Anything, suite.userID, services.PermManageCompanies).Return(outcome.Ok(false))

	res := suite.service.AssignAccountant(context.Background(), uuid.NewString(), dto.AssignAccountantRequest{AccountantUserID: uuid.NewString()}, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrForbidden)
}

func (suite *CompanyServiceTestSuite) TestRenameCompany_OwnerMayRename() {
	companyID := uuid.NewString()
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(outcome.Ok(domain.Company{
		CompanyID: companyID, OwnerUserID: suite.userID, Name: "Old Name", IsActive: true,
	}))
	suite.mockCompanyRepo.On("UpdateCompany", mock.Anything, mock.MatchedBy(func(c domain.Company) bool {
		return c.Name == "New Name"
	})).Return(outcome.Done())

	res := suite.service.RenameCompany(context.Background(), companyID, dto.RenameCompanyRequest{Name: "New Name"}, suite.userID)

	suite.True(res.IsSuccess())
	suite.Equal("New Name", res.Value().Name)
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "HasPermission", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestDeactivateCompany_AlreadyInactiveConflicts() {
	companyID := uuid.NewString()
	suite.mockAuthorizer.On("HasPermission", mock.Anything, suite.userID, services.PermManageCompanies).Return(outcome.Ok(true))
	suite.mockCompanyRepo.On("FindCompanyByID", mock.Anything, companyID).Return(outcome.Ok(domain.Company{
		CompanyID: companyID, IsActive: false,
	}))

	res := suite.service.DeactivateCompany(context.Background(), companyID, suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrConflict)
	suite.mockCompanyRepo.AssertNotCalled(suite.T(), "UpdateCompany", mock.Anything, mock.Anything)
}

func (suite *CompanyServiceTestSuite) TestGetOwnCompany_NotFound() {
	suite.mockCompanyRepo.On("FindCompanyByUser", mock.Anything, suite.userID).Return(outcome.Fail[domain.Company](apperrors.ErrNotFound))

	res := suite.service.GetOwnCompany(context.Background(), suite.userID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrNotFound)
}

func TestCompanyService(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
