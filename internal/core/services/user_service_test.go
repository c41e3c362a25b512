package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/clearbooks-dev/clearbooks_backend/internal/apperrors"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/domain"
	portssvc "github.com/clearbooks-dev/clearbooks_backend/internal/core/ports/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/core/services"
	"github.com/clearbooks-dev/clearbooks_backend/internal/dto"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo   *MockUserRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.UserSvcFacade
	adminID        string
	targetID       string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewUserService(
		suite.mockUserRepo,
		services.WithUserAuthorizer(suite.mockAuthorizer),
		services.WithUserClock(func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) }),
	)
	suite.adminID = uuid.NewString()
	suite.targetID = uuid.NewString()
}

func (suite *UserServiceTestSuite) allowManagement() {
	suite.mockAuthorizer.On("CanManageUser", mock.Anything, suite.adminID, suite.targetID).Return(outcome.Ok(true))
}

func (suite *UserServiceTestSuite) TestGetUser_SelfNeedsNoPermission() {
	user := domain.User{UserID: suite.targetID, Email: "me@example.com", IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.targetID).Return(outcome.Ok(user))

	res := suite.service.GetUser(context.Background(), suite.targetID, suite.targetID)

	suite.True(res.IsSuccess())
	suite.mockAuthorizer.AssertNotCalled(suite.T(), "CanManageUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestGetUser_OtherRequiresManagementRights() {
	suite.mockAuthorizer.On("CanManageUser", mock.Anything, suite.adminID, suite.targetID).Return(outcome.Ok(false))

	res := suite.service.GetUser(context.Background(), suite.targetID, suite.adminID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestListUsers_AdminOnly() {
	suite.mockAuthorizer.On("HasPermission", mock.Anything, suite.adminID, services.PermManageUsers).Return(outcome.Ok(false))

	res := suite.service.ListUsers(context.Background(), suite.adminID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ListUsers", mock.Anything)
}

func (suite *UserServiceTestSuite) TestManageUser_Deactivate() {
	suite.allowManagement()
	target := domain.User{UserID: suite.targetID, Role: domain.RoleUser, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.targetID).Return(outcome.Ok(target))
	suite.mockUserRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == suite.targetID && !u.IsActive
	})).Return(outcome.Done())

	res := suite.service.ManageUser(context.Background(), suite.targetID, dto.ManageUserRequest{Action: dto.UserActionDeactivate}, suite.adminID)

	suite.True(res.IsSuccess())
	suite.False(res.Value().IsActive)
}

func (suite *UserServiceTestSuite) TestManageUser_ActivateAlreadyActiveConflicts() {
	suite.allowManagement()
	target := domain.User{UserID: suite.targetID, Role: domain.RoleUser, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.targetID).Return(outcome.Ok(target))

	res := suite.service.ManageUser(context.Background(), suite.targetID, dto.ManageUserRequest{Action: dto.UserActionActivate}, suite.adminID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrConflict)
}

func (suite *UserServiceTestSuite) TestManageUser_ChangeRole() {
	suite.allowManagement()
	target := domain.User{UserID: suite.targetID, Role: domain.RoleUser, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.targetID).Return(outcome.Ok(target))
	suite.mockUserRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAccountant
	})).Return(outcome.Done())

	newRole := "ACCOUNTANT"
	res := suite.service.ManageUser(context.Background(), suite.targetID, dto.ManageUserRequest{Action: dto.UserActionChangeRole, NewRole: &newRole}, suite.adminID)

	suite.True(res.IsSuccess())
	suite.Equal("ACCOUNTANT", res.Value().Role)
}

func (suite *UserServiceTestSuite) TestManageUser_AdminCannotChangeOwnRole() {
	suite.mockAuthorizer.On("CanManageUser", mock.Anything, suite.adminID, suite.adminID).Return(outcome.Ok(true))
	admin := domain.User{UserID: suite.adminID, Role: domain.RoleAdmin, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.adminID).Return(outcome.Ok(admin))

	newRole := "USER"
	res := suite.service.ManageUser(context.Background(), suite.adminID, dto.ManageUserRequest{Action: dto.UserActionChangeRole, NewRole: &newRole}, suite.adminID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestManageUser_ChangeRoleWithoutNewRole() {
	suite.allowManagement()
	target := domain.User{UserID: suite.targetID, Role: domain.RoleUser, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.targetID).Return(outcome.Ok(target))

	res := suite.service.ManageUser(context.Background(), suite.targetID, dto.ManageUserRequest{Action: dto.UserActionChangeRole}, suite.adminID)

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestManageUser_Delete() {
	suite.allowManagement()
	target := domain.User{UserID: suite.targetID, Role: domain.RoleUser, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, suite.targetID).Return(outcome.Ok(target))
	suite.mockUserRepo.On("DeleteUser", mock.Anything, suite.targetID).Return(outcome.Done())

	res := suite.service.ManageUser(context.Background(), suite.targetID, dto.ManageUserRequest{Action: dto.UserActionDelete}, suite.adminID)

	suite.True(res.IsSuccess())
	suite.mockUserRepo.AssertCalled(suite.T(), "DeleteUser", mock.Anything, suite.targetID)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
