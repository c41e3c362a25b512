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
	"github.com/clearbooks-dev/clearbooks_backend/internal/utils"
	"github.com/clearbooks-dev/clearbooks_backend/pkg/outcome"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewAuthService(suite.mockUserRepo, services.AuthConfig{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "clearbooks-test",
	})
}

func (suite *AuthServiceTestSuite) TestSignup_Success() {
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "new@example.com").Return(outcome.Fail[domain.User](apperrors.ErrNotFound))
	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "new@example.com" && u.Role == domain.RoleUser && u.IsActive && u.PasswordHash != "hunter2secret"
	})).Return(outcome.Done())

	res := suite.service.Signup(context.Background(), dto.SignupRequest{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "hunter2secret",
	})

	suite.True(res.IsSuccess())
	suite.Equal("USER", res.Value().Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSignup_DuplicateEmail() {
	existing := domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "taken@example.com").Return(outcome.Ok(existing))

	res := suite.service.Signup(context.Background(), dto.SignupRequest{
		Email:    "taken@example.com",
		Name:     "Someone",
		Password: "hunter2secret",
	})

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := domain.User{UserID: uuid.NewString(), Email: "user@example.com", PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "user@example.com").Return(outcome.Ok(user))

	res := suite.service.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "correct-password"})

	suite.True(res.IsSuccess())
	suite.NotEmpty(res.Value().Token)
	suite.Equal(user.UserID, res.Value().User.UserID)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPasswordAndUnknownEmailLookAlike() {
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := domain.User{UserID: uuid.NewString(), Email: "user@example.com", PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "user@example.com").Return(outcome.Ok(user))
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "ghost@example.com").Return(outcome.Fail[domain.User](apperrors.ErrNotFound))

	wrongPassword := suite.service.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "wrong"})
	unknownEmail := suite.service.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "wrong"})

	suite.True(wrongPassword.IsFailure())
	suite.True(unknownEmail.IsFailure())
	suite.Equal(wrongPassword.Err().Error(), unknownEmail.Err().Error())
}

func (suite *AuthServiceTestSuite) TestLogin_DeactivatedAccount() {
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)
	user := domain.User{UserID: uuid.NewString(), Email: "user@example.com", PasswordHash: hash, IsActive: false}
	suite.mockUserRepo.On("FindUserByEmail", mock.Anything, "user@example.com").Return(outcome.Ok(user))

	res := suite.service.Login(context.Background(), dto.LoginRequest{Email: "user@example.com", Password: "correct-password"})

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrForbidden)
}

func (suite *AuthServiceTestSuite) TestChangePassword_VerifiesCurrent() {
	hash, err := utils.HashPassword("old-password")
	suite.Require().NoError(err)
	userID := uuid.NewString()
	user := domain.User{UserID: userID, PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(outcome.Ok(user))

	res := suite.service.ChangePassword(context.Background(), userID, dto.ChangePasswordRequest{
		CurrentPassword: "not-the-old-password",
		NewPassword:     "brand-new-password",
	})

	suite.True(res.IsFailure())
	suite.ErrorIs(res.Err(), apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestChangePassword_Success() {
	hash, err := utils.HashPassword("old-password")
	suite.Require().NoError(err)
	userID := uuid.NewString()
	user := domain.User{UserID: userID, PasswordHash: hash, IsActive: true}
	suite.mockUserRepo.On("FindUserByID", mock.Anything, userID).Return(outcome.Ok(user))
	suite.mockUserRepo.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return utils.CheckPasswordHash("brand-new-password", u.PasswordHash)
	})).Return(outcome.Done())

	res := suite.service.ChangePassword(context.Background(), userID, dto.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "brand-new-password",
	})

	suite.True(res.IsSuccess())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
