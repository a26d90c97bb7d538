package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/core/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/platform/config"
	"github.com/abecha/sms_forfait_app/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserRepo  *MockUserRepository
	mockTokenRepo *MockTokenRepository
	service       portssvc.AuthSvcFacade
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTokenRepo = new(MockTokenRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "test-issuer",
		RefreshTokenExpiryDuration: 720 * time.Hour,
	}
	userSvc := services.NewUserService(suite.mockUserRepo)
	suite.service = services.NewAuthService(cfg, userSvc, suite.mockTokenRepo)
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "operator", PasswordHash: hash, Role: domain.RoleUser, IsActive: true}

	grant := &domain.AccessGrant{GrantID: uuid.NewString(), UserID: user.UserID, CompanyID: uuid.NewString()}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "operator").Return(user, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, user.UserID).Return(grant, nil).Once()
	suite.mockTokenRepo.On("SaveRefreshToken", ctx, mock.MatchedBy(func(t domain.RefreshToken) bool {
		return t.UserID == user.UserID && t.Token != "" && !t.IsUsed
	})).Return(nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "operator", Password: password})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
	suite.Equal(user.UserID, resp.User.UserID)

	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(string(domain.RoleUser), claims.Role)

	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_BadCredentials() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "SaveRefreshToken", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_UnlinkedOperator() {
	ctx := context.Background()
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "orphan", PasswordHash: hash, Role: domain.RoleUser, IsActive: true}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "orphan").Return(user, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, user.UserID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Username: "orphan", Password: password})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "SaveRefreshToken", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRefresh_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.RefreshToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		Token:     "refresh-value",
		IsUsed:    false,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	user := &domain.User{UserID: userID, Username: "operator", Role: domain.RoleUser, IsActive: true}

	suite.mockTokenRepo.On("FindRefreshToken", ctx, "refresh-value").Return(stored, nil).Once()
	suite.mockTokenRepo.On("MarkTokenUsed", ctx, stored.TokenID).Return(nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(user, nil).Once()
	suite.mockTokenRepo.On("SaveRefreshToken", ctx, mock.AnythingOfType("domain.RefreshToken")).Return(nil).Once()

	resp, err := suite.service.Refresh(ctx, "refresh-value")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEqual("refresh-value", resp.RefreshToken)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefresh_ReplayRevokesAllTokens() {
	ctx := context.Background()
	userID := uuid.NewString()
	stored := &domain.RefreshToken{
		TokenID:   uuid.NewString(),
		UserID:    userID,
		Token:     "leaked-value",
		IsUsed:    true,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}

	suite.mockTokenRepo.On("FindRefreshToken", ctx, "leaked-value").Return(stored, nil).Once()
	suite.mockTokenRepo.On("DeleteTokensForUser", ctx, userID).Return(nil).Once()

	resp, err := suite.service.Refresh(ctx, "leaked-value")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefresh_Expired() {
	ctx := context.Background()
	stored := &domain.RefreshToken{
		TokenID:   uuid.NewString(),
		UserID:    uuid.NewString(),
		Token:     "stale-value",
		IsUsed:    false,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}

	suite.mockTokenRepo.On("FindRefreshToken", ctx, "stale-value").Return(stored, nil).Once()

	resp, err := suite.service.Refresh(ctx, "stale-value")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenRepo.AssertNotCalled(suite.T(), "MarkTokenUsed", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownToken() {
	ctx := context.Background()

	suite.mockTokenRepo.On("FindRefreshToken", ctx, "unknown").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.Refresh(ctx, "unknown")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogout_DeletesAllTokens() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockTokenRepo.On("DeleteTokensForUser", ctx, userID).Return(nil).Once()

	err := suite.service.Logout(ctx, userID)

	suite.Require().NoError(err)
	suite.mockTokenRepo.AssertExpectations(suite.T())
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
