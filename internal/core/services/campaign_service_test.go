package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/core/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

type CampaignServiceTestSuite struct {
	suite.Suite
	mockCampaignRepo *MockCampaignRepository
	mockCompanyRepo  *MockCompanyRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.CampaignSvcFacade
}

func (suite *CampaignServiceTestSuite) SetupTest() {
	suite.mockCampaignRepo = new(MockCampaignRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewCampaignService(suite.mockCampaignRepo, suite.mockCompanyRepo, suite.mockUserRepo)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_NormalizesRecipients() {
	ctx := context.Background()
	companyID := uuid.NewString()
	creatorID := uuid.NewString()
	req := dto.CreateCampaignRequest{
		Title:      "Promo rentrée",
		Message:    "Bonjour",
		Recipients: []string{"243971955445", "243 812345678"},
	}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, creatorID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCampaignRepo.On("FindCampaignByTitle", ctx, companyID, req.Title).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCampaignRepo.On("SaveCampaign", ctx, mock.MatchedBy(func(c domain.Campaign) bool {
		return len(c.Recipients) == 2 &&
			c.Recipients[0] == "243 971955445" &&
			c.Recipients[1] == "243 812345678"
	})).Return(nil).Once()

	campaign, err := suite.service.CreateCampaign(ctx, companyID, req, creatorID, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(campaign)
	suite.Equal(req.Title, campaign.Title)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_InvalidRecipient() {
	ctx := context.Background()
	companyID := uuid.NewString()
	creatorID := uuid.NewString()
	req := dto.CreateCampaignRequest{
		Title:      "Promo",
		Message:    "Bonjour",
		Recipients: []string{"12345"},
	}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, creatorID).Return(nil, apperrors.ErrNotFound).Once()

	campaign, err := suite.service.CreateCampaign(ctx, companyID, req, creatorID, "")

	suite.Require().Error(err)
	suite.Nil(campaign)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "SaveCampaign", mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_DuplicateTitle() {
	ctx := context.Background()
	companyID := uuid.NewString()
	creatorID := uuid.NewString()
	req := dto.CreateCampaignRequest{
		Title:      "Promo",
		Message:    "Bonjour",
		Recipients: []string{"243 971955445"},
	}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, creatorID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCampaignRepo.On("FindCampaignByTitle", ctx, companyID, req.Title).
		Return(&domain.Campaign{CampaignID: uuid.NewString(), Title: "promo"}, nil).Once()

	campaign, err := suite.service.CreateCampaign(ctx, companyID, req, creatorID, "")

	suite.Require().Error(err)
	suite.Nil(campaign)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCampaignRepo.AssertNotCalled(suite.T(), "SaveCampaign", mock.Anything, mock.Anything)
}

func (suite *CampaignServiceTestSuite) TestCreateCampaign_GrantForOtherCompany() {
	ctx := context.Background()
	companyID := uuid.NewString()
	creatorID := uuid.NewString()
	req := dto.CreateCampaignRequest{
		Title:      "Promo",
		Message:    "Bonjour",
		Recipients: []string{"243 971955445"},
	}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, creatorID).
		Return(&domain.AccessGrant{UserID: creatorID, CompanyID: uuid.NewString()}, nil).Once()

	campaign, err := suite.service.CreateCampaign(ctx, companyID, req, creatorID, "")

	suite.Require().Error(err)
	suite.Nil(campaign)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CampaignServiceTestSuite) TestUpdateCampaign_Success() {
	ctx := context.Background()
	campaignID := uuid.NewString()
	companyID := uuid.NewString()
	requesterID := uuid.NewString()
	existing := &domain.Campaign{
		CampaignID: campaignID,
		CompanyID:  companyID,
		Title:      "Promo",
		Message:    "Ancien message",
		Recipients: []string{"243 971955445"},
	}
	newMessage := "Nouveau message"

	suite.mockCampaignRepo.On("FindCampaignByID", ctx, campaignID).Return(existing, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, requesterID).
		Return(&domain.AccessGrant{UserID: requesterID, CompanyID: companyID}, nil).Once()
	suite.mockCampaignRepo.On("UpdateCampaign", ctx, mock.MatchedBy(func(c domain.Campaign) bool {
		return c.CampaignID == campaignID && c.Message == newMessage
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCampaign(ctx, campaignID, dto.UpdateCampaignRequest{Message: &newMessage}, requesterID)

	suite.Require().NoError(err)
	suite.Equal(newMessage, updated.Message)
	suite.mockCampaignRepo.AssertExpectations(suite.T())
}

func TestCampaignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}
