package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/core/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

type DispatchServiceTestSuite struct {
	suite.Suite
	mockCampaignRepo *MockCampaignRepository
	mockSubRepo      *MockSubscriptionRepository
	mockLedgerRepo   *MockLedgerRepository
	mockDispatchRepo *MockDispatchRepository
	mockCompanyRepo  *MockCompanyRepository
	mockUserRepo     *MockUserRepository
	mockGateway      *MockSMSGateway
	service          portssvc.DispatchSvcFacade

	companyID  string
	campaignID string
	userID     string
	campaign   *domain.Campaign
}

func (suite *DispatchServiceTestSuite) SetupTest() {
	suite.mockCampaignRepo = new(MockCampaignRepository)
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockDispatchRepo = new(MockDispatchRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockGateway = new(MockSMSGateway)
	suite.service = services.NewDispatchService(
		suite.mockCampaignRepo,
		suite.mockSubRepo,
		suite.mockLedgerRepo,
		suite.mockDispatchRepo,
		suite.mockCompanyRepo,
		suite.mockUserRepo,
		suite.mockGateway,
	)

	suite.companyID = uuid.NewString()
	suite.campaignID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.campaign = &domain.Campaign{
		CampaignID: suite.campaignID,
		CompanyID:  suite.companyID,
		Title:      "Promo rentrée",
		Message:    "Bonjour, profitez de notre offre.",
		Recipients: []string{"243 971955445", "243 812345678"},
	}
}

// expectLookup wires the campaign lookup and the grant resolution.
func (suite *DispatchServiceTestSuite) expectLookup() {
	ctx := context.Background()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, suite.userID).
		Return(&domain.AccessGrant{UserID: suite.userID, CompanyID: suite.companyID}, nil).Once()
}

// expectGates wires every shared check up to the price quote: campaign
// lookup, grant resolution, newest subscription, newest ledger entry.
func (suite *DispatchServiceTestSuite) expectGates() {
	ctx := context.Background()
	suite.expectLookup()
	suite.mockSubRepo.On("FindNewestSubscription", ctx, suite.companyID).
		Return(&domain.Subscription{
			SubscriptionID: uuid.NewString(),
			CompanyID:      suite.companyID,
			Status:         domain.SubscriptionActivated,
			EndDate:        time.Now().UTC().Add(24 * time.Hour),
		}, nil).Once()
	suite.mockLedgerRepo.On("FindNewestEntry", ctx, suite.companyID).
		Return(&domain.LedgerEntry{Credit: decimal.NewFromInt(100)}, nil).Once()
}

func (suite *DispatchServiceTestSuite) TestEstimateDispatch_Success() {
	ctx := context.Background()
	suite.expectGates()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(&portssvc.PriceQuote{MessageParts: 2, UnitPrice: decimal.NewFromInt(2)}, nil).Once()

	estimate, err := suite.service.EstimateDispatch(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(2, estimate.RecipientCount)
	suite.Equal(2, estimate.MessageParts)
	suite.True(estimate.TotalCost.Equal(decimal.NewFromInt(4)))
	suite.True(estimate.Balance.Equal(decimal.NewFromInt(100)))
	suite.mockGateway.AssertNotCalled(suite.T(), "SendBulk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestEstimateDispatch_RequestRecipientsOverrideStoredList() {
	ctx := context.Background()
	suite.expectGates()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(&portssvc.PriceQuote{MessageParts: 1, UnitPrice: decimal.NewFromInt(2)}, nil).Once()

	req := dto.DispatchRequest{Recipients: []string{"243812345678"}}
	estimate, err := suite.service.EstimateDispatch(ctx, suite.campaignID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, estimate.RecipientCount)
	suite.True(estimate.TotalCost.Equal(decimal.NewFromInt(2)))
}

func (suite *DispatchServiceTestSuite) TestEstimateDispatch_NeverSubscribed() {
	ctx := context.Background()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, suite.userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSubRepo.On("FindNewestSubscription", ctx, suite.companyID).
		Return(nil, apperrors.ErrNotFound).Once()

	estimate, err := suite.service.EstimateDispatch(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(estimate)
	suite.ErrorIs(err, apperrors.ErrSubscriptionExpired)
	suite.mockGateway.AssertNotCalled(suite.T(), "PriceMessage", mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestEstimateDispatch_NewestSubscriptionPending() {
	ctx := context.Background()
	suite.expectLookup()
	suite.mockSubRepo.On("FindNewestSubscription", ctx, suite.companyID).
		Return(&domain.Subscription{
			SubscriptionID: uuid.NewString(),
			CompanyID:      suite.companyID,
			Status:         domain.SubscriptionPending,
			EndDate:        time.Now().UTC().Add(30 * 24 * time.Hour),
		}, nil).Once()

	estimate, err := suite.service.EstimateDispatch(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(estimate)
	suite.ErrorIs(err, apperrors.ErrSubscriptionExpired)
	suite.mockGateway.AssertNotCalled(suite.T(), "PriceMessage", mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestEstimateDispatch_EmptyLedgerRequiresRecharge() {
	ctx := context.Background()
	suite.expectLookup()
	suite.mockSubRepo.On("FindNewestSubscription", ctx, suite.companyID).
		Return(&domain.Subscription{
			SubscriptionID: uuid.NewString(),
			CompanyID:      suite.companyID,
			Status:         domain.SubscriptionActivated,
			EndDate:        time.Now().UTC().Add(24 * time.Hour),
		}, nil).Once()
	suite.mockLedgerRepo.On("FindNewestEntry", ctx, suite.companyID).Return(nil, nil).Once()

	estimate, err := suite.service.EstimateDispatch(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.Nil(estimate)
	suite.ErrorIs(err, apperrors.ErrRechargeRequired)
	suite.mockGateway.AssertNotCalled(suite.T(), "PriceMessage", mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_ZeroBalanceRequiresRecharge() {
	ctx := context.Background()
	suite.expectLookup()
	suite.mockSubRepo.On("FindNewestSubscription", ctx, suite.companyID).
		Return(&domain.Subscription{
			SubscriptionID: uuid.NewString(),
			CompanyID:      suite.companyID,
			Status:         domain.SubscriptionActivated,
			EndDate:        time.Now().UTC().Add(24 * time.Hour),
		}, nil).Once()
	suite.mockLedgerRepo.On("FindNewestEntry", ctx, suite.companyID).
		Return(&domain.LedgerEntry{Initial: decimal.NewFromInt(10), Debit: decimal.NewFromInt(10)}, nil).Once()

	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID, "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrRechargeRequired)
	suite.mockGateway.AssertNotCalled(suite.T(), "PriceMessage", mock.Anything, mock.Anything)
	suite.mockGateway.AssertNotCalled(suite.T(), "SendBulk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_Success() {
	ctx := context.Background()
	suite.expectGates()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(&portssvc.PriceQuote{MessageParts: 1, UnitPrice: decimal.NewFromInt(1)}, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, SenderName: "Transco"}, nil).Once()
	suite.mockGateway.On("SendBulk", ctx, "Transco", suite.campaign.Recipients, suite.campaign.Message).
		Return(2, nil).Once()

	cost := decimal.NewFromInt(2)
	entry := &domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		CompanyID:  suite.companyID,
		CampaignID: &suite.campaignID,
		Initial:    decimal.NewFromInt(100),
		Debit:      cost,
	}
	suite.mockLedgerRepo.On("AppendDebit", ctx, mock.MatchedBy(func(e domain.DispatchEvent) bool {
		return e.CampaignID == suite.campaignID &&
			e.SuccessCount == 2 &&
			e.TotalCost.Equal(cost)
	}), suite.userID).Return(entry, nil).Once()

	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(2, resp.Dispatch.SuccessCount)
	suite.Require().NotNil(resp.Entry)
	suite.True(resp.Entry.Balance.Equal(decimal.NewFromInt(98)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_RequestRecipientsSentNormalized() {
	ctx := context.Background()
	suite.expectGates()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(&portssvc.PriceQuote{MessageParts: 1, UnitPrice: decimal.NewFromInt(1)}, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, SenderName: "Transco"}, nil).Once()
	suite.mockGateway.On("SendBulk", ctx, "Transco", []string{"243 812345678"}, suite.campaign.Message).
		Return(1, nil).Once()
	suite.mockLedgerRepo.On("AppendDebit", ctx, mock.MatchedBy(func(e domain.DispatchEvent) bool {
		return e.RecipientCount == 1 && e.TotalCost.Equal(decimal.NewFromInt(1))
	}), suite.userID).Return(&domain.LedgerEntry{
		EntryID:   uuid.NewString(),
		CompanyID: suite.companyID,
		Initial:   decimal.NewFromInt(100),
		Debit:     decimal.NewFromInt(1),
	}, nil).Once()

	req := dto.DispatchRequest{Recipients: []string{"243812345678"}}
	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, req, suite.userID, "")

	suite.Require().NoError(err)
	suite.Equal(1, resp.Dispatch.RecipientCount)
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_InsufficientBalance() {
	ctx := context.Background()
	suite.expectLookup()
	suite.mockSubRepo.On("FindNewestSubscription", ctx, suite.companyID).
		Return(&domain.Subscription{
			SubscriptionID: uuid.NewString(),
			CompanyID:      suite.companyID,
			Status:         domain.SubscriptionActivated,
			EndDate:        time.Now().UTC().Add(24 * time.Hour),
		}, nil).Once()
	suite.mockLedgerRepo.On("FindNewestEntry", ctx, suite.companyID).
		Return(&domain.LedgerEntry{Credit: decimal.NewFromInt(5)}, nil).Once()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(&portssvc.PriceQuote{MessageParts: 3, UnitPrice: decimal.NewFromInt(3)}, nil).Once()

	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID, "")

	suite.Require().Error(err)
	suite.Nil(resp)
	var insufficientErr *apperrors.InsufficientBalanceError
	suite.Require().ErrorAs(err, &insufficientErr)
	suite.True(insufficientErr.Balance.Equal(decimal.NewFromInt(5)))
	suite.True(insufficientErr.Required.Equal(decimal.NewFromInt(6)))
	suite.mockGateway.AssertNotCalled(suite.T(), "SendBulk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendDebit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_PricingUnavailable() {
	ctx := context.Background()
	suite.expectGates()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(nil, apperrors.ErrGatewayUnavailable).Once()

	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID, "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrGatewayUnavailable)
	suite.mockGateway.AssertNotCalled(suite.T(), "SendBulk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDispatchRepo.AssertNotCalled(suite.T(), "SaveDispatchEvent", mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_SendFailureRecordsButDoesNotCharge() {
	ctx := context.Background()
	suite.expectGates()
	suite.mockGateway.On("PriceMessage", ctx, suite.campaign.Message).
		Return(&portssvc.PriceQuote{MessageParts: 1, UnitPrice: decimal.NewFromInt(1)}, nil).Once()
	suite.mockCompanyRepo.On("FindCompanyByID", ctx, suite.companyID).
		Return(&domain.Company{CompanyID: suite.companyID, SenderName: "Transco"}, nil).Once()
	suite.mockGateway.On("SendBulk", ctx, "Transco", suite.campaign.Recipients, suite.campaign.Message).
		Return(0, apperrors.ErrGatewayUnavailable).Once()
	suite.mockDispatchRepo.On("SaveDispatchEvent", ctx, mock.MatchedBy(func(e domain.DispatchEvent) bool {
		return e.CampaignID == suite.campaignID && e.SuccessCount == 0
	})).Return(nil).Once()

	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID, "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrGatewayUnavailable)
	suite.mockDispatchRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendDebit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DispatchServiceTestSuite) TestDispatchCampaign_GrantForOtherCompany() {
	ctx := context.Background()
	suite.mockCampaignRepo.On("FindCampaignByID", ctx, suite.campaignID).Return(suite.campaign, nil).Once()
	suite.mockUserRepo.On("FindGrantByUserID", ctx, suite.userID).
		Return(&domain.AccessGrant{UserID: suite.userID, CompanyID: uuid.NewString()}, nil).Once()

	resp, err := suite.service.DispatchCampaign(ctx, suite.campaignID, dto.DispatchRequest{}, suite.userID, "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "FindNewestSubscription", mock.Anything, mock.Anything)
}

func TestDispatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DispatchServiceTestSuite))
}
