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

type SubscriptionServiceTestSuite struct {
	suite.Suite
	mockSubRepo     *MockSubscriptionRepository
	mockOfferRepo   *MockOfferRepository
	mockCompanyRepo *MockCompanyRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.SubscriptionSvcFacade
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.mockSubRepo = new(MockSubscriptionRepository)
	suite.mockOfferRepo = new(MockOfferRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewSubscriptionService(suite.mockSubRepo, suite.mockOfferRepo, suite.mockCompanyRepo, suite.mockLedgerRepo)
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_StartsPending() {
	ctx := context.Background()
	companyID := uuid.NewString()
	offerID := uuid.NewString()
	req := dto.CreateSubscriptionRequest{CompanyID: companyID, OfferID: offerID}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).Return(&domain.Company{CompanyID: companyID}, nil).Once()
	suite.mockOfferRepo.On("FindOfferByID", ctx, offerID).Return(&domain.Offer{OfferID: offerID}, nil).Once()
	suite.mockSubRepo.On("SaveSubscription", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.CompanyID == companyID &&
			s.OfferID == offerID &&
			s.Status == domain.SubscriptionPending &&
			s.EndDate.Equal(s.StartDate.Add(domain.SubscriptionTerm))
	})).Return(nil).Once()

	sub, err := suite.service.CreateSubscription(ctx, req, uuid.NewString(), "")

	suite.Require().NoError(err)
	suite.Require().NotNil(sub)
	suite.Equal(domain.SubscriptionPending, sub.Status)
	suite.mockSubRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreateSubscription_UnknownOffer() {
	ctx := context.Background()
	req := dto.CreateSubscriptionRequest{CompanyID: uuid.NewString(), OfferID: uuid.NewString()}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, req.CompanyID).Return(&domain.Company{CompanyID: req.CompanyID}, nil).Once()
	suite.mockOfferRepo.On("FindOfferByID", ctx, req.OfferID).Return(nil, apperrors.ErrNotFound).Once()

	sub, err := suite.service.CreateSubscription(ctx, req, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(sub)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSubRepo.AssertNotCalled(suite.T(), "SaveSubscription", mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestActivateSubscription_MintsOfferCredits() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	offerID := uuid.NewString()
	companyID := uuid.NewString()
	validatorID := uuid.NewString()
	credits := decimal.NewFromInt(500)

	// The validity window was fixed at purchase, three days ago.
	purchasedAt := time.Now().UTC().Add(-72 * time.Hour)
	pending := &domain.Subscription{
		SubscriptionID: subscriptionID,
		CompanyID:      companyID,
		OfferID:        offerID,
		Status:         domain.SubscriptionPending,
		StartDate:      purchasedAt,
		EndDate:        purchasedAt.Add(domain.SubscriptionTerm),
	}
	activated := &domain.Subscription{
		SubscriptionID: subscriptionID,
		CompanyID:      companyID,
		OfferID:        offerID,
		Status:         domain.SubscriptionActivated,
		ActivatedBy:    &validatorID,
		StartDate:      purchasedAt,
		EndDate:        purchasedAt.Add(domain.SubscriptionTerm),
	}
	entry := &domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		CompanyID:      companyID,
		SubscriptionID: &subscriptionID,
		Initial:        decimal.Zero,
		Credit:         credits,
	}

	suite.mockSubRepo.On("FindSubscriptionByID", ctx, subscriptionID).Return(pending, nil).Once()
	suite.mockOfferRepo.On("FindOfferByID", ctx, offerID).Return(&domain.Offer{OfferID: offerID, Credits: credits}, nil).Once()
	suite.mockLedgerRepo.On("AppendCredit", ctx, mock.MatchedBy(func(s domain.Subscription) bool {
		return s.StartDate.Equal(purchasedAt) && s.EndDate.Equal(purchasedAt.Add(domain.SubscriptionTerm))
	}), credits, validatorID).Return(entry, nil).Once()
	suite.mockSubRepo.On("FindSubscriptionByID", ctx, subscriptionID).Return(activated, nil).Once()

	resp, err := suite.service.ActivateSubscription(ctx, subscriptionID, validatorID, "")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal(string(domain.SubscriptionActivated), resp.Subscription.Status)
	suite.True(resp.Entry.Credit.Equal(credits))
	suite.True(resp.Entry.Balance.Equal(credits))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestActivateSubscription_AlreadyActivated() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	already := &domain.Subscription{
		SubscriptionID: subscriptionID,
		Status:         domain.SubscriptionActivated,
	}

	suite.mockSubRepo.On("FindSubscriptionByID", ctx, subscriptionID).Return(already, nil).Once()

	resp, err := suite.service.ActivateSubscription(ctx, subscriptionID, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendCredit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SubscriptionServiceTestSuite) TestActivateSubscription_LostRaceMintsNothing() {
	ctx := context.Background()
	subscriptionID := uuid.NewString()
	offerID := uuid.NewString()
	pending := &domain.Subscription{
		SubscriptionID: subscriptionID,
		OfferID:        offerID,
		Status:         domain.SubscriptionPending,
	}

	suite.mockSubRepo.On("FindSubscriptionByID", ctx, subscriptionID).Return(pending, nil).Once()
	suite.mockOfferRepo.On("FindOfferByID", ctx, offerID).Return(&domain.Offer{OfferID: offerID, Credits: decimal.NewFromInt(100)}, nil).Once()
	// A concurrent activation won the row update inside the transaction.
	suite.mockLedgerRepo.On("AppendCredit", ctx, mock.AnythingOfType("domain.Subscription"), mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("string")).
		Return(nil, apperrors.ErrConflict).Once()

	resp, err := suite.service.ActivateSubscription(ctx, subscriptionID, uuid.NewString(), "")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}
