package services_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return users, token, args.Error(2)
}

func (m *MockUserRepository) MaxOperatorSequence(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) FindGrantByUserID(ctx context.Context, userID string) (*domain.AccessGrant, error) {
	args := m.Called(ctx, userID)
	var grant *domain.AccessGrant
	if args.Get(0) != nil {
		grant = args.Get(0).(*domain.AccessGrant)
	}
	return grant, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock CompanyRepository ---

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	var company *domain.Company
	if args.Get(0) != nil {
		company = args.Get(0).(*domain.Company)
	}
	return company, args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context, limit int, nextToken *string) ([]domain.Company, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var companies []domain.Company
	if args.Get(0) != nil {
		companies = args.Get(0).([]domain.Company)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return companies, token, args.Error(2)
}

func (m *MockCompanyRepository) SaveCompanyWithOperator(ctx context.Context, company domain.Company, operator domain.User, grant domain.AccessGrant) error {
	args := m.Called(ctx, company, operator, grant)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// --- Mock OfferRepository ---

type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID)
	var offer *domain.Offer
	if args.Get(0) != nil {
		offer = args.Get(0).(*domain.Offer)
	}
	return offer, args.Error(1)
}

func (m *MockOfferRepository) FindCurrentOffer(ctx context.Context) (*domain.Offer, error) {
	args := m.Called(ctx)
	var offer *domain.Offer
	if args.Get(0) != nil {
		offer = args.Get(0).(*domain.Offer)
	}
	return offer, args.Error(1)
}

func (m *MockOfferRepository) ListOffers(ctx context.Context, limit int, nextToken *string) ([]domain.Offer, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return offers, token, args.Error(2)
}

func (m *MockOfferRepository) SaveCurrentOffer(ctx context.Context, offer domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *MockOfferRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

// --- Mock SubscriptionRepository ---

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	var sub *domain.Subscription
	if args.Get(0) != nil {
		sub = args.Get(0).(*domain.Subscription)
	}
	return sub, args.Error(1)
}

func (m *MockSubscriptionRepository) FindNewestSubscription(ctx context.Context, companyID string) (*domain.Subscription, error) {
	args := m.Called(ctx, companyID)
	var sub *domain.Subscription
	if args.Get(0) != nil {
		sub = args.Get(0).(*domain.Subscription)
	}
	return sub, args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptionsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Subscription, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var subs []domain.Subscription
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.Subscription)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return subs, token, args.Error(2)
}

func (m *MockSubscriptionRepository) ListPendingSubscriptions(ctx context.Context, limit int, nextToken *string) ([]domain.Subscription, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var subs []domain.Subscription
	if args.Get(0) != nil {
		subs = args.Get(0).([]domain.Subscription)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return subs, token, args.Error(2)
}

func (m *MockSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// --- Mock LedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindNewestEntry(ctx context.Context, companyID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) FindNewestDebit(ctx context.Context, companyID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, companyID)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) SumCredits(ctx context.Context, companyID string) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var entries []domain.LedgerEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.LedgerEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockLedgerRepository) AppendCredit(ctx context.Context, subscription domain.Subscription, credits decimal.Decimal, activatedBy string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, subscription, credits, activatedBy)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

func (m *MockLedgerRepository) AppendDebit(ctx context.Context, event domain.DispatchEvent, createdBy string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, event, createdBy)
	var entry *domain.LedgerEntry
	if args.Get(0) != nil {
		entry = args.Get(0).(*domain.LedgerEntry)
	}
	return entry, args.Error(1)
}

// --- Mock CampaignRepository ---

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) FindCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	args := m.Called(ctx, campaignID)
	var campaign *domain.Campaign
	if args.Get(0) != nil {
		campaign = args.Get(0).(*domain.Campaign)
	}
	return campaign, args.Error(1)
}

func (m *MockCampaignRepository) FindCampaignByTitle(ctx context.Context, companyID string, title string) (*domain.Campaign, error) {
	args := m.Called(ctx, companyID, title)
	var campaign *domain.Campaign
	if args.Get(0) != nil {
		campaign = args.Get(0).(*domain.Campaign)
	}
	return campaign, args.Error(1)
}

func (m *MockCampaignRepository) ListCampaignsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Campaign, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken)
	var campaigns []domain.Campaign
	if args.Get(0) != nil {
		campaigns = args.Get(0).([]domain.Campaign)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return campaigns, token, args.Error(2)
}

func (m *MockCampaignRepository) SaveCampaign(ctx context.Context, campaign domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) UpdateCampaign(ctx context.Context, campaign domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

// --- Mock DispatchRepository ---

type MockDispatchRepository struct {
	mock.Mock
}

func (m *MockDispatchRepository) FindDispatchByID(ctx context.Context, dispatchID string) (*domain.DispatchEvent, error) {
	args := m.Called(ctx, dispatchID)
	var event *domain.DispatchEvent
	if args.Get(0) != nil {
		event = args.Get(0).(*domain.DispatchEvent)
	}
	return event, args.Error(1)
}

func (m *MockDispatchRepository) ListDispatchesByCampaign(ctx context.Context, campaignID string, limit int, nextToken *string) ([]domain.DispatchEvent, *string, error) {
	args := m.Called(ctx, campaignID, limit, nextToken)
	var events []domain.DispatchEvent
	if args.Get(0) != nil {
		events = args.Get(0).([]domain.DispatchEvent)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return events, token, args.Error(2)
}

func (m *MockDispatchRepository) SaveDispatchEvent(ctx context.Context, event domain.DispatchEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Mock TokenRepository ---

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) FindRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, token)
	var stored *domain.RefreshToken
	if args.Get(0) != nil {
		stored = args.Get(0).(*domain.RefreshToken)
	}
	return stored, args.Error(1)
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, token domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) MarkTokenUsed(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteTokensForUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock SMS gateway ---

type MockSMSGateway struct {
	mock.Mock
}

func (m *MockSMSGateway) PriceMessage(ctx context.Context, message string) (*portssvc.PriceQuote, error) {
	args := m.Called(ctx, message)
	var quote *portssvc.PriceQuote
	if args.Get(0) != nil {
		quote = args.Get(0).(*portssvc.PriceQuote)
	}
	return quote, args.Error(1)
}

func (m *MockSMSGateway) SendBulk(ctx context.Context, senderName string, recipients []string, message string) (int, error) {
	args := m.Called(ctx, senderName, recipients, message)
	return args.Int(0), args.Error(1)
}
