package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	CompanyRepo      CompanyRepositoryFacade
	OfferRepo        OfferRepositoryFacade
	SubscriptionRepo SubscriptionRepositoryFacade
	LedgerRepo       LedgerRepositoryFacade
	CampaignRepo     CampaignRepositoryFacade
	DispatchRepo     DispatchRepositoryFacade
	TokenRepo        TokenRepositoryFacade
}
