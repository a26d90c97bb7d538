package pgsql

import (
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	companyRepo := newPgxCompanyRepository(dbPool)
	offerRepo := newPgxOfferRepository(dbPool)
	subscriptionRepo := newPgxSubscriptionRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	campaignRepo := newPgxCampaignRepository(dbPool)
	dispatchRepo := newPgxDispatchRepository(dbPool)
	tokenRepo := newPgxTokenRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:         userRepo,
		CompanyRepo:      companyRepo,
		OfferRepo:        offerRepo,
		SubscriptionRepo: subscriptionRepo,
		LedgerRepo:       ledgerRepo,
		CampaignRepo:     campaignRepo,
		DispatchRepo:     dispatchRepo,
		TokenRepo:        tokenRepo,
	}
}
