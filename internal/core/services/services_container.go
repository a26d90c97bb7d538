package services

import (
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gateway portssvc.SMSGatewayFacade) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// User service first since auth depends on it
	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User, repos.TokenRepo)

	container.Company = NewCompanyService(repos.CompanyRepo, repos.UserRepo, repos.LedgerRepo)
	container.Offer = NewOfferService(repos.OfferRepo)
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.OfferRepo, repos.CompanyRepo, repos.LedgerRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo)
	container.Campaign = NewCampaignService(repos.CampaignRepo, repos.CompanyRepo, repos.UserRepo)
	container.Dispatch = NewDispatchService(
		repos.CampaignRepo,
		repos.SubscriptionRepo,
		repos.LedgerRepo,
		repos.DispatchRepo,
		repos.CompanyRepo,
		repos.UserRepo,
		gateway,
	)

	return container
}
