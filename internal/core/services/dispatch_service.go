package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/middleware"
)

// dispatchService runs the campaign send workflow: quote, gate on the active
// subscription and the balance, send, then charge.
type dispatchService struct {
	campaignRepo     portsrepo.CampaignRepositoryFacade
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	ledgerRepo       portsrepo.LedgerRepositoryFacade
	dispatchRepo     portsrepo.DispatchRepositoryFacade
	companyRepo      portsrepo.CompanyRepositoryFacade
	userRepo         portsrepo.UserRepositoryFacade
	gateway          portssvc.SMSGatewayFacade
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(
	campaignRepo portsrepo.CampaignRepositoryFacade,
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	dispatchRepo portsrepo.DispatchRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	gateway portssvc.SMSGatewayFacade,
) portssvc.DispatchSvcFacade {
	return &dispatchService{
		campaignRepo:     campaignRepo,
		subscriptionRepo: subscriptionRepo,
		ledgerRepo:       ledgerRepo,
		dispatchRepo:     dispatchRepo,
		companyRepo:      companyRepo,
		userRepo:         userRepo,
		gateway:          gateway,
	}
}

var _ portssvc.DispatchSvcFacade = (*dispatchService)(nil)

// requireCompanyScope rejects requesters whose grant binds them to a
// different company. Requesters without a grant are unscoped.
func (s *dispatchService) requireCompanyScope(ctx context.Context, userID string, companyID string) error {
	grant, err := s.userRepo.FindGrantByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if grant.CompanyID != companyID {
		return fmt.Errorf("user %s is not granted access to company %s: %w", userID, companyID, apperrors.ErrForbidden)
	}
	return nil
}

// dispatchPlan carries everything the gates resolved for one send or
// estimate: the campaign, the effective recipient list, the quote and the
// balance the cost will be charged against.
type dispatchPlan struct {
	campaign   *domain.Campaign
	recipients []string
	quote      *portssvc.PriceQuote
	totalCost  decimal.Decimal
	balance    decimal.Decimal
}

// prepareDispatch runs every gate the send workflow shares with estimation,
// in order: authorization, the newest-subscription check, the balance read
// (an empty or exhausted ledger stops before any pricing call), then the
// price quote. It never touches the gateway's send path.
func (s *dispatchService) prepareDispatch(ctx context.Context, campaignID string, req dto.DispatchRequest, requestingUserID string) (*dispatchPlan, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompanyScope(ctx, requestingUserID, campaign.CompanyID); err != nil {
		return nil, err
	}

	recipients := campaign.Recipients
	if len(req.Recipients) > 0 {
		recipients, err = normalizeRecipients(req.Recipients)
		if err != nil {
			return nil, err
		}
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: campaign %s has no recipients", apperrors.ErrValidation, campaignID)
	}

	// Only the newest subscription counts: a company whose latest purchase
	// is still pending cannot keep dispatching on an older one.
	subscription, err := s.subscriptionRepo.FindNewestSubscription(ctx, campaign.CompanyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("company %s has no subscription: %w", campaign.CompanyID, apperrors.ErrSubscriptionExpired)
		}
		return nil, err
	}
	if !subscription.IsActive(time.Now().UTC()) {
		return nil, fmt.Errorf("company %s has no active subscription: %w", campaign.CompanyID, apperrors.ErrSubscriptionExpired)
	}

	newest, err := s.ledgerRepo.FindNewestEntry(ctx, campaign.CompanyID)
	if err != nil {
		return nil, err
	}
	if newest == nil || !newest.Balance().IsPositive() {
		return nil, fmt.Errorf("company %s: %w", campaign.CompanyID, apperrors.ErrRechargeRequired)
	}
	balance := newest.Balance()

	quote, err := s.gateway.PriceMessage(ctx, campaign.Message)
	if err != nil {
		return nil, err
	}

	return &dispatchPlan{
		campaign:   campaign,
		recipients: recipients,
		quote:      quote,
		totalCost:  quote.UnitPrice.Mul(decimal.NewFromInt(int64(len(recipients)))),
		balance:    balance,
	}, nil
}

// EstimateDispatch quotes a campaign send without sending or charging.
func (s *dispatchService) EstimateDispatch(ctx context.Context, campaignID string, req dto.DispatchRequest, requestingUserID string) (*dto.DispatchEstimateResponse, error) {
	plan, err := s.prepareDispatch(ctx, campaignID, req, requestingUserID)
	if err != nil {
		return nil, err
	}

	return &dto.DispatchEstimateResponse{
		CampaignID:     plan.campaign.CampaignID,
		RecipientCount: len(plan.recipients),
		MessageParts:   plan.quote.MessageParts,
		UnitPrice:      plan.quote.UnitPrice,
		TotalCost:      plan.totalCost,
		Balance:        plan.balance,
	}, nil
}

// DispatchCampaign sends the campaign and charges its cost to the ledger. A
// gateway failure still records the attempt, with zero successes and no
// charge.
func (s *dispatchService) DispatchCampaign(ctx context.Context, campaignID string, req dto.DispatchRequest, requestingUserID string, comment string) (*dto.DispatchResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	plan, err := s.prepareDispatch(ctx, campaignID, req, requestingUserID)
	if err != nil {
		return nil, err
	}
	if plan.balance.LessThan(plan.totalCost) {
		return nil, apperrors.NewInsufficientBalanceError(plan.balance, plan.totalCost)
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, plan.campaign.CompanyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event := domain.DispatchEvent{
		DispatchID:     uuid.NewString(),
		CampaignID:     plan.campaign.CampaignID,
		CompanyID:      plan.campaign.CompanyID,
		RecipientCount: len(plan.recipients),
		MessageParts:   plan.quote.MessageParts,
		UnitPrice:      plan.quote.UnitPrice,
		TotalCost:      plan.totalCost,
		Comment:        comment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	sent, err := s.gateway.SendBulk(ctx, company.SenderName, plan.recipients, plan.campaign.Message)
	if err != nil {
		event.SuccessCount = 0
		if saveErr := s.dispatchRepo.SaveDispatchEvent(ctx, event); saveErr != nil {
			logger.Error("Failed to record failed dispatch",
				slog.String("campaign_id", campaignID),
				slog.String("error", saveErr.Error()),
			)
		}
		logger.Warn("Campaign dispatch failed at the gateway",
			slog.String("campaign_id", campaignID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	event.SuccessCount = sent

	entry, err := s.ledgerRepo.AppendDebit(ctx, event, requestingUserID)
	if err != nil {
		logger.Error("Dispatch sent but charging failed",
			slog.String("campaign_id", campaignID),
			slog.String("dispatch_id", event.DispatchID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Campaign dispatched",
		slog.String("campaign_id", campaignID),
		slog.String("dispatch_id", event.DispatchID),
		slog.Int("success_count", sent),
		slog.String("total_cost", plan.totalCost.String()),
	)

	entryResp := dto.ToLedgerEntryResponse(entry)
	return &dto.DispatchResponse{
		Dispatch: dto.ToDispatchEventResponse(&event),
		Entry:    &entryResp,
	}, nil
}

func (s *dispatchService) ListDispatchesByCampaign(ctx context.Context, campaignID string, params dto.ListParams) (*dto.ListDispatchesResponse, error) {
	events, nextToken, err := s.dispatchRepo.ListDispatchesByCampaign(ctx, campaignID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListDispatchesResponse(events, nextToken)
	return &resp, nil
}
