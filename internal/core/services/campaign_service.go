package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abecha/sms_forfait_app/internal/apperrors"
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	portsrepo "github.com/abecha/sms_forfait_app/internal/core/ports/repositories"
	portssvc "github.com/abecha/sms_forfait_app/internal/core/ports/services"
	"github.com/abecha/sms_forfait_app/internal/dto"
	"github.com/abecha/sms_forfait_app/internal/middleware"
	"github.com/abecha/sms_forfait_app/internal/utils"
)

// campaignService manages message campaigns and their recipient lists.
type campaignService struct {
	campaignRepo portsrepo.CampaignRepositoryFacade
	companyRepo  portsrepo.CompanyRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo portsrepo.CampaignRepositoryFacade, companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.CampaignSvcFacade {
	return &campaignService{
		campaignRepo: campaignRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
	}
}

var _ portssvc.CampaignSvcFacade = (*campaignService)(nil)

// normalizeRecipients formats every recipient and rejects the list when any
// entry does not validate afterwards.
func normalizeRecipients(raw []string) ([]string, error) {
	recipients := make([]string, len(raw))
	for i, r := range raw {
		formatted := utils.FormatToNumber(r)
		if !utils.ValidateAsPhoneNumber(formatted) {
			return nil, fmt.Errorf("%w: invalid recipient %q", apperrors.ErrValidation, r)
		}
		recipients[i] = formatted
	}
	return recipients, nil
}

// requireCompanyScope rejects requesters whose grant binds them to a
// different company. Requesters without a grant are unscoped.
func (s *campaignService) requireCompanyScope(ctx context.Context, userID string, companyID string) error {
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

// CreateCampaign validates the recipient list, enforces per-company title
// uniqueness and persists the campaign.
func (s *campaignService) CreateCampaign(ctx context.Context, companyID string, req dto.CreateCampaignRequest, creatorUserID string, comment string) (*domain.Campaign, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("company lookup failed: %w", err)
	}
	if err := s.requireCompanyScope(ctx, creatorUserID, companyID); err != nil {
		return nil, err
	}

	recipients, err := normalizeRecipients(req.Recipients)
	if err != nil {
		return nil, err
	}

	existing, err := s.campaignRepo.FindCampaignByTitle(ctx, companyID, req.Title)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("campaign title %q already exists: %w", req.Title, apperrors.ErrDuplicate)
	}

	now := time.Now().UTC()
	campaign := domain.Campaign{
		CampaignID: uuid.NewString(),
		CompanyID:  companyID,
		Title:      req.Title,
		Message:    req.Message,
		Recipients: recipients,
		Comment:    comment,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.campaignRepo.SaveCampaign(ctx, campaign); err != nil {
		logger.Error("Failed to save campaign", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Campaign created",
		slog.String("campaign_id", campaign.CampaignID),
		slog.String("company_id", companyID),
		slog.Int("recipient_count", len(recipients)),
	)
	return &campaign, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, campaignID string, req dto.UpdateCampaignRequest, requestingUserID string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.FindCampaignByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCompanyScope(ctx, requestingUserID, campaign.CompanyID); err != nil {
		return nil, err
	}

	if req.Message != nil {
		campaign.Message = *req.Message
	}
	if req.Recipients != nil {
		recipients, err := normalizeRecipients(req.Recipients)
		if err != nil {
			return nil, err
		}
		campaign.Recipients = recipients
	}

	campaign.LastUpdatedAt = time.Now().UTC()
	campaign.LastUpdatedBy = requestingUserID

	if err := s.campaignRepo.UpdateCampaign(ctx, *campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

func (s *campaignService) GetCampaignByID(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	return s.campaignRepo.FindCampaignByID(ctx, campaignID)
}

func (s *campaignService) ListCampaignsByCompany(ctx context.Context, companyID string, params dto.ListParams) (*dto.ListCampaignsResponse, error) {
	campaigns, nextToken, err := s.campaignRepo.ListCampaignsByCompany(ctx, companyID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListCampaignsResponse(campaigns, nextToken)
	return &resp, nil
}
