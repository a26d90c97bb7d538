package services

import (
	"context"
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
	"github.com/abecha/sms_forfait_app/internal/utils"
)

// operatorPasswordBytes sizes the generated operator password (hex doubles it).
const operatorPasswordBytes = 8

// companyService provides company registration, updates and dashboards.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
	userRepo    portsrepo.UserRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany registers the company and auto-provisions its operator
// account: a USER-role login with a sequential username and a generated
// password, bound to the company by an access grant. Company, operator and
// grant are persisted in one transaction. The plaintext password appears
// only in the response.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string, comment string) (*dto.CreateCompanyResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !utils.ValidateAsPhoneNumber(req.Phone) {
		return nil, fmt.Errorf("%w: invalid phone number %q", apperrors.ErrValidation, req.Phone)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	company := domain.Company{
		CompanyID:          uuid.NewString(),
		Name:               req.Name,
		Type:               req.Type,
		RCCM:               req.RCCM,
		Impot:              req.Impot,
		Idnat:              req.Idnat,
		Address:            req.Address,
		City:               req.City,
		Province:           req.Province,
		SenderName:         req.SenderName,
		Representative:     req.Representative,
		RepresentativeRole: req.RepresentativeRole,
		Phone:              utils.FormatToNumber(req.Phone),
		Comment:            comment,
		AuditFields:        audit,
	}

	// Sequential operator username: one past the highest existing suffix.
	maxSeq, err := s.userRepo.MaxOperatorSequence(ctx)
	if err != nil {
		return nil, err
	}
	username := fmt.Sprintf("user-%04d", maxSeq+1)

	password, err := utils.GenerateSecureRandomString(operatorPasswordBytes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to generate operator password", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash operator password", err)
	}

	operator := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		Comment:      comment,
		AuditFields:  audit,
	}
	grant := domain.AccessGrant{
		GrantID:   uuid.NewString(),
		UserID:    operator.UserID,
		CompanyID: company.CompanyID,
		Comment:   comment,
		CreatedAt: now,
		CreatedBy: creatorUserID,
	}

	if err := s.companyRepo.SaveCompanyWithOperator(ctx, company, operator, grant); err != nil {
		logger.Error("Failed to register company with operator account", slog.String("company_id", company.CompanyID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Company registered",
		slog.String("company_id", company.CompanyID),
		slog.String("operator_user_id", operator.UserID),
	)

	return &dto.CreateCompanyResponse{
		Company:          dto.ToCompanyResponse(&company),
		OperatorUsername: username,
		OperatorPassword: password,
	}, nil
}

func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.City != nil {
		company.City = *req.City
	}
	if req.Province != nil {
		company.Province = *req.Province
	}
	if req.SenderName != nil {
		company.SenderName = *req.SenderName
	}
	if req.Phone != nil {
		if !utils.ValidateAsPhoneNumber(*req.Phone) {
			return nil, fmt.Errorf("%w: invalid phone number %q", apperrors.ErrValidation, *req.Phone)
		}
		company.Phone = utils.FormatToNumber(*req.Phone)
	}

	company.LastUpdatedAt = time.Now().UTC()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

func (s *companyService) ListCompanies(ctx context.Context, params dto.ListParams) (*dto.ListCompaniesResponse, error) {
	companies, nextToken, err := s.companyRepo.ListCompanies(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListCompaniesResponse(companies, nextToken)
	return &resp, nil
}

// GetDashboard summarizes the company's credit activity from the ledger: the
// newest entry carries the balance, the credit column sums to the lifetime
// total, and the newest debit shows the last consumption.
func (s *companyService) GetDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardResponse, error) {
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, err
	}

	newest, err := s.ledgerRepo.FindNewestEntry(ctx, companyID)
	if err != nil {
		return nil, err
	}
	balance := decimal.Zero
	if newest != nil {
		balance = newest.Balance()
	}

	totalCredits, err := s.ledgerRepo.SumCredits(ctx, companyID)
	if err != nil {
		return nil, err
	}

	lastDebit, err := s.ledgerRepo.FindNewestDebit(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CompanyDashboardResponse{
		CompanyID:    companyID,
		Balance:      balance,
		TotalCredits: totalCredits,
	}
	if lastDebit != nil {
		entry := dto.ToLedgerEntryResponse(lastDebit)
		resp.LastDebit = &entry
	}
	return resp, nil
}
