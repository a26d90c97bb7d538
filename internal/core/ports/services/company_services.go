package services

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company by its ID.
	GetCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves a paginated list of companies.
	ListCompanies(ctx context.Context, params dto.ListParams) (*dto.ListCompaniesResponse, error)

	// GetDashboard summarizes a company's credit activity: current balance,
	// total credits ever granted, and the newest debit.
	GetDashboard(ctx context.Context, companyID string) (*dto.CompanyDashboardResponse, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany registers a company and auto-provisions its operator
	// account with a sequential username and a generated password, returned
	// once in the response.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string, comment string) (*dto.CreateCompanyResponse, error)

	// UpdateCompany updates company details.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
