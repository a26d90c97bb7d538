package repositories

import (
	"context"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompanies retrieves a paginated list of companies using token-based pagination.
	ListCompanies(ctx context.Context, limit int, nextToken *string) ([]domain.Company, *string, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompanyWithOperator persists a new company, its auto-provisioned
	// operator account and the grant binding them in one transaction. A
	// failure on any of the three leaves nothing behind.
	SaveCompanyWithOperator(ctx context.Context, company domain.Company, operator domain.User, grant domain.AccessGrant) error

	// UpdateCompany updates the mutable fields of a company.
	UpdateCompany(ctx context.Context, company domain.Company) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

// CompanyRepositoryWithTx extends CompanyRepositoryFacade with transaction capabilities
type CompanyRepositoryWithTx interface {
	CompanyRepositoryFacade
	TransactionManager
}
