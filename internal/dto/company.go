package dto

import (
	"time"

	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCompanyRequest defines the data needed to register a company.
type CreateCompanyRequest struct {
	Name               string `json:"name" binding:"required,max=100"`
	Type               string `json:"type" binding:"required,max=50"`
	RCCM               string `json:"rccm" binding:"required,max=50"`
	Impot              string `json:"impot" binding:"required,max=50"`
	Idnat              string `json:"idnat" binding:"required,max=50"`
	Address            string `json:"address" binding:"required,max=200"`
	City               string `json:"city" binding:"required,max=50"`
	Province           string `json:"province" binding:"required,max=50"`
	SenderName         string `json:"senderName" binding:"required,max=11"`
	Representative     string `json:"representative" binding:"required,max=100"`
	RepresentativeRole string `json:"representativeRole" binding:"required,max=100"`
	Phone              string `json:"phone" binding:"required"`
}

// UpdateCompanyRequest defines the data allowed for updating a company.
type UpdateCompanyRequest struct {
	Address    *string `json:"address" binding:"omitempty,max=200"`
	City       *string `json:"city" binding:"omitempty,max=50"`
	Province   *string `json:"province" binding:"omitempty,max=50"`
	SenderName *string `json:"senderName" binding:"omitempty,max=11"`
	Phone      *string `json:"phone"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID          string    `json:"companyID"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	RCCM               string    `json:"rccm"`
	Impot              string    `json:"impot"`
	Idnat              string    `json:"idnat"`
	Address            string    `json:"address"`
	City               string    `json:"city"`
	Province           string    `json:"province"`
	SenderName         string    `json:"senderName"`
	Representative     string    `json:"representative"`
	RepresentativeRole string    `json:"representativeRole"`
	Phone              string    `json:"phone"`
	CreatedAt          time.Time `json:"createdAt"`
}

// CreateCompanyResponse returns the new company together with the one-time
// credentials of its auto-provisioned operator account. The password is shown
// only here; only its hash is stored.
type CreateCompanyResponse struct {
	Company          CompanyResponse `json:"company"`
	OperatorUsername string          `json:"operatorUsername"`
	OperatorPassword string          `json:"operatorPassword"`
}

// ListCompaniesResponse wraps a page of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// CompanyDashboardResponse summarizes a company's credit activity.
type CompanyDashboardResponse struct {
	CompanyID    string               `json:"companyID"`
	Balance      decimal.Decimal      `json:"balance"`
	TotalCredits decimal.Decimal      `json:"totalCredits"`
	LastDebit    *LedgerEntryResponse `json:"lastDebit,omitempty"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:          c.CompanyID,
		Name:               c.Name,
		Type:               c.Type,
		RCCM:               c.RCCM,
		Impot:              c.Impot,
		Idnat:              c.Idnat,
		Address:            c.Address,
		City:               c.City,
		Province:           c.Province,
		SenderName:         c.SenderName,
		Representative:     c.Representative,
		RepresentativeRole: c.RepresentativeRole,
		Phone:              c.Phone,
		CreatedAt:          c.CreatedAt,
	}
}

// ToListCompaniesResponse converts a page of domain.Company to ListCompaniesResponse DTO.
func ToListCompaniesResponse(companies []domain.Company, nextToken *string) ListCompaniesResponse {
	responses := make([]CompanyResponse, len(companies))
	for i, company := range companies {
		responses[i] = ToCompanyResponse(&company)
	}
	return ListCompaniesResponse{
		Companies: responses,
		NextToken: nextToken,
	}
}
