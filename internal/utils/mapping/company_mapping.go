package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:          d.CompanyID,
		Name:               d.Name,
		Type:               d.Type,
		RCCM:               d.RCCM,
		Impot:              d.Impot,
		Idnat:              d.Idnat,
		Address:            d.Address,
		City:               d.City,
		Province:           d.Province,
		SenderName:         d.SenderName,
		Representative:     d.Representative,
		RepresentativeRole: d.RepresentativeRole,
		Phone:              d.Phone,
		Comment:            d.Comment,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:          m.CompanyID,
		Name:               m.Name,
		Type:               m.Type,
		RCCM:               m.RCCM,
		Impot:              m.Impot,
		Idnat:              m.Idnat,
		Address:            m.Address,
		City:               m.City,
		Province:           m.Province,
		SenderName:         m.SenderName,
		Representative:     m.Representative,
		RepresentativeRole: m.RepresentativeRole,
		Phone:              m.Phone,
		Comment:            m.Comment,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of model Companies to a slice of domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}
