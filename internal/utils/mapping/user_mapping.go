package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Role:         models.Role(d.Role),
		IsActive:     d.IsActive,
		IsSuper:      d.IsSuper,
		Comment:      d.Comment,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		IsActive:     m.IsActive,
		IsSuper:      m.IsSuper,
		Comment:      m.Comment,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToModelAccessGrant converts a domain AccessGrant to a model AccessGrant
func ToModelAccessGrant(d domain.AccessGrant) models.AccessGrant {
	return models.AccessGrant{
		GrantID:   d.GrantID,
		UserID:    d.UserID,
		CompanyID: d.CompanyID,
		Comment:   d.Comment,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.CreatedAt,
			LastUpdatedBy: d.CreatedBy,
		},
	}
}

// ToDomainAccessGrant converts a model AccessGrant to a domain AccessGrant
func ToDomainAccessGrant(m models.AccessGrant) domain.AccessGrant {
	return domain.AccessGrant{
		GrantID:   m.GrantID,
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
