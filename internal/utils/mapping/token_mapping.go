package mapping

import (
	"github.com/abecha/sms_forfait_app/internal/core/domain"
	"github.com/abecha/sms_forfait_app/internal/models"
)

// ToModelRefreshToken converts a domain RefreshToken to a model RefreshToken
func ToModelRefreshToken(d domain.RefreshToken) models.RefreshToken {
	return models.RefreshToken{
		TokenID:   d.TokenID,
		UserID:    d.UserID,
		Token:     d.Token,
		IsUsed:    d.IsUsed,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainRefreshToken converts a model RefreshToken to a domain RefreshToken
func ToDomainRefreshToken(m models.RefreshToken) domain.RefreshToken {
	return domain.RefreshToken{
		TokenID:   m.TokenID,
		UserID:    m.UserID,
		Token:     m.Token,
		IsUsed:    m.IsUsed,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}
