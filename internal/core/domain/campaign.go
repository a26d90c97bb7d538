package domain

// Campaign is a reusable message template plus its recipient list, owned by
// one company. Titles are unique per company, compared case-insensitively.
type Campaign struct {
	CampaignID string   `json:"campaignID"` // Primary Key (UUID)
	CompanyID  string   `json:"companyID"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Recipients []string `json:"recipients"` // normalized E.164 numbers
	Comment    string   `json:"comment"`
	AuditFields
}
