package models

// Campaign represents a campaign row. Recipients are stored as a text array.
type Campaign struct {
	CampaignID string   `db:"campaign_id"`
	CompanyID  string   `db:"company_id"`
	Title      string   `db:"title"`
	Message    string   `db:"message"`
	Recipients []string `db:"recipients"`
	Comment    string   `db:"comment"`
	AuditFields
}
