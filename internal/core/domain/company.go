package domain

// Company represents a client company buying SMS credit packages.
// Legal/contact attributes are validated once at creation; only
// administrative edits touch them afterwards.
type Company struct {
	CompanyID      string `json:"companyID"` // Primary Key (UUID)
	Name           string `json:"name"`
	Type           string `json:"type"`
	RCCM           string `json:"rccm"`  // trade register number
	Impot          string `json:"impot"` // tax identifier
	Idnat          string `json:"idnat"` // national identifier
	Address        string `json:"address"`
	City           string `json:"city"`
	Province       string `json:"province"`
	SenderName         string `json:"senderName"` // SMS originator shown to recipients
	Representative     string `json:"representative"`
	RepresentativeRole string `json:"representativeRole"`
	Phone              string `json:"phone"`
	Comment            string `json:"comment"`
	AuditFields
}
