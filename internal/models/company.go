package models

// Company represents a company row.
type Company struct {
	CompanyID          string `db:"company_id"`
	Name               string `db:"name"`
	Type               string `db:"type"`
	RCCM               string `db:"rccm"`
	Impot              string `db:"impot"`
	Idnat              string `db:"idnat"`
	Address            string `db:"address"`
	City               string `db:"city"`
	Province           string `db:"province"`
	SenderName         string `db:"sender_name"`
	Representative     string `db:"representative"`
	RepresentativeRole string `db:"representative_role"`
	Phone              string `db:"phone"`
	Comment            string `db:"comment"`
	AuditFields
}
