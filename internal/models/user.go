package models

// Role is the access level stored on a user row.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleValidateur Role = "VALIDATEUR"
)

// User represents a user row.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         Role   `db:"role"`
	IsActive     bool   `db:"is_active"`
	IsSuper      bool   `db:"is_super"`
	Comment      string `db:"comment"`
	AuditFields
}

// AccessGrant binds a user to the single company it may operate on.
type AccessGrant struct {
	GrantID   string `db:"grant_id"`
	UserID    string `db:"user_id"`
	CompanyID string `db:"company_id"`
	Comment   string `db:"comment"`
	AuditFields
}
