package domain

import "time"

// Role is the access level of a user account.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
	RoleValidateur Role = "VALIDATEUR"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser, RoleValidateur:
		return true
	}
	return false
}

// User represents an actor of the application.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	IsSuper      bool   `json:"isSuper"`
	Comment      string `json:"comment"` // audit note: "ip/username" of the request that wrote the row
	AuditFields
}

// AccessGrant binds a USER-role account to exactly one company. Users without
// a grant cannot operate on company-scoped resources.
type AccessGrant struct {
	GrantID   string    `json:"grantID"`
	UserID    string    `json:"userID"`
	CompanyID string    `json:"companyID"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}
