package model

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleStaff      = "STAFF"
)

type Scope struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"` // SUPER_ADMIN, ADMIN, MANAGER or STAFF
	CompanyID string `json:"company_id"`
	JTI       string `json:"jti"`
}

// IsSuperAdmin reports whether the scope may read across tenants.
func (s Scope) IsSuperAdmin() bool {
	return s.Role == RoleSuperAdmin
}

// IsAdmin checks if the scope has company admin role
func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanManageRules reports whether the scope may change SLA rules.
func (s Scope) CanManageRules() bool {
	return s.Role == RoleSuperAdmin || s.Role == RoleAdmin
}

// CompanyFilter returns the tenant ids a query made with this scope is
// restricted to. Nil means unrestricted.
func (s Scope) CompanyFilter() []string {
	if s.IsSuperAdmin() {
		return nil
	}
	return []string{s.CompanyID}
}
