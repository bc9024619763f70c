package model

// GlobalCompanyID owns rules and templates that apply to every tenant.
const GlobalCompanyID = "00000000-0000-0000-0000-000000000000"

// IsGlobalCompany reports whether id is the global tenant.
func IsGlobalCompany(id string) bool {
	return id == GlobalCompanyID
}

// TenantFilter restricts a query to a set of companies. An empty filter is
// unrestricted.
type TenantFilter struct {
	CompanyIDs []string
}

// Allows reports whether companyID passes the filter.
func (f TenantFilter) Allows(companyID string) bool {
	if len(f.CompanyIDs) == 0 {
		return true
	}
	for _, id := range f.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// TenantFilterFor builds the filter a request made with sc is bound to.
func TenantFilterFor(sc Scope) TenantFilter {
	return TenantFilter{CompanyIDs: sc.CompanyFilter()}
}
