package enum

// Role is a role code governing which actions a user may invoke
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleManager      Role = "MANAGER"
	RoleStockOfficer Role = "STOCK_OFFICER"
	RoleSalesOfficer Role = "SALES_OFFICER"
)

// AllRoles lists every defined role code
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleStockOfficer, RoleSalesOfficer}
}

// ParseRole returns the role for a code, and whether the code is known
func ParseRole(code string) (Role, bool) {
	switch Role(code) {
	case RoleAdmin, RoleManager, RoleStockOfficer, RoleSalesOfficer:
		return Role(code), true
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}
