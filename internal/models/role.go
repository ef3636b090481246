package models

import "fmt"

// Role is the closed set of principal roles, ordered by privilege.
// The numeric values are part of the storage contract; SuperAdmin carries
// the highest privilege and SecurityGuard the lowest.
type Role int

const (
	RoleSuperAdmin Role = iota
	RoleAdministrator
	RoleReceptionist
	RoleSecurityGuard
)

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleAdministrator:
		return "administrator"
	case RoleReceptionist:
		return "receptionist"
	case RoleSecurityGuard:
		return "security_guard"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= RoleSuperAdmin && r <= RoleSecurityGuard
}

// ParseRole maps a role name back to its Role value.
func ParseRole(s string) (Role, error) {
	switch s {
	case "super_admin":
		return RoleSuperAdmin, nil
	case "administrator":
		return RoleAdministrator, nil
	case "receptionist":
		return RoleReceptionist, nil
	case "security_guard":
		return RoleSecurityGuard, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
