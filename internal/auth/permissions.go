package auth

import "github.com/visitdesk/authcore/internal/models"

// Resources and actions known to the authorization table. The host
// application passes these as plain strings; unknown combinations deny.
const (
	ResourceVisitor      = "visitor"
	ResourceSystemConfig = "system_config"

	ActionRegister = "register"
	ActionCheckIn  = "checkin"
	ActionCheckOut = "checkout"
	ActionView     = "view"
)

// Allowed evaluates the static role permission table:
// SuperAdmin everything; Administrator everything except system
// configuration; Receptionist visitor registration and check-in/out;
// SecurityGuard visitor viewing only.
func Allowed(role models.Role, resource, action string) bool {
	switch role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleAdministrator:
		return resource != ResourceSystemConfig
	case models.RoleReceptionist:
		return resource == ResourceVisitor &&
			(action == ActionRegister || action == ActionCheckIn || action == ActionCheckOut)
	case models.RoleSecurityGuard:
		return resource == ResourceVisitor && action == ActionView
	default:
		return false
	}
}
