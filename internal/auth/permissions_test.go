package auth

import (
	"testing"

	"github.com/visitdesk/authcore/internal/models"
)

func TestAllowed_Matrix(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		resource string
		action   string
		want     bool
	}{
		{"super admin visitor register", models.RoleSuperAdmin, ResourceVisitor, ActionRegister, true},
		{"super admin system config", models.RoleSuperAdmin, ResourceSystemConfig, "edit", true},
		{"super admin unknown resource", models.RoleSuperAdmin, "reports", "export", true},

		{"administrator visitor register", models.RoleAdministrator, ResourceVisitor, ActionRegister, true},
		{"administrator reports", models.RoleAdministrator, "reports", "export", true},
		{"administrator system config denied", models.RoleAdministrator, ResourceSystemConfig, "edit", false},

		{"receptionist register", models.RoleReceptionist, ResourceVisitor, ActionRegister, true},
		{"receptionist checkin", models.RoleReceptionist, ResourceVisitor, ActionCheckIn, true},
		{"receptionist checkout", models.RoleReceptionist, ResourceVisitor, ActionCheckOut, true},
		{"receptionist view denied", models.RoleReceptionist, ResourceVisitor, ActionView, false},
		{"receptionist reports denied", models.RoleReceptionist, "reports", "export", false},

		{"guard view", models.RoleSecurityGuard, ResourceVisitor, ActionView, true},
		{"guard register denied", models.RoleSecurityGuard, ResourceVisitor, ActionRegister, false},
		{"guard system config denied", models.RoleSecurityGuard, ResourceSystemConfig, "edit", false},

		{"unknown role denied", models.Role(42), ResourceVisitor, ActionView, false},
		{"unknown action denied", models.RoleReceptionist, ResourceVisitor, "purge", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Allowed(tc.role, tc.resource, tc.action); got != tc.want {
				t.Fatalf("Allowed(%v, %q, %q) = %v, want %v", tc.role, tc.resource, tc.action, got, tc.want)
			}
		})
	}
}
