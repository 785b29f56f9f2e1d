package permission

import (
	"slices"

	"github.com/simpleoutings/homestay/internal/core/domain/auth"
)

// Permission represents a specific permission in the system
type Permission string

const (
	// Owner dashboard
	ManageOwnProperties Permission = "manage_own_properties" // Create and edit own sites and their content
	ManageOwnBookings   Permission = "manage_own_bookings"   // Confirm, cancel and export bookings
	ManageOwnInquiries  Permission = "manage_own_inquiries"  // Read and triage inquiries
	ViewOwnAuditLog     Permission = "view_own_audit_log"

	// Platform operations
	ReadAllTenants     Permission = "read_all_tenants"
	ManageTenantStatus Permission = "manage_tenant_status" // Activate, suspend, cancel
	RecordPayments     Permission = "record_payments"
	ReadPlans          Permission = "read_plans"
	ViewAuditLog       Permission = "view_audit_log"
)

func (p Permission) String() string {
	return string(p)
}

var rolePermissions = map[auth.Role][]Permission{
	auth.RoleOwner: {
		ManageOwnProperties,
		ManageOwnBookings,
		ManageOwnInquiries,
		ViewOwnAuditLog,
	},
	auth.RoleSuperadmin: {
		ReadAllTenants,
		ManageTenantStatus,
		RecordPayments,
		ReadPlans,
		ViewAuditLog,
	},
}

// ForRole returns the permissions granted to role. Unknown roles get none.
func ForRole(role auth.Role) []Permission {
	return slices.Clone(rolePermissions[role])
}

// HasPermission checks if a permission exists in a slice of permissions
func HasPermission(permissions []Permission, target Permission) bool {
	return slices.Contains(permissions, target)
}

// HasAnyPermission checks if any of the target permissions exist in the permissions slice
func HasAnyPermission(permissions []Permission, targets ...Permission) bool {
	for _, t := range targets {
		if HasPermission(permissions, t) {
			return true
		}
	}
	return false
}
