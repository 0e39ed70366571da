package authz

import (
	"fmt"

	"github.com/nexpetcare/nexpetcare/internal/constants"
)

// RoleSeed built-in role definition
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds returns the fixed role matrix for store teams.
// Staff handle day-to-day bookings, admins manage the catalog and
// marketing, root owns everything including the team and billing.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.StaffRoleStaff,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/dashboard", Action: "GET"},
				{Object: "/admin/bookings", Action: "GET"},
				{Object: "/admin/bookings/:id", Action: "GET"},
				{Object: "/admin/bookings/:id/status", Action: "PATCH"},
				{Object: "/admin/customers", Action: "GET"},
				{Object: "/admin/customers/:id", Action: "GET"},
				{Object: "/admin/services", Action: "GET"},
				{Object: "/admin/coupons", Action: "GET"},
				{Object: "/admin/coupons/:id/usage", Action: "GET"},
			},
		},
		{
			Role:     constants.StaffRoleAdmin,
			Inherits: []string{constants.StaffRoleStaff},
			Policies: []Policy{
				{Object: "/admin/services", Action: "*"},
				{Object: "/admin/services/:id", Action: "*"},
				{Object: "/admin/coupons", Action: "*"},
				{Object: "/admin/coupons/:id", Action: "*"},
				{Object: "/admin/coupons/:id/blast", Action: "POST"},
				{Object: "/admin/coupons/:id/deactivate", Action: "PATCH"},
				{Object: "/admin/payment-logs", Action: "GET"},
			},
		},
		{
			Role: constants.StaffRoleRoot,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles installs the role matrix, idempotently
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role := RoleSubject(seed.Role)

		for _, parent := range seed.Inherits {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, RoleSubject(parent))
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := normalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, normalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
