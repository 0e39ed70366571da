package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/nexpetcare/nexpetcare/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	return svc
}

func mustEnforceStaff(t *testing.T, svc *Service, staffID uint, obj, act string) bool {
	t.Helper()
	allow, err := svc.EnforceStaff(staffID, obj, act)
	if err != nil {
		t.Fatalf("enforce %s %s failed: %v", act, obj, err)
	}
	return allow
}

func TestStaffRoleMatrix(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.AssignStaffRole(1, constants.StaffRoleStaff); err != nil {
		t.Fatalf("assign staff role failed: %v", err)
	}

	if !mustEnforceStaff(t, svc, 1, "/admin/bookings", "GET") {
		t.Fatalf("staff should list bookings")
	}
	if !mustEnforceStaff(t, svc, 1, "/admin/bookings/42/status", "PATCH") {
		t.Fatalf("staff should update booking status")
	}
	if !mustEnforceStaff(t, svc, 1, "/admin/customers/7", "GET") {
		t.Fatalf("staff should view customers")
	}
	if mustEnforceStaff(t, svc, 1, "/admin/services", "POST") {
		t.Fatalf("staff must not create services")
	}
	if mustEnforceStaff(t, svc, 1, "/admin/coupons", "POST") {
		t.Fatalf("staff must not create coupons")
	}
	if mustEnforceStaff(t, svc, 1, "/admin/team", "GET") {
		t.Fatalf("staff must not view the team")
	}
}

func TestAdminRoleInheritsStaff(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.AssignStaffRole(2, constants.StaffRoleAdmin); err != nil {
		t.Fatalf("assign admin role failed: %v", err)
	}

	// Inherited from staff
	if !mustEnforceStaff(t, svc, 2, "/admin/bookings", "GET") {
		t.Fatalf("admin should inherit booking access")
	}
	// Own grants
	if !mustEnforceStaff(t, svc, 2, "/admin/services", "POST") {
		t.Fatalf("admin should manage services")
	}
	if !mustEnforceStaff(t, svc, 2, "/admin/coupons/5", "DELETE") {
		t.Fatalf("admin should delete coupons")
	}
	if !mustEnforceStaff(t, svc, 2, "/admin/coupons/5/deactivate", "PATCH") {
		t.Fatalf("admin should deactivate coupons")
	}
	if !mustEnforceStaff(t, svc, 2, "/admin/coupons/5/blast", "POST") {
		t.Fatalf("admin should blast coupons")
	}
	// Root-only surfaces stay closed
	if mustEnforceStaff(t, svc, 2, "/admin/team", "POST") {
		t.Fatalf("admin must not manage the team")
	}
	if mustEnforceStaff(t, svc, 2, "/admin/billing/checkout", "POST") {
		t.Fatalf("admin must not start billing checkout")
	}
}

func TestRootRoleOwnsEverything(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.AssignStaffRole(3, constants.StaffRoleRoot); err != nil {
		t.Fatalf("assign root role failed: %v", err)
	}

	for _, probe := range []struct {
		obj string
		act string
	}{
		{"/admin/bookings", "GET"},
		{"/admin/services", "POST"},
		{"/admin/team", "POST"},
		{"/admin/team/9", "DELETE"},
		{"/admin/billing/checkout", "POST"},
		{"/admin/payment-logs", "GET"},
	} {
		if !mustEnforceStaff(t, svc, 3, probe.obj, probe.act) {
			t.Fatalf("root should access %s %s", probe.act, probe.obj)
		}
	}
}

func TestAssignStaffRoleReplacesBinding(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.AssignStaffRole(4, constants.StaffRoleAdmin); err != nil {
		t.Fatalf("assign admin role failed: %v", err)
	}
	if !mustEnforceStaff(t, svc, 4, "/admin/services", "POST") {
		t.Fatalf("admin should manage services")
	}

	if err := svc.AssignStaffRole(4, constants.StaffRoleStaff); err != nil {
		t.Fatalf("downgrade role failed: %v", err)
	}
	if mustEnforceStaff(t, svc, 4, "/admin/services", "POST") {
		t.Fatalf("downgraded staff must lose service management")
	}
	if !mustEnforceStaff(t, svc, 4, "/admin/bookings", "GET") {
		t.Fatalf("downgraded staff keeps booking access")
	}
}

func TestRemoveStaffDropsAccess(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.AssignStaffRole(5, constants.StaffRoleStaff); err != nil {
		t.Fatalf("assign staff role failed: %v", err)
	}
	if err := svc.RemoveStaff(5); err != nil {
		t.Fatalf("remove staff failed: %v", err)
	}
	if mustEnforceStaff(t, svc, 5, "/admin/bookings", "GET") {
		t.Fatalf("removed staff must have no access")
	}
}

func TestUnboundStaffDenied(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if mustEnforceStaff(t, svc, 99, "/admin/bookings", "GET") {
		t.Fatalf("unbound staff must be denied")
	}
}
