package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:models_active_flag_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&Tenant{}, &Service{}, &Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

// Rows created with IsActive false must persist as false. A column default
// would silently flip them on insert.
func TestInactiveRowsPersistInactive(t *testing.T) {
	db := openTestDB(t)

	svc := Service{TenantID: 1, Slug: "nail-trim", Name: "Nail Trim", Price: 29900, IsActive: false}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("create service failed: %v", err)
	}
	var gotSvc Service
	if err := db.First(&gotSvc, svc.ID).Error; err != nil {
		t.Fatalf("reload service failed: %v", err)
	}
	if gotSvc.IsActive {
		t.Fatalf("expected service inactive after reload")
	}

	coupon := Coupon{TenantID: 1, Code: "PAUSED10", DiscountType: "percentage", DiscountValue: 10, ExpiresAt: time.Now().Add(time.Hour), IsActive: false}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	var gotCoupon Coupon
	if err := db.First(&gotCoupon, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if gotCoupon.IsActive {
		t.Fatalf("expected coupon inactive after reload")
	}

	tenant := Tenant{Name: "Paused Store", Slug: "paused-store", Email: "owner@paused.example", PasswordHash: "hash", IsActive: false}
	if err := db.Create(&tenant).Error; err != nil {
		t.Fatalf("create tenant failed: %v", err)
	}
	var gotTenant Tenant
	if err := db.First(&gotTenant, tenant.ID).Error; err != nil {
		t.Fatalf("reload tenant failed: %v", err)
	}
	if gotTenant.IsActive {
		t.Fatalf("expected tenant inactive after reload")
	}
}
