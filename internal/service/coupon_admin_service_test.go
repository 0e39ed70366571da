package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponAdminTest(t *testing.T) (*CouponAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_admin_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}, &models.CustomerCoupon{}, &models.Customer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCouponAdminService(
		repository.NewCouponRepository(db),
		repository.NewCustomerCouponRepository(db),
		repository.NewCustomerRepository(db),
		nil,
	)
	return svc, db
}

func TestCouponCreateNormalizesCode(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "  welcome20 ",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create coupon error: %v", err)
	}
	if coupon.Code != "WELCOME20" {
		t.Fatalf("expected uppercase code, got %s", coupon.Code)
	}
	if !coupon.IsActive {
		t.Fatalf("expected new coupon active")
	}
}

func TestCouponCreateDuplicateCode(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)

	input := CreateCouponInput{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first create error: %v", err)
	}
	// Case-insensitive clash with the stored code
	input.Code = "welcome20"
	if _, err := svc.Create(input); !errors.Is(err, ErrCouponCodeTaken) {
		t.Fatalf("expected coupon code taken, got: %v", err)
	}
}

func TestCouponCreateInvalidDiscount(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)
	expires := time.Now().Add(24 * time.Hour)

	cases := []CreateCouponInput{
		{TenantID: 1, Code: "A", DiscountType: constants.DiscountTypePercentage, DiscountValue: 0, ExpiresAt: expires},
		{TenantID: 1, Code: "B", DiscountType: constants.DiscountTypePercentage, DiscountValue: 101, ExpiresAt: expires},
		{TenantID: 1, Code: "C", DiscountType: constants.DiscountTypeFixed, DiscountValue: -5, ExpiresAt: expires},
		{TenantID: 1, Code: "D", DiscountType: "bogus", DiscountValue: 10, ExpiresAt: expires},
	}
	for _, input := range cases {
		if _, err := svc.Create(input); !errors.Is(err, ErrCouponDiscountInvalid) {
			t.Fatalf("expected discount invalid for %s, got: %v", input.Code, err)
		}
	}
}

func TestCouponCreateRejectsPastExpiry(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)
	if _, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "OLD",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(-time.Hour),
	}); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected coupon expired, got: %v", err)
	}
}

func TestCouponDeactivateKeepsUsage(t *testing.T) {
	svc, db := setupCouponAdminTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create coupon error: %v", err)
	}
	usage := models.CustomerCoupon{CustomerID: 1, CouponID: coupon.ID, UsedAt: time.Now()}
	if err := db.Create(&usage).Error; err != nil {
		t.Fatalf("seed usage failed: %v", err)
	}

	deactivated, err := svc.Deactivate(1, coupon.ID)
	if err != nil {
		t.Fatalf("deactivate error: %v", err)
	}
	if deactivated.IsActive {
		t.Fatalf("expected coupon inactive")
	}

	var usageCount int64
	if err := db.Model(&models.CustomerCoupon{}).Where("coupon_id = ?", coupon.ID).Count(&usageCount).Error; err != nil {
		t.Fatalf("count usage failed: %v", err)
	}
	if usageCount != 1 {
		t.Fatalf("expected usage history preserved, got %d", usageCount)
	}
}

func TestCouponDeleteBlockedWhenUsed(t *testing.T) {
	svc, db := setupCouponAdminTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create coupon error: %v", err)
	}
	usage := models.CustomerCoupon{CustomerID: 1, CouponID: coupon.ID, UsedAt: time.Now()}
	if err := db.Create(&usage).Error; err != nil {
		t.Fatalf("seed usage failed: %v", err)
	}

	if err := svc.Delete(1, coupon.ID); !errors.Is(err, ErrCouponInUse) {
		t.Fatalf("expected coupon in use, got: %v", err)
	}
}

func TestCouponDeleteUnused(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "UNUSED",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: 50,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create coupon error: %v", err)
	}
	if err := svc.Delete(1, coupon.ID); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := svc.UsageCount(1, coupon.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected coupon not found after delete, got: %v", err)
	}
}

func TestCouponAdminWrongTenant(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create coupon error: %v", err)
	}
	if _, err := svc.Deactivate(2, coupon.ID); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected coupon not found for other tenant, got: %v", err)
	}
}

func TestCouponBlastWithoutQueue(t *testing.T) {
	svc, _ := setupCouponAdminTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create coupon error: %v", err)
	}
	if _, err := svc.Blast(1, coupon.ID); !errors.Is(err, ErrQueueUnavailable) {
		t.Fatalf("expected queue unavailable, got: %v", err)
	}
}
