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

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewCouponRepository(db)), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	t.Helper()
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return &coupon
}

func TestQuoteDiscountPercentage(t *testing.T) {
	got := QuoteDiscount(models.Paise(10000), constants.DiscountTypePercentage, 20)
	if got != models.Paise(2000) {
		t.Fatalf("expected 2000, got %d", got)
	}
}

func TestQuoteDiscountPercentageRoundsDown(t *testing.T) {
	// 33% of 101 paise is 33.33, discount floors to 33
	got := QuoteDiscount(models.Paise(101), constants.DiscountTypePercentage, 33)
	if got != models.Paise(33) {
		t.Fatalf("expected 33, got %d", got)
	}
}

func TestQuoteDiscountFixedCapsAtPrice(t *testing.T) {
	// Fixed value is in rupees, 10 rupees = 1000 paise on a 500 paise price
	got := QuoteDiscount(models.Paise(500), constants.DiscountTypeFixed, 10)
	if got != models.Paise(500) {
		t.Fatalf("expected 500, got %d", got)
	}
}

func TestQuoteDiscountFixed(t *testing.T) {
	got := QuoteDiscount(models.Paise(50000), constants.DiscountTypeFixed, 100)
	if got != models.Paise(10000) {
		t.Fatalf("expected 10000, got %d", got)
	}
}

func TestQuoteDiscountUnknownType(t *testing.T) {
	got := QuoteDiscount(models.Paise(10000), "bogus", 20)
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestResolveCouponValid(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	})

	coupon, err := svc.Resolve(1, " welcome20 ")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if coupon.Code != "WELCOME20" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
}

func TestResolveCouponUnknownCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	if _, err := svc.Resolve(1, "NOPE"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected coupon not found, got: %v", err)
	}
}

func TestResolveCouponEmptyCode(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)
	if _, err := svc.Resolve(1, "   "); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected coupon not found, got: %v", err)
	}
}

func TestResolveCouponWrongTenant(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      2,
		Code:          "OTHERSTORE",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 10,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	})

	if _, err := svc.Resolve(1, "OTHERSTORE"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected coupon not found, got: %v", err)
	}
}

func TestResolveCouponInactive(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "RETIRED",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: 50,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      false,
	})

	if _, err := svc.Resolve(1, "RETIRED"); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected coupon inactive, got: %v", err)
	}
}

func TestResolveCouponExpired(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "OLD",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(-time.Hour),
		IsActive:      true,
	})

	if _, err := svc.Resolve(1, "OLD"); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected coupon expired, got: %v", err)
	}
}
