package main

import (
	"log"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/authz"
	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo store with a root staff account, a service catalog and a
// couple of coupons. Intended for local development only.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to initialize authorization: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to bootstrap roles: %v", err)
	}

	now := time.Now()

	// Demo tenant
	tenant := models.Tenant{
		Name:               "Happy Paws Grooming",
		Slug:               "happy-paws",
		Email:              "owner@happypaws.example",
		Phone:              "+91-98765-43210",
		PasswordHash:       mustHash(stdLog, "happy-paws-demo"),
		SubscriptionStatus: constants.SubscriptionStatusActive,
		EmailVerifiedAt:    &now,
		IsActive:           true,
	}
	var existingTenant models.Tenant
	if err := models.DB.Where("slug = ?", tenant.Slug).First(&existingTenant).Error; err != nil {
		if err := models.DB.Create(&tenant).Error; err != nil {
			stdLog.Fatalf("Failed to create tenant: %v", err)
		}
		stdLog.Printf("Created tenant: %s", tenant.Slug)
	} else {
		tenant = existingTenant
		stdLog.Printf("Tenant already exists: %s", tenant.Slug)
	}

	// Root staff account
	staff := models.StaffMember{
		TenantID:     tenant.ID,
		Email:        "owner@happypaws.example",
		Name:         "Demo Owner",
		PasswordHash: mustHash(stdLog, "owner-password-demo"),
		Role:         constants.StaffRoleRoot,
	}
	var existingStaff models.StaffMember
	if err := models.DB.Where("tenant_id = ? AND email = ?", staff.TenantID, staff.Email).First(&existingStaff).Error; err != nil {
		if err := models.DB.Create(&staff).Error; err != nil {
			stdLog.Fatalf("Failed to create staff: %v", err)
		}
		stdLog.Printf("Created staff: %s", staff.Email)
	} else {
		staff = existingStaff
		stdLog.Printf("Staff already exists: %s", staff.Email)
	}
	if err := authzService.AssignStaffRole(staff.ID, staff.Role); err != nil {
		stdLog.Printf("Failed to assign staff role: %v", err)
	}

	// Service catalog
	services := []models.Service{
		{
			TenantID:        tenant.ID,
			Slug:            "full-grooming",
			Name:            "Full Grooming",
			Description:     "Bath, haircut, nail trim and ear cleaning.",
			Price:           models.Paise(149900),
			DurationMinutes: 90,
			IsActive:        true,
		},
		{
			TenantID:        tenant.ID,
			Slug:            "bath-and-brush",
			Name:            "Bath & Brush",
			Description:     "Shampoo bath with a thorough brushing.",
			Price:           models.Paise(79900),
			DurationMinutes: 45,
			IsActive:        true,
		},
		{
			TenantID:        tenant.ID,
			Slug:            "nail-trim",
			Name:            "Nail Trim",
			Description:     "Quick nail trim and paw check.",
			Price:           models.Paise(29900),
			DurationMinutes: 15,
			IsActive:        true,
		},
	}
	for _, svc := range services {
		var existing models.Service
		if err := models.DB.Where("tenant_id = ? AND slug = ?", svc.TenantID, svc.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&svc).Error; err != nil {
				stdLog.Printf("Failed to create service %s: %v", svc.Slug, err)
			} else {
				stdLog.Printf("Created service: %s", svc.Slug)
			}
		} else {
			stdLog.Printf("Service already exists: %s", svc.Slug)
		}
	}

	// Coupons
	coupons := []models.Coupon{
		{
			TenantID:      tenant.ID,
			Code:          "WELCOME20",
			Description:   "20% off for new customers",
			DiscountType:  constants.DiscountTypePercentage,
			DiscountValue: 20,
			ExpiresAt:     now.AddDate(0, 3, 0),
			IsActive:      true,
		},
		{
			TenantID:      tenant.ID,
			Code:          "FLAT100",
			Description:   "Flat 100 rupees off any booking",
			DiscountType:  constants.DiscountTypeFixed,
			DiscountValue: 100,
			ExpiresAt:     now.AddDate(0, 1, 0),
			MaxUses:       100,
			IsActive:      true,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("tenant_id = ? AND code = ?", coupon.TenantID, coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	stdLog.Printf("Seed complete. Store slug: %s, staff login: %s", tenant.Slug, staff.Email)
}

func mustHash(stdLog *log.Logger, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash password: %v", err)
	}
	return string(hash)
}
