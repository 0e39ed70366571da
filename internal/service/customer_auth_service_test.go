package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupCustomerAuthTest(t *testing.T) (*CustomerAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:customer_auth_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.OTPCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		CustomerJWT: config.JWTConfig{
			SecretKey:   "customer-auth-test-secret-key-0123456789",
			ExpireHours: 24,
		},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8},
		},
	}
	otpRepo := repository.NewOTPRepository(db)
	otpService := NewOTPService(otpRepo, nil, &config.OTPConfig{ExpireMinutes: 5, Length: 6})
	return NewCustomerAuthService(cfg, repository.NewCustomerRepository(db), otpService), db
}

func seedClaimCode(t *testing.T, db *gorm.DB, email, code string) {
	t.Helper()
	record := models.OTPCode{
		Email:     email,
		Purpose:   constants.OTPPurposeAccountClaim,
		Code:      code,
		ExpiresAt: time.Now().Add(5 * time.Minute),
		CreatedAt: time.Now(),
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed otp code failed: %v", err)
	}
}

func TestCustomerSignupAndLogin(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)

	customer, err := svc.Signup(SignupInput{
		TenantID: 1,
		Name:     "Asha",
		Email:    "Asha@Example.com",
		Password: "strongpass1",
	})
	if err != nil {
		t.Fatalf("signup error: %v", err)
	}
	if customer.Email != "asha@example.com" {
		t.Fatalf("expected normalized email, got %s", customer.Email)
	}

	loggedIn, token, expiresAt, err := svc.Login(1, "asha@example.com", "strongpass1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if loggedIn.ID != customer.ID || token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("unexpected login result")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if claims.CustomerID != customer.ID || claims.TenantID != 1 {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCustomerSignupDuplicateEmail(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)

	input := SignupInput{TenantID: 1, Name: "Asha", Email: "asha@example.com", Password: "strongpass1"}
	if _, err := svc.Signup(input); err != nil {
		t.Fatalf("first signup error: %v", err)
	}
	if _, err := svc.Signup(input); !errors.Is(err, ErrCustomerExists) {
		t.Fatalf("expected customer exists, got: %v", err)
	}
}

func TestCustomerSignupWeakPassword(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	if _, err := svc.Signup(SignupInput{
		TenantID: 1,
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "short",
	}); !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected password too weak, got: %v", err)
	}
}

func TestCustomerSignupBlockedByGuestRecord(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	guest := models.Customer{
		TenantID:         1,
		Email:            "guest@example.com",
		Name:             "Guest",
		PasswordHash:     "hash",
		GuestProvisioned: true,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("create guest failed: %v", err)
	}

	if _, err := svc.Signup(SignupInput{
		TenantID: 1,
		Name:     "Guest",
		Email:    "guest@example.com",
		Password: "strongpass1",
	}); !errors.Is(err, ErrAccountNotClaimable) {
		t.Fatalf("expected account not claimable, got: %v", err)
	}
}

func TestCustomerLoginRejectsGuest(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("strongpass1"), bcrypt.DefaultCost)
	guest := models.Customer{
		TenantID:         1,
		Email:            "guest@example.com",
		Name:             "Guest",
		PasswordHash:     string(hash),
		GuestProvisioned: true,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("create guest failed: %v", err)
	}

	if _, _, _, err := svc.Login(1, "guest@example.com", "strongpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
}

func TestClaimAccount(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	guest := models.Customer{
		TenantID:         1,
		Email:            "guest@example.com",
		Name:             "Guest",
		PasswordHash:     "unusable",
		GuestProvisioned: true,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("create guest failed: %v", err)
	}
	seedClaimCode(t, db, "guest@example.com", "482913")

	claimed, err := svc.ClaimAccount(1, "guest@example.com", "482913", "strongpass1")
	if err != nil {
		t.Fatalf("claim error: %v", err)
	}
	if claimed.GuestProvisioned {
		t.Fatalf("expected guest flag cleared")
	}

	// The claimed account can log in with the new password
	if _, _, _, err := svc.Login(1, "guest@example.com", "strongpass1"); err != nil {
		t.Fatalf("login after claim error: %v", err)
	}

	// A consumed code cannot be replayed
	if _, err := svc.ClaimAccount(1, "guest@example.com", "482913", "anotherpass1"); !errors.Is(err, ErrAccountNotClaimable) {
		t.Fatalf("expected account not claimable after claim, got: %v", err)
	}
}

func TestClaimAccountWrongCode(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	guest := models.Customer{
		TenantID:         1,
		Email:            "guest@example.com",
		Name:             "Guest",
		PasswordHash:     "unusable",
		GuestProvisioned: true,
	}
	if err := db.Create(&guest).Error; err != nil {
		t.Fatalf("create guest failed: %v", err)
	}
	seedClaimCode(t, db, "guest@example.com", "482913")

	if _, err := svc.ClaimAccount(1, "guest@example.com", "000000", "strongpass1"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected otp invalid, got: %v", err)
	}
}

func TestClaimAccountRejectsRegisteredCustomer(t *testing.T) {
	svc, _ := setupCustomerAuthTest(t)
	if _, err := svc.Signup(SignupInput{
		TenantID: 1,
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "strongpass1",
	}); err != nil {
		t.Fatalf("signup error: %v", err)
	}

	if _, err := svc.ClaimAccount(1, "asha@example.com", "482913", "strongpass1"); !errors.Is(err, ErrAccountNotClaimable) {
		t.Fatalf("expected account not claimable, got: %v", err)
	}
}

func TestOTPVerifyExpiredCode(t *testing.T) {
	svc, db := setupCustomerAuthTest(t)
	record := models.OTPCode{
		Email:     "guest@example.com",
		Purpose:   constants.OTPPurposeAccountClaim,
		Code:      "482913",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-10 * time.Minute),
	}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("seed otp code failed: %v", err)
	}

	if err := svc.otpService.Verify("guest@example.com", constants.OTPPurposeAccountClaim, "482913"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected otp expired, got: %v", err)
	}
}
