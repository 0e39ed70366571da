package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CustomerAuthService customer signup, login and guest account claiming
type CustomerAuthService struct {
	cfg          *config.Config
	customerRepo repository.CustomerRepository
	otpService   *OTPService
}

// NewCustomerAuthService creates a customer auth service
func NewCustomerAuthService(cfg *config.Config, customerRepo repository.CustomerRepository, otpService *OTPService) *CustomerAuthService {
	return &CustomerAuthService{
		cfg:          cfg,
		customerRepo: customerRepo,
		otpService:   otpService,
	}
}

// CustomerClaims session token claims for a customer
type CustomerClaims struct {
	CustomerID uint `json:"customer_id"`
	TenantID   uint `json:"tenant_id"`
	jwt.RegisteredClaims
}

// SignupInput customer self registration
type SignupInput struct {
	TenantID uint
	Name     string
	Email    string
	Phone    string
	Password string
}

// Signup registers a customer within a store
func (s *CustomerAuthService) Signup(input SignupInput) (*models.Customer, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrEmailInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGuestNameRequired
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.GetByTenantAndEmail(input.TenantID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.GuestProvisioned {
			return nil, ErrAccountNotClaimable
		}
		return nil, ErrCustomerExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &models.Customer{
		TenantID:     input.TenantID,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Login verifies credentials and issues a session token
func (s *CustomerAuthService) Login(tenantID uint, email, password string) (*models.Customer, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	customer, err := s.customerRepo.GetByTenantAndEmail(tenantID, normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if customer == nil || customer.GuestProvisioned {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(customer)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, expiresAt, nil
}

// RequestClaim sends a claim code to a guest-provisioned customer
func (s *CustomerAuthService) RequestClaim(ctx context.Context, tenantID uint, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrEmailInvalid
	}
	customer, err := s.customerRepo.GetByTenantAndEmail(tenantID, normalized)
	if err != nil {
		return err
	}
	if customer == nil || !customer.GuestProvisioned {
		return ErrAccountNotClaimable
	}
	return s.otpService.Request(ctx, normalized, constants.OTPPurposeAccountClaim)
}

// ClaimAccount turns a guest-provisioned record into a full account
func (s *CustomerAuthService) ClaimAccount(tenantID uint, email, code, password string) (*models.Customer, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrEmailInvalid
	}
	customer, err := s.customerRepo.GetByTenantAndEmail(tenantID, normalized)
	if err != nil {
		return nil, err
	}
	if customer == nil || !customer.GuestProvisioned {
		return nil, ErrAccountNotClaimable
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, err
	}
	if err := s.otpService.Verify(normalized, constants.OTPPurposeAccountClaim, code); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer.PasswordHash = string(hash)
	customer.GuestProvisioned = false
	customer.UpdatedAt = time.Now()
	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GenerateJWT issues a customer session token
func (s *CustomerAuthService) GenerateJWT(customer *models.Customer) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.CustomerJWT.ExpireHours) * time.Hour)

	claims := CustomerClaims{
		CustomerID: customer.ID,
		TenantID:   customer.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.CustomerJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates a customer session token
func (s *CustomerAuthService) ParseJWT(tokenString string) (*CustomerClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &CustomerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.CustomerJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomerClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
