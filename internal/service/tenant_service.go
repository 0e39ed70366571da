package service

import (
	"context"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TenantService store onboarding and storefront resolution
type TenantService struct {
	cfg        *config.Config
	tenantRepo repository.TenantRepository
	staffRepo  repository.StaffRepository
	otpService *OTPService
}

// NewTenantService creates a tenant service
func NewTenantService(cfg *config.Config, tenantRepo repository.TenantRepository, staffRepo repository.StaffRepository, otpService *OTPService) *TenantService {
	return &TenantService{
		cfg:        cfg,
		tenantRepo: tenantRepo,
		staffRepo:  staffRepo,
		otpService: otpService,
	}
}

// RequestSignup sends a signup verification code to a new store owner
func (s *TenantService) RequestSignup(ctx context.Context, email string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrEmailInvalid
	}
	existing, err := s.tenantRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrTenantExists
	}
	return s.otpService.Request(ctx, normalized, constants.OTPPurposeTenantSignup)
}

// TenantSignupInput new store details
type TenantSignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Code     string
}

// CompleteSignup verifies the code and creates the store with its root
// staff account in one transaction
func (s *TenantService) CompleteSignup(input TenantSignupInput) (*models.Tenant, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrEmailInvalid
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrStoreNotFound
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.tenantRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrTenantExists
	}

	if err := s.otpService.Verify(email, constants.OTPPurposeTenantSignup, input.Code); err != nil {
		return nil, err
	}

	slug, err := s.uniqueTenantSlug(name)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	verifiedAt := now
	tenant := &models.Tenant{
		Name:               name,
		Slug:               slug,
		Email:              email,
		Phone:              strings.TrimSpace(input.Phone),
		PasswordHash:       string(hash),
		SubscriptionStatus: constants.SubscriptionStatusPending,
		EmailVerifiedAt:    &verifiedAt,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		tenantRepo := s.tenantRepo.WithTx(tx)
		if err := tenantRepo.Create(tenant); err != nil {
			return err
		}
		root := &models.StaffMember{
			TenantID:     tenant.ID,
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         constants.StaffRoleRoot,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(root).Error
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// ResolveStorefront resolves an active store by its public slug
func (s *TenantService) ResolveStorefront(slug string) (*models.Tenant, error) {
	trimmed := strings.ToLower(strings.TrimSpace(slug))
	if trimmed == "" {
		return nil, ErrStoreNotFound
	}
	tenant, err := s.tenantRepo.GetBySlug(trimmed)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrStoreNotFound
	}
	if !tenant.IsActive {
		return nil, ErrStoreInactive
	}
	return tenant, nil
}

// GetByID fetches a tenant
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrStoreNotFound
	}
	return tenant, nil
}

func (s *TenantService) uniqueTenantSlug(name string) (string, error) {
	base := slugify(name)
	slug := base
	for i := 0; i < 6; i++ {
		taken, err := s.tenantRepo.SlugExists(slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + randNumeric(4)
	}
	return "", ErrSlugUnavailable
}
