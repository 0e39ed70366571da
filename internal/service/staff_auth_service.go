package service

import (
	"errors"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// StaffAuthService staff login and session tokens
type StaffAuthService struct {
	cfg       *config.Config
	staffRepo repository.StaffRepository
}

// NewStaffAuthService creates a staff auth service
func NewStaffAuthService(cfg *config.Config, staffRepo repository.StaffRepository) *StaffAuthService {
	return &StaffAuthService{
		cfg:       cfg,
		staffRepo: staffRepo,
	}
}

// StaffClaims session token claims for a staff member
type StaffClaims struct {
	StaffID  uint   `json:"staff_id"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// HashPassword hashes a password with bcrypt
func (s *StaffAuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its hash
func (s *StaffAuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks a password against the configured policy
func (s *StaffAuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// Login verifies staff credentials within a tenant and issues a token
func (s *StaffAuthService) Login(tenantID uint, email, password string) (*models.StaffMember, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	staff, err := s.staffRepo.GetByTenantAndEmail(tenantID, normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if staff == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := s.VerifyPassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(staff)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	staff.LastLoginAt = &now
	if err := s.staffRepo.Update(staff); err != nil {
		return nil, "", time.Time{}, err
	}
	return staff, token, expiresAt, nil
}

// GenerateJWT issues a staff session token
func (s *StaffAuthService) GenerateJWT(staff *models.StaffMember) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.StaffJWT.ExpireHours) * time.Hour)

	claims := StaffClaims{
		StaffID:  staff.ID,
		TenantID: staff.TenantID,
		Role:     staff.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.StaffJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT validates a staff session token
func (s *StaffAuthService) ParseJWT(tokenString string) (*StaffClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.StaffJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*StaffClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
