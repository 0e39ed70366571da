package service

import (
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// StaffService team management within a store
type StaffService struct {
	staffRepo   repository.StaffRepository
	authService *StaffAuthService
}

// NewStaffService creates a staff service
func NewStaffService(staffRepo repository.StaffRepository, authService *StaffAuthService) *StaffService {
	return &StaffService{
		staffRepo:   staffRepo,
		authService: authService,
	}
}

// CreateStaffInput new team member details
type CreateStaffInput struct {
	TenantID uint
	Name     string
	Email    string
	Password string
	Role     string
}

// Create adds a team member to a store
func (s *StaffService) Create(input CreateStaffInput) (*models.StaffMember, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrEmailInvalid
	}
	role := strings.ToLower(strings.TrimSpace(input.Role))
	if !isAssignableRole(role) {
		return nil, ErrRoleInvalid
	}
	if err := s.authService.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.staffRepo.GetByTenantAndEmail(input.TenantID, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrStaffExists
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	staff := &models.StaffMember{
		TenantID:     input.TenantID,
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.staffRepo.Create(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// UpdateStaffInput mutable team member fields
type UpdateStaffInput struct {
	Name     string
	Role     string
	Password string
}

// Update edits a team member. Empty fields are left unchanged.
func (s *StaffService) Update(tenantID, staffID uint, input UpdateStaffInput) (*models.StaffMember, error) {
	staff, err := s.getTenantStaff(tenantID, staffID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		staff.Name = name
	}
	if role := strings.ToLower(strings.TrimSpace(input.Role)); role != "" {
		if !isAssignableRole(role) {
			return nil, ErrRoleInvalid
		}
		if staff.Role == constants.StaffRoleRoot {
			return nil, ErrRoleInvalid
		}
		staff.Role = role
	}
	if input.Password != "" {
		if err := s.authService.ValidatePassword(input.Password); err != nil {
			return nil, err
		}
		hash, err := s.authService.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		staff.PasswordHash = hash
	}
	staff.UpdatedAt = time.Now()
	if err := s.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete removes a team member. The acting staff member cannot remove
// themselves and the root account cannot be removed.
func (s *StaffService) Delete(tenantID, staffID, actorID uint) error {
	if staffID == actorID {
		return ErrStaffSelfDelete
	}
	staff, err := s.getTenantStaff(tenantID, staffID)
	if err != nil {
		return err
	}
	if staff.Role == constants.StaffRoleRoot {
		return ErrRoleInvalid
	}
	return s.staffRepo.Delete(tenantID, staff.ID)
}

// List lists the team of a store
func (s *StaffService) List(tenantID uint) ([]models.StaffMember, error) {
	return s.staffRepo.ListByTenant(tenantID)
}

func (s *StaffService) getTenantStaff(tenantID, staffID uint) (*models.StaffMember, error) {
	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.TenantID != tenantID {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func isAssignableRole(role string) bool {
	return role == constants.StaffRoleAdmin || role == constants.StaffRoleStaff
}
