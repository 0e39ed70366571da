package service

import (
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// PetService pet records belonging to customers
type PetService struct {
	petRepo repository.PetRepository
}

// NewPetService creates a pet service
func NewPetService(petRepo repository.PetRepository) *PetService {
	return &PetService{petRepo: petRepo}
}

// PetInput pet details
type PetInput struct {
	Name     string
	Type     string
	Breed    string
	AgeYears int
	Gender   string
}

// Create registers a pet under a customer
func (s *PetService) Create(tenantID, customerID uint, input PetInput) (*models.Pet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPetNotFound
	}
	now := time.Now()
	pet := &models.Pet{
		TenantID:   tenantID,
		CustomerID: customerID,
		Name:       name,
		Type:       strings.TrimSpace(input.Type),
		Breed:      strings.TrimSpace(input.Breed),
		AgeYears:   input.AgeYears,
		Gender:     strings.TrimSpace(input.Gender),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.petRepo.Create(pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// Update edits a pet owned by the customer
func (s *PetService) Update(customerID, petID uint, input PetInput) (*models.Pet, error) {
	pet, err := s.petRepo.GetByIDAndCustomer(petID, customerID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		pet.Name = name
	}
	if t := strings.TrimSpace(input.Type); t != "" {
		pet.Type = t
	}
	if breed := strings.TrimSpace(input.Breed); breed != "" {
		pet.Breed = breed
	}
	if input.AgeYears > 0 {
		pet.AgeYears = input.AgeYears
	}
	if gender := strings.TrimSpace(input.Gender); gender != "" {
		pet.Gender = gender
	}
	pet.UpdatedAt = time.Now()
	if err := s.petRepo.Update(pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// Delete removes a pet owned by the customer
func (s *PetService) Delete(customerID, petID uint) error {
	pet, err := s.petRepo.GetByIDAndCustomer(petID, customerID)
	if err != nil {
		return err
	}
	if pet == nil {
		return ErrPetNotFound
	}
	return s.petRepo.Delete(pet.ID, customerID)
}

// ListByCustomer lists a customer's pets
func (s *PetService) ListByCustomer(customerID uint) ([]models.Pet, error) {
	return s.petRepo.ListByCustomer(customerID)
}
