package repository

import (
	"errors"

	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// PetRepository pet data access interface
type PetRepository interface {
	GetByID(id uint) (*models.Pet, error)
	GetByIDAndCustomer(id, customerID uint) (*models.Pet, error)
	ListByCustomer(customerID uint) ([]models.Pet, error)
	Create(pet *models.Pet) error
	Update(pet *models.Pet) error
	Delete(id, customerID uint) error
	WithTx(tx *gorm.DB) *GormPetRepository
}

// GormPetRepository GORM implementation
type GormPetRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a pet repository
func NewPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

// WithTx binds a transaction
func (r *GormPetRepository) WithTx(tx *gorm.DB) *GormPetRepository {
	if tx == nil {
		return r
	}
	return &GormPetRepository{db: tx}
}

// GetByID fetches a pet by id
func (r *GormPetRepository) GetByID(id uint) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.First(&pet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

// GetByIDAndCustomer fetches a pet only if owned by the customer
func (r *GormPetRepository) GetByIDAndCustomer(id, customerID uint) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.Where("id = ? AND customer_id = ?", id, customerID).First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

// ListByCustomer lists a customer's pets
func (r *GormPetRepository) ListByCustomer(customerID uint) ([]models.Pet, error) {
	var pets []models.Pet
	if err := r.db.Where("customer_id = ?", customerID).
		Order("created_at desc").Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}

// Create creates a pet
func (r *GormPetRepository) Create(pet *models.Pet) error {
	return r.db.Create(pet).Error
}

// Update saves a pet
func (r *GormPetRepository) Update(pet *models.Pet) error {
	return r.db.Save(pet).Error
}

// Delete soft deletes a pet owned by the customer
func (r *GormPetRepository) Delete(id, customerID uint) error {
	return r.db.Where("id = ? AND customer_id = ?", id, customerID).Delete(&models.Pet{}).Error
}
