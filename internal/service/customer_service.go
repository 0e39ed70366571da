package service

import (
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// CustomerService customer records for the admin panel
type CustomerService struct {
	customerRepo repository.CustomerRepository
	petRepo      repository.PetRepository
	bookingRepo  repository.BookingRepository
}

// NewCustomerService creates a customer service
func NewCustomerService(customerRepo repository.CustomerRepository, petRepo repository.PetRepository, bookingRepo repository.BookingRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		petRepo:      petRepo,
		bookingRepo:  bookingRepo,
	}
}

// List lists a store's customers with their aggregates
func (s *CustomerService) List(filter repository.CustomerListFilter) ([]models.Customer, int64, error) {
	return s.customerRepo.List(filter)
}

// CustomerDetail a customer with pets and recent bookings
type CustomerDetail struct {
	Customer models.Customer  `json:"customer"`
	Pets     []models.Pet     `json:"pets"`
	Bookings []models.Booking `json:"bookings"`
}

// Get fetches one customer's profile, pets and recent visit history
func (s *CustomerService) Get(tenantID, customerID uint) (*CustomerDetail, error) {
	customer, err := s.customerRepo.GetByTenantAndID(tenantID, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	pets, err := s.petRepo.ListByCustomer(customer.ID)
	if err != nil {
		return nil, err
	}
	bookings, _, err := s.bookingRepo.List(repository.BookingListFilter{
		TenantID:   tenantID,
		CustomerID: customer.ID,
		Page:       1,
		PageSize:   20,
	})
	if err != nil {
		return nil, err
	}

	return &CustomerDetail{
		Customer: *customer,
		Pets:     pets,
		Bookings: bookings,
	}, nil
}
