package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/queue"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BookingService creates bookings and drives the booking status machine
type BookingService struct {
	bookingRepo        repository.BookingRepository
	serviceRepo        repository.ServiceRepository
	customerRepo       repository.CustomerRepository
	petRepo            repository.PetRepository
	customerCouponRepo repository.CustomerCouponRepository
	couponService      *CouponService
	queueClient        *queue.Client
	reminderLeadHours  int
}

// NewBookingService creates a booking service
func NewBookingService(bookingRepo repository.BookingRepository, serviceRepo repository.ServiceRepository, customerRepo repository.CustomerRepository, petRepo repository.PetRepository, customerCouponRepo repository.CustomerCouponRepository, couponService *CouponService, queueClient *queue.Client, reminderLeadHours int) *BookingService {
	return &BookingService{
		bookingRepo:        bookingRepo,
		serviceRepo:        serviceRepo,
		customerRepo:       customerRepo,
		petRepo:            petRepo,
		customerCouponRepo: customerCouponRepo,
		couponService:      couponService,
		queueClient:        queueClient,
		reminderLeadHours:  reminderLeadHours,
	}
}

// CreateBookingInput creates a booking for an authenticated customer.
// TenantID and CustomerID come from the verified session token.
type CreateBookingInput struct {
	TenantID    uint
	CustomerID  uint
	ServiceID   uint
	PetID       uint
	BookingDate time.Time
	CouponCode  string
	Notes       string
}

// GuestPetInput pet details supplied on a guest booking
type GuestPetInput struct {
	Name     string
	Type     string
	Breed    string
	AgeYears int
	Gender   string
}

// CreateGuestBookingInput creates a booking from the public storefront.
// The customer record is provisioned on first contact.
type CreateGuestBookingInput struct {
	TenantID    uint
	Email       string
	Name        string
	Phone       string
	ServiceID   uint
	Pet         GuestPetInput
	BookingDate time.Time
	CouponCode  string
	Notes       string
}

type bookingCreateParams struct {
	TenantID    uint
	CustomerID  uint
	PetID       uint
	GuestEmail  string
	GuestName   string
	GuestPhone  string
	GuestPet    GuestPetInput
	IsGuest     bool
	ServiceID   uint
	BookingDate time.Time
	CouponCode  string
	Notes       string
}

// CreateBooking creates a booking for an authenticated customer
func (s *BookingService) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	if input.CustomerID == 0 {
		return nil, ErrCustomerNotFound
	}
	return s.createBooking(bookingCreateParams{
		TenantID:    input.TenantID,
		CustomerID:  input.CustomerID,
		PetID:       input.PetID,
		ServiceID:   input.ServiceID,
		BookingDate: input.BookingDate,
		CouponCode:  input.CouponCode,
		Notes:       input.Notes,
	})
}

// CreateGuestBooking creates a booking for a walk-in visitor, provisioning
// the customer and pet records when they do not exist yet
func (s *BookingService) CreateGuestBooking(input CreateGuestBookingInput) (*models.Booking, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, ErrGuestEmailRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGuestNameRequired
	}
	if strings.TrimSpace(input.Pet.Name) == "" {
		return nil, ErrPetNotFound
	}
	return s.createBooking(bookingCreateParams{
		TenantID:    input.TenantID,
		GuestEmail:  email,
		GuestName:   name,
		GuestPhone:  strings.TrimSpace(input.Phone),
		GuestPet:    input.Pet,
		IsGuest:     true,
		ServiceID:   input.ServiceID,
		BookingDate: input.BookingDate,
		CouponCode:  input.CouponCode,
		Notes:       input.Notes,
	})
}

// BookingQuote price breakdown for a booking before it is placed
type BookingQuote struct {
	ServiceID      uint         `json:"service_id"`
	ServiceName    string       `json:"service_name"`
	OriginalAmount models.Paise `json:"original_amount"`
	DiscountAmount models.Paise `json:"discount_amount"`
	TotalAmount    models.Paise `json:"total_amount"`
	CouponCode     string       `json:"coupon_code,omitempty"`
}

// QuoteBooking computes the price breakdown without writing anything
func (s *BookingService) QuoteBooking(tenantID, serviceID uint, couponCode string) (*BookingQuote, error) {
	svc, err := s.resolveService(tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	quote := &BookingQuote{
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		OriginalAmount: svc.Price,
		TotalAmount:    svc.Price,
	}
	if strings.TrimSpace(couponCode) == "" {
		return quote, nil
	}
	coupon, err := s.couponService.Resolve(tenantID, couponCode)
	if err != nil {
		return nil, err
	}
	discount := QuoteDiscount(svc.Price, coupon.DiscountType, coupon.DiscountValue)
	total := svc.Price - discount
	if total < 0 {
		total = 0
	}
	quote.DiscountAmount = discount
	quote.TotalAmount = total
	quote.CouponCode = coupon.Code
	return quote, nil
}

func (s *BookingService) createBooking(input bookingCreateParams) (*models.Booking, error) {
	if input.BookingDate.IsZero() || input.BookingDate.Before(time.Now()) {
		return nil, ErrBookingDateInvalid
	}

	svc, err := s.resolveService(input.TenantID, input.ServiceID)
	if err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	if strings.TrimSpace(input.CouponCode) != "" {
		coupon, err = s.couponService.Resolve(input.TenantID, input.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	discount := models.Paise(0)
	if coupon != nil {
		discount = QuoteDiscount(svc.Price, coupon.DiscountType, coupon.DiscountValue)
	}
	total := svc.Price - discount
	if total < 0 {
		total = 0
	}

	if !input.IsGuest {
		customer, err := s.customerRepo.GetByTenantAndID(input.TenantID, input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, ErrCustomerNotFound
		}
		pet, err := s.petRepo.GetByIDAndCustomer(input.PetID, input.CustomerID)
		if err != nil {
			return nil, err
		}
		if pet == nil {
			return nil, ErrPetNotOwned
		}
	}

	now := time.Now()
	booking := &models.Booking{
		BookingNo:      generateBookingNo(),
		TenantID:       input.TenantID,
		ServiceID:      svc.ID,
		Status:         constants.BookingStatusPending,
		BookingDate:    input.BookingDate,
		OriginalAmount: svc.Price,
		DiscountAmount: discount,
		TotalAmount:    total,
		Notes:          strings.TrimSpace(input.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if coupon != nil {
		booking.CouponID = &coupon.ID
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		customerRepo := s.customerRepo.WithTx(tx)
		petRepo := s.petRepo.WithTx(tx)
		bookingRepo := s.bookingRepo.WithTx(tx)

		customerID := input.CustomerID
		petID := input.PetID
		if input.IsGuest {
			customer, err := customerRepo.GetByTenantAndEmail(input.TenantID, input.GuestEmail)
			if err != nil {
				return err
			}
			if customer == nil {
				customer, err = provisionGuestCustomer(input.TenantID, input.GuestEmail, input.GuestName, input.GuestPhone)
				if err != nil {
					return err
				}
				if err := customerRepo.Create(customer); err != nil {
					return err
				}
			}
			customerID = customer.ID

			pet := &models.Pet{
				TenantID:   input.TenantID,
				CustomerID: customer.ID,
				Name:       strings.TrimSpace(input.GuestPet.Name),
				Type:       strings.TrimSpace(input.GuestPet.Type),
				Breed:      strings.TrimSpace(input.GuestPet.Breed),
				AgeYears:   input.GuestPet.AgeYears,
				Gender:     strings.TrimSpace(input.GuestPet.Gender),
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := petRepo.Create(pet); err != nil {
				return err
			}
			petID = pet.ID
		}

		booking.CustomerID = customerID
		booking.PetID = petID
		if err := bookingRepo.Create(booking); err != nil {
			return err
		}

		if coupon != nil {
			usageRepo := s.customerCouponRepo.WithTx(tx)
			if err := usageRepo.Upsert(customerID, coupon.ID, now); err != nil {
				return err
			}
		}

		return customerRepo.ApplyBookingAggregates(customerID, total, now)
	})
	if err != nil {
		logger.Errorw("booking_create_failed",
			"tenant_id", input.TenantID,
			"service_id", input.ServiceID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrBookingCreateFailed, err)
	}

	s.enqueueBookingEmails(booking)

	full, err := s.bookingRepo.GetByTenantAndID(input.TenantID, booking.ID)
	if err == nil && full != nil {
		return full, nil
	}
	return booking, nil
}

// enqueueBookingEmails schedules the confirmation and reminder emails.
// Failures here never undo the booking.
func (s *BookingService) enqueueBookingEmails(booking *models.Booking) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	payload := queue.BookingEmailPayload{BookingID: booking.ID}
	if err := s.queueClient.EnqueueBookingConfirmation(payload); err != nil {
		logger.Errorw("booking_enqueue_confirmation_failed",
			"booking_id", booking.ID,
			"booking_no", booking.BookingNo,
			"error", err,
		)
	}
	delay := time.Until(booking.BookingDate.Add(-time.Duration(s.reminderLeadHours) * time.Hour))
	if delay <= 0 {
		return
	}
	if err := s.queueClient.EnqueueBookingReminder(payload, delay); err != nil {
		logger.Errorw("booking_enqueue_reminder_failed",
			"booking_id", booking.ID,
			"booking_no", booking.BookingNo,
			"error", err,
		)
	}
}

func (s *BookingService) resolveService(tenantID, serviceID uint) (*models.Service, error) {
	svc, err := s.serviceRepo.GetByTenantAndID(tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}
	return svc, nil
}

// provisionGuestCustomer builds a customer record with an unusable random
// credential. The customer can claim the account later via email code.
func provisionGuestCustomer(tenantID uint, email, name, phone string) (*models.Customer, error) {
	secret := randAlphanumeric(32)
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &models.Customer{
		TenantID:         tenantID,
		Name:             name,
		Email:            email,
		Phone:            phone,
		PasswordHash:     string(hash),
		GuestProvisioned: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "", ErrEmailInvalid
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrEmailInvalid
	}
	return normalized, nil
}

func generateBookingNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("NP%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randAlphanumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphanumeric))))
		if err != nil {
			b.WriteByte('x')
			continue
		}
		b.WriteByte(alphanumeric[n.Int64()])
	}
	return b.String()
}
