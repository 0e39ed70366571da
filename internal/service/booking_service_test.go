package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupBookingServiceTest(t *testing.T) (*BookingService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Tenant{},
		&models.Customer{},
		&models.Pet{},
		&models.Service{},
		&models.Coupon{},
		&models.CustomerCoupon{},
		&models.Booking{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	couponService := NewCouponService(repository.NewCouponRepository(db))
	svc := NewBookingService(
		repository.NewBookingRepository(db),
		repository.NewServiceRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewPetRepository(db),
		repository.NewCustomerCouponRepository(db),
		couponService,
		nil,
		24,
	)
	return svc, db
}

func createTestService(t *testing.T, db *gorm.DB, tenantID uint, price models.Paise, active bool) *models.Service {
	t.Helper()
	svc := models.Service{
		TenantID:        tenantID,
		Slug:            fmt.Sprintf("svc-%d", time.Now().UnixNano()),
		Name:            "Full Grooming",
		Price:           price,
		DurationMinutes: 60,
		IsActive:        active,
	}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("create service failed: %v", err)
	}
	return &svc
}

func createTestCustomer(t *testing.T, db *gorm.DB, tenantID uint, email string) *models.Customer {
	t.Helper()
	customer := models.Customer{
		TenantID:     tenantID,
		Email:        email,
		Name:         "Test Owner",
		PasswordHash: "hash",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	return &customer
}

func createTestPet(t *testing.T, db *gorm.DB, tenantID, customerID uint) *models.Pet {
	t.Helper()
	pet := models.Pet{
		TenantID:   tenantID,
		CustomerID: customerID,
		Name:       "Bruno",
		Type:       "dog",
		Breed:      "Labrador",
	}
	if err := db.Create(&pet).Error; err != nil {
		t.Fatalf("create pet failed: %v", err)
	}
	return &pet
}

func TestCreateBookingWithPercentageCoupon(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	})

	booking, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
		CouponCode:  "WELCOME20",
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}
	if booking.OriginalAmount != models.Paise(10000) {
		t.Fatalf("expected original 10000, got %d", booking.OriginalAmount)
	}
	if booking.DiscountAmount != models.Paise(2000) {
		t.Fatalf("expected discount 2000, got %d", booking.DiscountAmount)
	}
	if booking.TotalAmount != models.Paise(8000) {
		t.Fatalf("expected total 8000, got %d", booking.TotalAmount)
	}
	if booking.Status != constants.BookingStatusPending {
		t.Fatalf("expected pending status, got %s", booking.Status)
	}
	if booking.CouponID == nil {
		t.Fatalf("expected coupon id on booking")
	}
	if booking.BookingNo == "" {
		t.Fatalf("expected booking number")
	}

	var refreshed models.Customer
	if err := db.First(&refreshed, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if refreshed.BookingCount != 1 {
		t.Fatalf("expected booking count 1, got %d", refreshed.BookingCount)
	}
	if refreshed.TotalSpent != models.Paise(8000) {
		t.Fatalf("expected total spent 8000, got %d", refreshed.TotalSpent)
	}
	if refreshed.LastVisitAt == nil {
		t.Fatalf("expected last visit timestamp")
	}
	if refreshed.LastVisitAt.After(time.Now().Add(time.Minute)) {
		t.Fatalf("last visit should be the booking time, got %v", refreshed.LastVisitAt)
	}

	var usageCount int64
	if err := db.Model(&models.CustomerCoupon{}).Where("customer_id = ?", customer.ID).Count(&usageCount).Error; err != nil {
		t.Fatalf("count coupon usage failed: %v", err)
	}
	if usageCount != 1 {
		t.Fatalf("expected 1 usage row, got %d", usageCount)
	}
}

func TestCreateBookingFixedCouponNeverNegative(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(500), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "FLAT10",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: 10,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	})

	booking, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
		CouponCode:  "FLAT10",
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}
	if booking.DiscountAmount != models.Paise(500) {
		t.Fatalf("expected discount capped at 500, got %d", booking.DiscountAmount)
	}
	if booking.TotalAmount != 0 {
		t.Fatalf("expected zero total, got %d", booking.TotalAmount)
	}
}

func TestCreateBookingPetNotOwnedWritesNothing(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	other := createTestCustomer(t, db, 1, "other@example.com")
	strangersPet := createTestPet(t, db, 1, other.ID)

	_, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       strangersPet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if !errors.Is(err, ErrPetNotOwned) {
		t.Fatalf("expected pet not owned, got: %v", err)
	}

	var bookingCount int64
	if err := db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookingCount != 0 {
		t.Fatalf("expected no bookings, got %d", bookingCount)
	}

	var refreshed models.Customer
	if err := db.First(&refreshed, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if refreshed.BookingCount != 0 || refreshed.TotalSpent != 0 {
		t.Fatalf("expected untouched aggregates, got count=%d spent=%d", refreshed.BookingCount, refreshed.TotalSpent)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	_, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(-time.Hour),
	})
	if !errors.Is(err, ErrBookingDateInvalid) {
		t.Fatalf("expected booking date invalid, got: %v", err)
	}
}

func TestCreateBookingInactiveService(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), false)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	_, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if !errors.Is(err, ErrServiceInactive) {
		t.Fatalf("expected service inactive, got: %v", err)
	}
}

func TestCreateBookingExpiredCouponFailsWholeBooking(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "OLD",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(-time.Hour),
		IsActive:      true,
	})

	_, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
		CouponCode:  "OLD",
	})
	if !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected coupon expired, got: %v", err)
	}

	var bookingCount int64
	if err := db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookingCount != 0 {
		t.Fatalf("expected no bookings, got %d", bookingCount)
	}
}

func TestCreateBookingWriteFailureRollsBackEverything(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	})

	// Breaks the usage upsert so the transaction fails after the booking
	// row has already been written.
	if err := db.Migrator().DropTable(&models.CustomerCoupon{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	_, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
		CouponCode:  "WELCOME20",
	})
	if !errors.Is(err, ErrBookingCreateFailed) {
		t.Fatalf("expected booking create failed, got: %v", err)
	}

	var bookingCount int64
	if err := db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookingCount != 0 {
		t.Fatalf("expected no bookings, got %d", bookingCount)
	}

	var refreshed models.Customer
	if err := db.First(&refreshed, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if refreshed.BookingCount != 0 {
		t.Fatalf("expected booking count 0, got %d", refreshed.BookingCount)
	}
	if refreshed.TotalSpent != models.Paise(0) {
		t.Fatalf("expected total spent 0, got %d", refreshed.TotalSpent)
	}
	if refreshed.LastVisitAt != nil {
		t.Fatalf("expected no last visit, got %v", refreshed.LastVisitAt)
	}
}

func TestCreateBookingTwiceCreatesTwoBookings(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	input := CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	}
	first, err := svc.CreateBooking(input)
	if err != nil {
		t.Fatalf("first booking error: %v", err)
	}
	second, err := svc.CreateBooking(input)
	if err != nil {
		t.Fatalf("second booking error: %v", err)
	}
	if first.BookingNo == second.BookingNo {
		t.Fatalf("expected distinct booking numbers, both %s", first.BookingNo)
	}

	var refreshed models.Customer
	if err := db.First(&refreshed, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if refreshed.BookingCount != 2 {
		t.Fatalf("expected booking count 2, got %d", refreshed.BookingCount)
	}
	if refreshed.TotalSpent != models.Paise(20000) {
		t.Fatalf("expected total spent 20000, got %d", refreshed.TotalSpent)
	}
}

func TestCreateGuestBookingProvisionsCustomerAndPet(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)

	booking, err := svc.CreateGuestBooking(CreateGuestBookingInput{
		TenantID:  1,
		Email:     "Walkin@Example.COM",
		Name:      "Walk In",
		Phone:     "+91-90000-00000",
		ServiceID: service.ID,
		Pet: GuestPetInput{
			Name: "Momo",
			Type: "cat",
		},
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create guest booking error: %v", err)
	}

	var customer models.Customer
	if err := db.Where("tenant_id = ? AND email = ?", 1, "walkin@example.com").First(&customer).Error; err != nil {
		t.Fatalf("expected provisioned customer: %v", err)
	}
	if !customer.GuestProvisioned {
		t.Fatalf("expected guest provisioned flag")
	}
	if customer.PasswordHash == "" {
		t.Fatalf("expected an unusable password hash")
	}
	if booking.CustomerID != customer.ID {
		t.Fatalf("booking customer mismatch: %d != %d", booking.CustomerID, customer.ID)
	}

	var pet models.Pet
	if err := db.Where("customer_id = ?", customer.ID).First(&pet).Error; err != nil {
		t.Fatalf("expected provisioned pet: %v", err)
	}
	if pet.Name != "Momo" || booking.PetID != pet.ID {
		t.Fatalf("unexpected pet: %+v", pet)
	}
}

func TestCreateGuestBookingReusesExistingCustomer(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)

	input := CreateGuestBookingInput{
		TenantID:  1,
		Email:     "repeat@example.com",
		Name:      "Repeat Guest",
		ServiceID: service.ID,
		Pet: GuestPetInput{
			Name: "Momo",
			Type: "cat",
		},
		BookingDate: time.Now().Add(48 * time.Hour),
	}
	if _, err := svc.CreateGuestBooking(input); err != nil {
		t.Fatalf("first guest booking error: %v", err)
	}
	if _, err := svc.CreateGuestBooking(input); err != nil {
		t.Fatalf("second guest booking error: %v", err)
	}

	var customerCount int64
	if err := db.Model(&models.Customer{}).Where("email = ?", "repeat@example.com").Count(&customerCount).Error; err != nil {
		t.Fatalf("count customers failed: %v", err)
	}
	if customerCount != 1 {
		t.Fatalf("expected single customer, got %d", customerCount)
	}

	var refreshed models.Customer
	if err := db.Where("email = ?", "repeat@example.com").First(&refreshed).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if refreshed.BookingCount != 2 {
		t.Fatalf("expected booking count 2, got %d", refreshed.BookingCount)
	}
}

func TestCreateGuestBookingValidation(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)
	future := time.Now().Add(48 * time.Hour)

	if _, err := svc.CreateGuestBooking(CreateGuestBookingInput{
		TenantID:    1,
		Email:       "not-an-email",
		Name:        "Guest",
		ServiceID:   1,
		Pet:         GuestPetInput{Name: "Momo"},
		BookingDate: future,
	}); !errors.Is(err, ErrGuestEmailRequired) {
		t.Fatalf("expected guest email required, got: %v", err)
	}

	if _, err := svc.CreateGuestBooking(CreateGuestBookingInput{
		TenantID:    1,
		Email:       "guest@example.com",
		Name:        "  ",
		ServiceID:   1,
		Pet:         GuestPetInput{Name: "Momo"},
		BookingDate: future,
	}); !errors.Is(err, ErrGuestNameRequired) {
		t.Fatalf("expected guest name required, got: %v", err)
	}

	if _, err := svc.CreateGuestBooking(CreateGuestBookingInput{
		TenantID:    1,
		Email:       "guest@example.com",
		Name:        "Guest",
		ServiceID:   1,
		Pet:         GuestPetInput{Name: ""},
		BookingDate: future,
	}); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected pet not found, got: %v", err)
	}
}

func TestQuoteBookingWithCoupon(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	createTestCoupon(t, db, models.Coupon{
		TenantID:      1,
		Code:          "WELCOME20",
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: 20,
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		IsActive:      true,
	})

	quote, err := svc.QuoteBooking(1, service.ID, "WELCOME20")
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if quote.OriginalAmount != models.Paise(10000) || quote.DiscountAmount != models.Paise(2000) || quote.TotalAmount != models.Paise(8000) {
		t.Fatalf("unexpected quote: %+v", quote)
	}

	var bookingCount int64
	if err := db.Model(&models.Booking{}).Count(&bookingCount).Error; err != nil {
		t.Fatalf("count bookings failed: %v", err)
	}
	if bookingCount != 0 {
		t.Fatalf("quote must not create bookings, got %d", bookingCount)
	}
}

func TestQuoteBookingWithoutCoupon(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)

	quote, err := svc.QuoteBooking(1, service.ID, "")
	if err != nil {
		t.Fatalf("quote error: %v", err)
	}
	if quote.DiscountAmount != 0 || quote.TotalAmount != models.Paise(10000) {
		t.Fatalf("unexpected quote: %+v", quote)
	}
}
