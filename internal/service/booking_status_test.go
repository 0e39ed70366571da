package service

import (
	"errors"
	"testing"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{constants.BookingStatusPending, constants.BookingStatusConfirmed, true},
		{constants.BookingStatusPending, constants.BookingStatusCanceled, true},
		{constants.BookingStatusPending, constants.BookingStatusCompleted, false},
		{constants.BookingStatusConfirmed, constants.BookingStatusCompleted, true},
		{constants.BookingStatusConfirmed, constants.BookingStatusCanceled, true},
		{constants.BookingStatusConfirmed, constants.BookingStatusPending, false},
		{constants.BookingStatusCompleted, constants.BookingStatusCanceled, false},
		{constants.BookingStatusCompleted, constants.BookingStatusConfirmed, false},
		{constants.BookingStatusCanceled, constants.BookingStatusPending, false},
		{constants.BookingStatusCanceled, constants.BookingStatusConfirmed, false},
		{"", constants.BookingStatusConfirmed, false},
		{constants.BookingStatusPending, "bogus", false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanTransitionNormalizesInput(t *testing.T) {
	if !CanTransition(" Pending ", "CONFIRMED") {
		t.Fatalf("expected case and whitespace insensitive match")
	}
}

func TestTransitionStatusPersists(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	booking, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	updated, err := svc.TransitionStatus(1, booking.ID, constants.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("transition error: %v", err)
	}
	if updated.Status != constants.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	var stored models.Booking
	if err := db.First(&stored, booking.ID).Error; err != nil {
		t.Fatalf("reload booking failed: %v", err)
	}
	if stored.Status != constants.BookingStatusConfirmed {
		t.Fatalf("expected persisted confirmed, got %s", stored.Status)
	}
}

func TestTransitionStatusRejectsInvalidMove(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	booking, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if _, err := svc.TransitionStatus(1, booking.ID, constants.BookingStatusCompleted); !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("expected invalid status change, got: %v", err)
	}

	var stored models.Booking
	if err := db.First(&stored, booking.ID).Error; err != nil {
		t.Fatalf("reload booking failed: %v", err)
	}
	if stored.Status != constants.BookingStatusPending {
		t.Fatalf("expected status unchanged, got %s", stored.Status)
	}
}

func TestTransitionStatusTerminalIsFinal(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	booking, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if _, err := svc.TransitionStatus(1, booking.ID, constants.BookingStatusCanceled); err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if _, err := svc.TransitionStatus(1, booking.ID, constants.BookingStatusConfirmed); !errors.Is(err, ErrInvalidStatusChange) {
		t.Fatalf("expected invalid status change, got: %v", err)
	}
}

func TestTransitionStatusUnknownBooking(t *testing.T) {
	svc, _ := setupBookingServiceTest(t)
	if _, err := svc.TransitionStatus(1, 999, constants.BookingStatusConfirmed); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected booking not found, got: %v", err)
	}
}

func TestTransitionStatusWrongTenant(t *testing.T) {
	svc, db := setupBookingServiceTest(t)
	service := createTestService(t, db, 1, models.Paise(10000), true)
	customer := createTestCustomer(t, db, 1, "owner@example.com")
	pet := createTestPet(t, db, 1, customer.ID)

	booking, err := svc.CreateBooking(CreateBookingInput{
		TenantID:    1,
		CustomerID:  customer.ID,
		ServiceID:   service.ID,
		PetID:       pet.ID,
		BookingDate: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create booking error: %v", err)
	}

	if _, err := svc.TransitionStatus(2, booking.ID, constants.BookingStatusConfirmed); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected booking not found for other tenant, got: %v", err)
	}
}
