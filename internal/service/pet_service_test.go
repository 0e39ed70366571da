package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPetServiceTest(t *testing.T) (*PetService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:pet_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Pet{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewPetService(repository.NewPetRepository(db)), db
}

func TestPetCreateAndList(t *testing.T) {
	svc, _ := setupPetServiceTest(t)

	pet, err := svc.Create(1, 7, PetInput{Name: "  Bruno ", Type: "dog", Breed: "Labrador", AgeYears: 3})
	if err != nil {
		t.Fatalf("create pet error: %v", err)
	}
	if pet.Name != "Bruno" {
		t.Fatalf("expected trimmed name, got %q", pet.Name)
	}

	pets, err := svc.ListByCustomer(7)
	if err != nil {
		t.Fatalf("list pets error: %v", err)
	}
	if len(pets) != 1 {
		t.Fatalf("expected 1 pet, got %d", len(pets))
	}
}

func TestPetDeleteRemovesOwnPet(t *testing.T) {
	svc, db := setupPetServiceTest(t)

	pet, err := svc.Create(1, 7, PetInput{Name: "Bruno", Type: "dog"})
	if err != nil {
		t.Fatalf("create pet error: %v", err)
	}

	if err := svc.Delete(7, pet.ID); err != nil {
		t.Fatalf("delete pet error: %v", err)
	}

	var count int64
	if err := db.Model(&models.Pet{}).Where("id = ?", pet.ID).Count(&count).Error; err != nil {
		t.Fatalf("count pets failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected pet removed, found %d", count)
	}
}

func TestPetDeleteRejectsOtherCustomersPet(t *testing.T) {
	svc, db := setupPetServiceTest(t)

	pet, err := svc.Create(1, 7, PetInput{Name: "Bruno", Type: "dog"})
	if err != nil {
		t.Fatalf("create pet error: %v", err)
	}

	if err := svc.Delete(8, pet.ID); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected pet not found, got: %v", err)
	}

	var count int64
	if err := db.Model(&models.Pet{}).Where("id = ?", pet.ID).Count(&count).Error; err != nil {
		t.Fatalf("count pets failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected pet untouched, found %d", count)
	}
}

func TestPetUpdateOwnership(t *testing.T) {
	svc, _ := setupPetServiceTest(t)

	pet, err := svc.Create(1, 7, PetInput{Name: "Bruno", Type: "dog", Breed: "Labrador"})
	if err != nil {
		t.Fatalf("create pet error: %v", err)
	}

	updated, err := svc.Update(7, pet.ID, PetInput{Breed: "Golden Retriever"})
	if err != nil {
		t.Fatalf("update pet error: %v", err)
	}
	if updated.Breed != "Golden Retriever" {
		t.Fatalf("expected breed updated, got %q", updated.Breed)
	}
	if updated.Name != "Bruno" {
		t.Fatalf("expected name kept, got %q", updated.Name)
	}

	if _, err := svc.Update(8, pet.ID, PetInput{Name: "Rex"}); !errors.Is(err, ErrPetNotFound) {
		t.Fatalf("expected pet not found, got: %v", err)
	}
}
