package public

import (
	"strconv"

	"github.com/nexpetcare/nexpetcare/internal/http/response"
	"github.com/nexpetcare/nexpetcare/internal/service"

	"github.com/gin-gonic/gin"
)

// PetRequest create/update payload for a customer's pet
type PetRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type"`
	Breed    string `json:"breed"`
	AgeYears int    `json:"age_years"`
	Gender   string `json:"gender"`
}

func (r PetRequest) toInput() service.PetInput {
	return service.PetInput{
		Name:     r.Name,
		Type:     r.Type,
		Breed:    r.Breed,
		AgeYears: r.AgeYears,
		Gender:   r.Gender,
	}
}

// ListPets returns the customer's pets
func (h *Handler) ListPets(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	pets, err := h.PetService.ListByCustomer(customerID)
	if err != nil {
		respondError(c, response.CodeInternal, "pets could not be loaded", err)
		return
	}
	response.Success(c, pets)
}

// CreatePet registers a pet under the customer
func (h *Handler) CreatePet(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	tenantID, ok := getCustomerTenantID(c)
	if !ok {
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	pet, err := h.PetService.Create(tenantID, customerID, req.toInput())
	if err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, pet)
}

// UpdatePet updates one of the customer's pets
func (h *Handler) UpdatePet(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	petID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "pet id is invalid", nil)
		return
	}

	var req PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	pet, err := h.PetService.Update(customerID, uint(petID), req.toInput())
	if err != nil {
		respondPetError(c, err)
		return
	}
	response.Success(c, pet)
}

// DeletePet removes one of the customer's pets
func (h *Handler) DeletePet(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}

	petID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "pet id is invalid", nil)
		return
	}

	if err := h.PetService.Delete(customerID, uint(petID)); err != nil {
		respondPetError(c, err)
		return
	}
	response.SuccessWithMsg(c, "pet deleted", nil)
}
