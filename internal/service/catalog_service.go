package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/queue"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// CatalogService manages the services a store offers
type CatalogService struct {
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	queueClient  *queue.Client
}

// NewCatalogService creates a catalog service
func NewCatalogService(serviceRepo repository.ServiceRepository, customerRepo repository.CustomerRepository, queueClient *queue.Client) *CatalogService {
	return &CatalogService{
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		queueClient:  queueClient,
	}
}

// ServiceInput service details for create and update
type ServiceInput struct {
	Name            string
	Description     string
	Price           models.Paise
	DurationMinutes int
	IsActive        *bool
}

// Create adds a service to a store's catalog. When announce is set the
// store's customers are emailed about it.
func (s *CatalogService) Create(tenantID uint, input ServiceInput, announce bool) (*models.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrServiceNotFound
	}
	if input.Price < 0 {
		return nil, ErrServiceNotFound
	}

	slug, err := s.uniqueServiceSlug(tenantID, name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	svc := &models.Service{
		TenantID:        tenantID,
		Name:            name,
		Slug:            slug,
		Description:     strings.TrimSpace(input.Description),
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	if err := s.serviceRepo.Create(svc); err != nil {
		return nil, err
	}

	if announce && svc.IsActive {
		s.enqueueAnnouncement(svc)
	}
	return svc, nil
}

// Update edits a service. Empty fields are left unchanged.
func (s *CatalogService) Update(tenantID, serviceID uint, input ServiceInput) (*models.Service, error) {
	svc, err := s.serviceRepo.GetByTenantAndID(tenantID, serviceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		svc.Name = name
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		svc.Description = desc
	}
	if input.Price > 0 {
		svc.Price = input.Price
	}
	if input.DurationMinutes > 0 {
		svc.DurationMinutes = input.DurationMinutes
	}
	if input.IsActive != nil {
		svc.IsActive = *input.IsActive
	}
	svc.UpdatedAt = time.Now()
	if err := s.serviceRepo.Update(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete removes a service from the catalog
func (s *CatalogService) Delete(tenantID, serviceID uint) error {
	svc, err := s.serviceRepo.GetByTenantAndID(tenantID, serviceID)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}
	return s.serviceRepo.Delete(svc.ID)
}

// List lists services for the admin panel
func (s *CatalogService) List(filter repository.ServiceListFilter) ([]models.Service, int64, error) {
	return s.serviceRepo.List(filter)
}

// ListActive lists bookable services for the storefront
func (s *CatalogService) ListActive(tenantID uint) ([]models.Service, error) {
	services, _, err := s.serviceRepo.List(repository.ServiceListFilter{
		TenantID:   tenantID,
		OnlyActive: true,
	})
	return services, err
}

// enqueueAnnouncement fans out one announcement task per customer.
// Enqueue failures are logged and skipped.
func (s *CatalogService) enqueueAnnouncement(svc *models.Service) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	customers, _, err := s.customerRepo.List(repository.CustomerListFilter{TenantID: svc.TenantID})
	if err != nil {
		logger.Errorw("service_announce_customer_list_failed",
			"tenant_id", svc.TenantID,
			"service_id", svc.ID,
			"error", err,
		)
		return
	}
	for _, customer := range customers {
		err := s.queueClient.EnqueueServiceAnnounceEmail(queue.ServiceAnnounceEmailPayload{
			TenantID:   svc.TenantID,
			ServiceID:  svc.ID,
			CustomerID: customer.ID,
		})
		if err != nil {
			logger.Errorw("service_announce_enqueue_failed",
				"tenant_id", svc.TenantID,
				"service_id", svc.ID,
				"customer_id", customer.ID,
				"error", err,
			)
		}
	}
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a display name into a url-safe slug
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "item"
	}
	return slug
}

func (s *CatalogService) uniqueServiceSlug(tenantID uint, name string) (string, error) {
	base := slugify(name)
	slug := base
	for i := 2; ; i++ {
		existing, err := s.serviceRepo.GetByTenantAndSlug(tenantID, slug)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return slug, nil
		}
		slug = base + "-" + randNumeric(4)
		if i > 5 {
			return slug, nil
		}
	}
}
