package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/cache"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService aggregates store metrics for the admin home page
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
	customerRepo  repository.CustomerRepository
	serviceRepo   repository.ServiceRepository
}

// NewDashboardService creates a dashboard service
func NewDashboardService(dashboardRepo repository.DashboardRepository, customerRepo repository.CustomerRepository, serviceRepo repository.ServiceRepository) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		customerRepo:  customerRepo,
		serviceRepo:   serviceRepo,
	}
}

// DashboardOverview store metrics for a time window
type DashboardOverview struct {
	Range             string                           `json:"range"`
	From              string                           `json:"from"`
	To                string                           `json:"to"`
	BookingsTotal     int64                            `json:"bookings_total"`
	BookingsPending   int64                            `json:"bookings_pending"`
	BookingsConfirmed int64                            `json:"bookings_confirmed"`
	BookingsCompleted int64                            `json:"bookings_completed"`
	BookingsCanceled  int64                            `json:"bookings_canceled"`
	Revenue           models.Paise                     `json:"revenue"`
	NewCustomers      int64                            `json:"new_customers"`
	CustomersTotal    int64                            `json:"customers_total"`
	ActiveServices    int64                            `json:"active_services"`
	TopServices       []repository.ServiceBookingCount `json:"top_services"`
}

// Overview computes dashboard metrics for a named range: today, 7d or 30d.
// Results are cached briefly since the admin home page polls.
func (s *DashboardService) Overview(ctx context.Context, tenantID uint, rangeName string) (*DashboardOverview, error) {
	rangeName = normalizeRange(rangeName)
	from, to := resolveRange(rangeName, time.Now())

	cacheKey := fmt.Sprintf("dashboard:overview:%d:%s", tenantID, rangeName)
	var cached DashboardOverview
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	counts, err := s.dashboardRepo.CountBookingsByStatus(tenantID, from, to)
	if err != nil {
		return nil, err
	}
	revenue, err := s.dashboardRepo.CompletedRevenue(tenantID, from, to)
	if err != nil {
		return nil, err
	}
	newCustomers, err := s.dashboardRepo.CountNewCustomers(tenantID, from, to)
	if err != nil {
		return nil, err
	}
	customersTotal, err := s.customerRepo.CountByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	activeServices, err := s.serviceRepo.CountActiveByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	topServices, err := s.dashboardRepo.TopServices(tenantID, from, to, 5)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	overview := &DashboardOverview{
		Range:             rangeName,
		From:              from.Format(time.RFC3339),
		To:                to.Format(time.RFC3339),
		BookingsTotal:     total,
		BookingsPending:   counts[constants.BookingStatusPending],
		BookingsConfirmed: counts[constants.BookingStatusConfirmed],
		BookingsCompleted: counts[constants.BookingStatusCompleted],
		BookingsCanceled:  counts[constants.BookingStatusCanceled],
		Revenue:           revenue,
		NewCustomers:      newCustomers,
		CustomersTotal:    customersTotal,
		ActiveServices:    activeServices,
		TopServices:       topServices,
	}

	_ = cache.SetJSON(ctx, cacheKey, overview, dashboardCacheTTL)
	return overview, nil
}

func normalizeRange(rangeName string) string {
	switch strings.ToLower(strings.TrimSpace(rangeName)) {
	case "today":
		return "today"
	case "30d":
		return "30d"
	default:
		return "7d"
	}
}

func resolveRange(rangeName string, now time.Time) (time.Time, time.Time) {
	end := now
	switch rangeName {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return start, end
	case "30d":
		return end.AddDate(0, 0, -30), end
	default:
		return end.AddDate(0, 0, -7), end
	}
}
