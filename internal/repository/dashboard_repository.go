package repository

import (
	"time"

	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"

	"gorm.io/gorm"
)

// ServiceBookingCount bookings per service for rankings
type ServiceBookingCount struct {
	ServiceID   uint   `json:"service_id"`
	ServiceName string `json:"service_name"`
	Count       int64  `json:"count"`
}

// DashboardRepository aggregate queries for the admin dashboard
type DashboardRepository interface {
	CountBookingsByStatus(tenantID uint, from, to time.Time) (map[string]int64, error)
	CompletedRevenue(tenantID uint, from, to time.Time) (models.Paise, error)
	CountNewCustomers(tenantID uint, from, to time.Time) (int64, error)
	TopServices(tenantID uint, from, to time.Time, limit int) ([]ServiceBookingCount, error)
}

// GormDashboardRepository GORM implementation
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a dashboard repository
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// CountBookingsByStatus counts bookings created in a window, per status
func (r *GormDashboardRepository) CountBookingsByStatus(tenantID uint, from, to time.Time) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS total").
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Total
	}
	return counts, nil
}

// CompletedRevenue sums the paid total of completed bookings in a window
func (r *GormDashboardRepository) CompletedRevenue(tenantID uint, from, to time.Time) (models.Paise, error) {
	var sum int64
	err := r.db.Model(&models.Booking{}).
		Where("tenant_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			tenantID, constants.BookingStatusCompleted, from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	return models.Paise(sum), nil
}

// CountNewCustomers counts customers first seen in a window
func (r *GormDashboardRepository) CountNewCustomers(tenantID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, from, to).
		Count(&count).Error
	return count, err
}

// TopServices ranks services by bookings created in a window
func (r *GormDashboardRepository) TopServices(tenantID uint, from, to time.Time, limit int) ([]ServiceBookingCount, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []ServiceBookingCount
	err := r.db.Model(&models.Booking{}).
		Select("bookings.service_id AS service_id, services.name AS service_name, COUNT(*) AS count").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.tenant_id = ? AND bookings.created_at >= ? AND bookings.created_at < ?", tenantID, from, to).
		Group("bookings.service_id, services.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
