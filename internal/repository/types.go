package repository

import "time"

// BookingListFilter filters booking listings
type BookingListFilter struct {
	Page        int
	PageSize    int
	TenantID    uint
	CustomerID  uint
	Status      string
	BookingFrom *time.Time
	BookingTo   *time.Time
}

// CustomerListFilter filters customer listings
type CustomerListFilter struct {
	Page     int
	PageSize int
	TenantID uint
	Keyword  string
}

// CouponListFilter filters coupon listings
type CouponListFilter struct {
	Page     int
	PageSize int
	TenantID uint
	IsActive *bool
}

// ServiceListFilter filters service listings
type ServiceListFilter struct {
	Page       int
	PageSize   int
	TenantID   uint
	OnlyActive bool
}

// PaymentLogListFilter filters payment log listings
type PaymentLogListFilter struct {
	Page     int
	PageSize int
	TenantID uint
	Status   string
}
