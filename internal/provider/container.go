package provider

import (
	"github.com/nexpetcare/nexpetcare/internal/authz"
	"github.com/nexpetcare/nexpetcare/internal/cache"
	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/queue"
	"github.com/nexpetcare/nexpetcare/internal/repository"
	"github.com/nexpetcare/nexpetcare/internal/service"
)

// Container wires repositories and services for the application.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	TenantRepo         repository.TenantRepository
	StaffRepo          repository.StaffRepository
	CustomerRepo       repository.CustomerRepository
	PetRepo            repository.PetRepository
	ServiceRepo        repository.ServiceRepository
	CouponRepo         repository.CouponRepository
	CustomerCouponRepo repository.CustomerCouponRepository
	BookingRepo        repository.BookingRepository
	PaymentLogRepo     repository.PaymentLogRepository
	OTPRepo            repository.OTPRepository
	DashboardRepo      repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	OTPService          *service.OTPService
	StaffAuthService    *service.StaffAuthService
	StaffService        *service.StaffService
	CustomerAuthService *service.CustomerAuthService
	CustomerService     *service.CustomerService
	PetService          *service.PetService
	TenantService       *service.TenantService
	CatalogService      *service.CatalogService
	CouponService       *service.CouponService
	CouponAdminService  *service.CouponAdminService
	BookingService      *service.BookingService
	BillingService      *service.BillingService
	DashboardService    *service.DashboardService
}

// NewContainer initializes the dependency container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.TenantRepo = repository.NewTenantRepository(db)
	c.StaffRepo = repository.NewStaffRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.PetRepo = repository.NewPetRepository(db)
	c.ServiceRepo = repository.NewServiceRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CustomerCouponRepo = repository.NewCustomerCouponRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
	c.PaymentLogRepo = repository.NewPaymentLogRepository(db)
	c.OTPRepo = repository.NewOTPRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.OTPService = service.NewOTPService(c.OTPRepo, c.QueueClient, &c.Config.OTP)
	c.StaffAuthService = service.NewStaffAuthService(c.Config, c.StaffRepo)
	c.StaffService = service.NewStaffService(c.StaffRepo, c.StaffAuthService)
	c.CustomerAuthService = service.NewCustomerAuthService(c.Config, c.CustomerRepo, c.OTPService)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.PetRepo, c.BookingRepo)
	c.PetService = service.NewPetService(c.PetRepo)
	c.TenantService = service.NewTenantService(c.Config, c.TenantRepo, c.StaffRepo, c.OTPService)
	c.CatalogService = service.NewCatalogService(c.ServiceRepo, c.CustomerRepo, c.QueueClient)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.CustomerCouponRepo, c.CustomerRepo, c.QueueClient)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.ServiceRepo, c.CustomerRepo, c.PetRepo, c.CustomerCouponRepo, c.CouponService, c.QueueClient, c.Config.Booking.ReminderLeadHours)
	c.BillingService = service.NewBillingService(&c.Config.Stripe, c.TenantRepo, c.PaymentLogRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.CustomerRepo, c.ServiceRepo)
}
