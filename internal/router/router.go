package router

import (
	"fmt"
	"strings"

	"github.com/nexpetcare/nexpetcare/internal/cache"
	"github.com/nexpetcare/nexpetcare/internal/config"
	adminhandlers "github.com/nexpetcare/nexpetcare/internal/http/handlers/admin"
	publichandlers "github.com/nexpetcare/nexpetcare/internal/http/handlers/public"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires all routes and middleware
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "npc"
	}
	redisClient := cache.Client()
	customerLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:customer_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts",
	}
	signupCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:signup_code", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many code requests",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Platform onboarding and webhooks
		platform := apiV1.Group("/platform")
		{
			platform.GET("/captcha/image", publicHandler.GetImageCaptcha)
			platform.POST("/signup/request-code", RateLimitMiddleware(redisClient, signupCodeRule, KeyByIPAndJSONField("email")), publicHandler.RequestTenantSignup)
			platform.POST("/signup", publicHandler.CompleteTenantSignup)
			platform.POST("/webhooks/stripe", publicHandler.StripeWebhook)
		}

		// Storefront, slug scoped
		store := apiV1.Group("/store/:slug")
		{
			store.GET("", publicHandler.GetStorefront)
			store.GET("/services", publicHandler.ListStoreServices)
			store.GET("/services/:id", publicHandler.GetStoreService)
			store.POST("/quote", publicHandler.QuoteBooking)
			store.POST("/bookings", publicHandler.CreateGuestBooking)
			store.POST("/auth/signup", publicHandler.CustomerSignup)
			store.POST("/auth/login", RateLimitMiddleware(redisClient, customerLoginRule, KeyByIPAndJSONField("email")), publicHandler.CustomerLogin)
			store.POST("/auth/claim/request-code", RateLimitMiddleware(redisClient, signupCodeRule, KeyByIPAndJSONField("email")), publicHandler.RequestAccountClaim)
			store.POST("/auth/claim", publicHandler.ClaimAccount)
		}

		// Customer area, JWT protected
		customer := apiV1.Group("/customer")
		customer.Use(CustomerJWTAuthMiddleware(cfg.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			customer.GET("/me", publicHandler.GetProfile)
			customer.GET("/pets", publicHandler.ListPets)
			customer.POST("/pets", publicHandler.CreatePet)
			customer.PUT("/pets/:id", publicHandler.UpdatePet)
			customer.DELETE("/pets/:id", publicHandler.DeletePet)
			customer.POST("/bookings", publicHandler.CreateBooking)
			customer.GET("/bookings", publicHandler.ListMyBookings)
			customer.GET("/bookings/:id", publicHandler.GetMyBooking)
		}

		// Staff admin area
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIPAndJSONField("email")), adminHandler.StaffLogin)

			authorized := admin.Use(StaffJWTAuthMiddleware(cfg.StaffJWT.SecretKey, c.StaffRepo), StaffRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetStaffProfile)
				authorized.GET("/dashboard", adminHandler.GetDashboardOverview)

				authorized.GET("/bookings", adminHandler.ListBookings)
				authorized.GET("/bookings/:id", adminHandler.GetBooking)
				authorized.PATCH("/bookings/:id/status", adminHandler.UpdateBookingStatus)

				authorized.GET("/customers", adminHandler.ListCustomers)
				authorized.GET("/customers/:id", adminHandler.GetCustomer)

				authorized.GET("/services", adminHandler.ListServices)
				authorized.POST("/services", adminHandler.CreateService)
				authorized.PUT("/services/:id", adminHandler.UpdateService)
				authorized.DELETE("/services/:id", adminHandler.DeleteService)

				authorized.GET("/coupons", adminHandler.ListCoupons)
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.PATCH("/coupons/:id/deactivate", adminHandler.DeactivateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
				authorized.GET("/coupons/:id/usage", adminHandler.GetCouponUsage)
				authorized.POST("/coupons/:id/blast", adminHandler.BlastCoupon)

				authorized.GET("/team", adminHandler.ListTeam)
				authorized.POST("/team", adminHandler.CreateStaff)
				authorized.PUT("/team/:id", adminHandler.UpdateStaff)
				authorized.DELETE("/team/:id", adminHandler.DeleteStaff)

				authorized.POST("/billing/checkout", adminHandler.StartSubscriptionCheckout)
				authorized.GET("/payment-logs", adminHandler.ListPaymentLogs)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
