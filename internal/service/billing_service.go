package service

import (
	"context"
	"strings"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/payment/stripe"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// BillingService tenant subscription billing through Stripe
type BillingService struct {
	cfg            *config.StripeConfig
	tenantRepo     repository.TenantRepository
	paymentLogRepo repository.PaymentLogRepository
}

// NewBillingService creates a billing service
func NewBillingService(cfg *config.StripeConfig, tenantRepo repository.TenantRepository, paymentLogRepo repository.PaymentLogRepository) *BillingService {
	return &BillingService{
		cfg:            cfg,
		tenantRepo:     tenantRepo,
		paymentLogRepo: paymentLogRepo,
	}
}

// Enabled reports whether Stripe billing is configured
func (s *BillingService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// StartCheckout creates a subscription checkout session for a store
func (s *BillingService) StartCheckout(ctx context.Context, tenantID uint) (string, error) {
	if !s.Enabled() {
		return "", ErrPaymentProvider
	}
	tenant, err := s.tenantRepo.GetByID(tenantID)
	if err != nil {
		return "", err
	}
	if tenant == nil {
		return "", ErrStoreNotFound
	}
	if tenant.SubscriptionStatus == constants.SubscriptionStatusActive {
		return "", ErrPaymentProvider
	}

	result, err := stripe.CreateSubscription(ctx, s.stripeConfig(), stripe.CreateSubscriptionInput{
		TenantID:      tenant.ID,
		CustomerEmail: tenant.Email,
		PriceID:       s.cfg.MonthlyPriceID,
	})
	if err != nil {
		logger.Errorw("billing_checkout_create_failed",
			"tenant_id", tenant.ID,
			"error", err,
		)
		return "", ErrPaymentProvider
	}
	return result.URL, nil
}

// HandleWebhook verifies a Stripe event and applies it to the tenant's
// subscription. Events already seen are ignored.
func (s *BillingService) HandleWebhook(headers map[string]string, body []byte) error {
	if !s.Enabled() {
		return ErrPaymentProvider
	}
	event, err := stripe.VerifyAndParseWebhook(s.stripeConfig(), headers, body, time.Now())
	if err != nil {
		return err
	}
	if event.EventID != "" {
		seen, err := s.paymentLogRepo.GetByReference(event.EventID)
		if err != nil {
			return err
		}
		if seen != nil {
			return nil
		}
	}

	switch event.EventType {
	case "checkout.session.completed":
		return s.applySubscriptionEvent(event, constants.SubscriptionStatusActive, constants.PaymentLogStatusSucceeded)
	case "invoice.paid":
		return s.applySubscriptionEvent(event, constants.SubscriptionStatusActive, constants.PaymentLogStatusSucceeded)
	case "invoice.payment_failed":
		return s.applySubscriptionEvent(event, constants.SubscriptionStatusPastDue, constants.PaymentLogStatusFailed)
	case "customer.subscription.deleted":
		return s.applySubscriptionEvent(event, constants.SubscriptionStatusCanceled, "")
	default:
		logger.Debugw("billing_webhook_ignored", "event_type", event.EventType, "event_id", event.EventID)
		return nil
	}
}

func (s *BillingService) applySubscriptionEvent(event *stripe.WebhookResult, subscriptionStatus, logStatus string) error {
	tenant, err := s.resolveTenant(event)
	if err != nil {
		return err
	}
	if tenant == nil {
		logger.Warnw("billing_webhook_tenant_unresolved",
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
		return nil
	}

	tenant.SubscriptionStatus = subscriptionStatus
	if event.StripeCustomerID != "" {
		tenant.StripeCustomerID = event.StripeCustomerID
	}
	tenant.UpdatedAt = time.Now()
	if err := s.tenantRepo.Update(tenant); err != nil {
		return err
	}

	if logStatus != "" && event.EventID != "" {
		entry := &models.PaymentLog{
			TenantID:    tenant.ID,
			Provider:    "stripe",
			Reference:   event.EventID,
			Amount:      models.Paise(event.AmountMinor),
			Currency:    defaultCurrency(event.Currency),
			Status:      logStatus,
			Description: event.EventType,
			CreatedAt:   time.Now(),
		}
		if err := s.paymentLogRepo.Create(entry); err != nil {
			return err
		}
	}

	logger.Infow("billing_subscription_updated",
		"tenant_id", tenant.ID,
		"status", subscriptionStatus,
		"event_type", event.EventType,
	)
	return nil
}

func (s *BillingService) resolveTenant(event *stripe.WebhookResult) (*models.Tenant, error) {
	if event.TenantID > 0 {
		return s.tenantRepo.GetByID(event.TenantID)
	}
	if event.StripeCustomerID != "" {
		return s.tenantRepo.GetByStripeCustomerID(event.StripeCustomerID)
	}
	return nil, nil
}

func (s *BillingService) stripeConfig() *stripe.Config {
	return &stripe.Config{
		SecretKey:     s.cfg.SecretKey,
		WebhookSecret: s.cfg.WebhookSecret,
		SuccessURL:    s.cfg.SuccessURL,
		CancelURL:     s.cfg.CancelURL,
	}
}

func defaultCurrency(currency string) string {
	if strings.TrimSpace(currency) == "" {
		return "INR"
	}
	return currency
}
