package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/nexpetcare/nexpetcare/internal/cache"
	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/logger"
	"github.com/nexpetcare/nexpetcare/internal/models"
	"github.com/nexpetcare/nexpetcare/internal/queue"
	"github.com/nexpetcare/nexpetcare/internal/repository"
)

// OTPService issues and verifies email verification codes
type OTPService struct {
	otpRepo     repository.OTPRepository
	queueClient *queue.Client
	cfg         *config.OTPConfig
}

// NewOTPService creates an OTP service
func NewOTPService(otpRepo repository.OTPRepository, queueClient *queue.Client, cfg *config.OTPConfig) *OTPService {
	return &OTPService{
		otpRepo:     otpRepo,
		queueClient: queueClient,
		cfg:         cfg,
	}
}

// Request issues a code for an email/purpose pair and queues its delivery.
// Repeat requests inside the resend window are rejected.
func (s *OTPService) Request(ctx context.Context, email, purpose string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrEmailInvalid
	}

	interval := s.resendInterval()
	if interval > 0 {
		key := fmt.Sprintf("otp:cooldown:%s:%s", purpose, normalized)
		ok, err := cache.SetNX(ctx, key, "1", interval)
		if err != nil {
			logger.Warnw("otp_cooldown_check_failed", "email", normalized, "error", err)
		} else if !ok {
			return ErrOTPThrottled
		}
	}

	code := randNumeric(s.codeLength())
	record := &models.OTPCode{
		Email:     normalized,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: time.Now().Add(s.expiry()),
		CreatedAt: time.Now(),
	}
	if err := s.otpRepo.Create(record); err != nil {
		return err
	}

	if s.queueClient == nil || !s.queueClient.Enabled() {
		return ErrQueueUnavailable
	}
	return s.queueClient.EnqueueOTPEmail(queue.OTPEmailPayload{
		Email:   normalized,
		Purpose: purpose,
		Code:    code,
	})
}

// Verify consumes the latest code for an email/purpose pair
func (s *OTPService) Verify(email, purpose, code string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return ErrEmailInvalid
	}

	record, err := s.otpRepo.GetLatest(normalized, purpose)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrOTPInvalid
	}
	if time.Now().After(record.ExpiresAt) {
		return ErrOTPExpired
	}
	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return ErrOTPInvalid
	}
	return s.otpRepo.MarkConsumed(record.ID, time.Now())
}

func (s *OTPService) expiry() time.Duration {
	if s.cfg != nil && s.cfg.ExpireMinutes > 0 {
		return time.Duration(s.cfg.ExpireMinutes) * time.Minute
	}
	return 5 * time.Minute
}

func (s *OTPService) resendInterval() time.Duration {
	if s.cfg != nil && s.cfg.SendIntervalSeconds > 0 {
		return time.Duration(s.cfg.SendIntervalSeconds) * time.Second
	}
	return 0
}

func (s *OTPService) codeLength() int {
	if s.cfg != nil && s.cfg.Length > 0 {
		return s.cfg.Length
	}
	return 6
}
