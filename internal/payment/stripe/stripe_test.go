package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func signWebhookBody(secret string, timestamp int64, body []byte) string {
	payload := fmt.Sprintf("%d.%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func webhookHeaders(secret string, timestamp int64, body []byte) map[string]string {
	return map[string]string{
		"Stripe-Signature": fmt.Sprintf("t=%d,v1=%s", timestamp, signWebhookBody(secret, timestamp, body)),
	}
}

func TestVerifyAndParseWebhookCheckoutCompleted(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	now := time.Now()
	body := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"customer": "cus_9",
				"subscription": "sub_5",
				"amount_total": 149900,
				"currency": "inr",
				"client_reference_id": "7",
				"metadata": {"tenant_id": "7"}
			}
		}
	}`)

	result, err := VerifyAndParseWebhook(cfg, webhookHeaders("whsec_test", now.Unix(), body), body, now)
	if err != nil {
		t.Fatalf("verify webhook error: %v", err)
	}
	if result.EventID != "evt_1" || result.EventType != "checkout.session.completed" {
		t.Fatalf("unexpected event: %+v", result)
	}
	if result.TenantID != 7 {
		t.Fatalf("expected tenant 7, got %d", result.TenantID)
	}
	if result.SessionID != "cs_test_1" || result.StripeCustomerID != "cus_9" || result.SubscriptionID != "sub_5" {
		t.Fatalf("unexpected identifiers: %+v", result)
	}
	if result.AmountMinor != 149900 || result.Currency != "INR" {
		t.Fatalf("unexpected amount: %d %s", result.AmountMinor, result.Currency)
	}
}

func TestVerifyAndParseWebhookInvoiceAmountFallback(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	now := time.Now()
	body := []byte(`{
		"id": "evt_2",
		"type": "invoice.payment_failed",
		"data": {
			"object": {
				"id": "in_1",
				"subscription": "sub_5",
				"amount_paid": 0,
				"amount_due": 149900,
				"currency": "inr",
				"metadata": {"tenant_id": "7"}
			}
		}
	}`)

	result, err := VerifyAndParseWebhook(cfg, webhookHeaders("whsec_test", now.Unix(), body), body, now)
	if err != nil {
		t.Fatalf("verify webhook error: %v", err)
	}
	if result.AmountMinor != 149900 {
		t.Fatalf("expected amount_due fallback, got %d", result.AmountMinor)
	}
}

func TestVerifyAndParseWebhookTenantFromClientReference(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	now := time.Now()
	body := []byte(`{
		"id": "evt_3",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_2",
				"client_reference_id": "12",
				"currency": "inr"
			}
		}
	}`)

	result, err := VerifyAndParseWebhook(cfg, webhookHeaders("whsec_test", now.Unix(), body), body, now)
	if err != nil {
		t.Fatalf("verify webhook error: %v", err)
	}
	if result.TenantID != 12 {
		t.Fatalf("expected tenant 12, got %d", result.TenantID)
	}
}

func TestVerifyAndParseWebhookBadSignature(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	now := time.Now()
	body := []byte(`{"id":"evt_4","type":"checkout.session.completed","data":{"object":{"id":"cs"}}}`)

	headers := webhookHeaders("whsec_other", now.Unix(), body)
	if _, err := VerifyAndParseWebhook(cfg, headers, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid, got: %v", err)
	}
}

func TestVerifyAndParseWebhookMissingHeader(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	body := []byte(`{"id":"evt_5","type":"x","data":{"object":{}}}`)
	if _, err := VerifyAndParseWebhook(cfg, nil, body, time.Now()); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid, got: %v", err)
	}
}

func TestVerifyAndParseWebhookStaleTimestamp(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test", WebhookToleranceSeconds: 300}
	now := time.Now()
	body := []byte(`{"id":"evt_6","type":"checkout.session.completed","data":{"object":{"id":"cs"}}}`)

	stale := now.Add(-time.Hour).Unix()
	headers := webhookHeaders("whsec_test", stale, body)
	if _, err := VerifyAndParseWebhook(cfg, headers, body, now); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected signature invalid for stale timestamp, got: %v", err)
	}
}

func TestVerifyAndParseWebhookHeaderCaseInsensitive(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	now := time.Now()
	body := []byte(`{"id":"evt_7","type":"customer.subscription.deleted","data":{"object":{"id":"sub_5"}}}`)

	headers := map[string]string{
		"stripe-signature": fmt.Sprintf("t=%d,v1=%s", now.Unix(), signWebhookBody("whsec_test", now.Unix(), body)),
	}
	result, err := VerifyAndParseWebhook(cfg, headers, body, now)
	if err != nil {
		t.Fatalf("verify webhook error: %v", err)
	}
	if result.SubscriptionID != "sub_5" {
		t.Fatalf("expected subscription id from object, got %q", result.SubscriptionID)
	}
}

func TestParseSignatureHeaderRejectsMalformed(t *testing.T) {
	for _, header := range []string{
		"",
		"t=abc,v1=deadbeef",
		"v1=deadbeef",
		"t=123",
	} {
		if _, _, err := parseSignatureHeader(header); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		SecretKey:     "sk_test",
		WebhookSecret: "whsec_test",
		SuccessURL:    "https://example.com/ok",
		CancelURL:     "https://example.com/cancel",
	}
	if err := ValidateConfig(valid); err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}

	missing := *valid
	missing.WebhookSecret = " "
	if err := ValidateConfig(&missing); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid, got: %v", err)
	}
	if err := ValidateConfig(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected config invalid for nil, got: %v", err)
	}
}

func TestReadInt64Variants(t *testing.T) {
	raw := map[string]interface{}{
		"f":   float64(42),
		"s":   "43",
		"bad": "x",
	}
	if got := readInt64(raw, "f"); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := readInt64(raw, "s"); got != 43 {
		t.Fatalf("expected 43, got %d", got)
	}
	if got := readInt64(raw, "bad"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := readInt64(raw, "missing"); got != 0 {
		t.Fatalf("expected 0 for missing key, got %d", got)
	}
}

func TestGetHeaderValueTrims(t *testing.T) {
	headers := map[string]string{" Stripe-Signature ": "  value  "}
	if got := getHeaderValue(headers, "Stripe-Signature"); got != "value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := getHeaderValue(headers, strings.ToUpper("stripe-signature")); got != "value" {
		t.Fatalf("expected case insensitive lookup, got %q", got)
	}
}
