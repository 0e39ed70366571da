package service

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	"github.com/nexpetcare/nexpetcare/internal/config"
	"github.com/nexpetcare/nexpetcare/internal/constants"
	"github.com/nexpetcare/nexpetcare/internal/models"
)

// EmailService sends transactional and marketing email over SMTP
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates an email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// BookingEmailInput booking email content
type BookingEmailInput struct {
	StoreName      string
	BookingNo      string
	ServiceName    string
	PetName        string
	BookingDate    string
	OriginalAmount models.Paise
	DiscountAmount models.Paise
	TotalAmount    models.Paise
}

// SendBookingConfirmation notifies the customer that a booking was placed
func (s *EmailService) SendBookingConfirmation(toEmail string, input BookingEmailInput) error {
	subject := fmt.Sprintf("Booking %s received - %s", input.BookingNo, input.StoreName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\nYour booking at %s has been received.\n\n", input.StoreName)
	fmt.Fprintf(&b, "Booking no: %s\nService: %s\nPet: %s\nDate: %s\n\n", input.BookingNo, input.ServiceName, input.PetName, input.BookingDate)
	fmt.Fprintf(&b, "Price: Rs. %s\n", input.OriginalAmount.String())
	if input.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount: Rs. %s\n", input.DiscountAmount.String())
	}
	fmt.Fprintf(&b, "Total: Rs. %s\n\nWe will confirm your slot shortly.\n", input.TotalAmount.String())
	return s.sendTextEmail(toEmail, subject, b.String())
}

// SendBookingStatusEmail notifies the customer of a status change
func (s *EmailService) SendBookingStatusEmail(toEmail string, input BookingEmailInput, status string) error {
	label := statusLabel(status)
	subject := fmt.Sprintf("Booking %s %s - %s", input.BookingNo, label, input.StoreName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\nYour booking %s at %s is now %s.\n\n", input.BookingNo, input.StoreName, label)
	fmt.Fprintf(&b, "Service: %s\nPet: %s\nDate: %s\nTotal: Rs. %s\n", input.ServiceName, input.PetName, input.BookingDate, input.TotalAmount.String())
	if status == constants.BookingStatusCanceled {
		b.WriteString("\nIf you did not expect this, please contact the store.\n")
	}
	return s.sendTextEmail(toEmail, subject, b.String())
}

// SendBookingReminder reminds the customer of an upcoming visit
func (s *EmailService) SendBookingReminder(toEmail string, input BookingEmailInput) error {
	subject := fmt.Sprintf("Reminder: %s visit on %s", input.PetName, input.BookingDate)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\nA reminder that %s has a %s appointment at %s on %s.\n\n", input.PetName, input.ServiceName, input.StoreName, input.BookingDate)
	fmt.Fprintf(&b, "Booking no: %s\n\nSee you soon!\n", input.BookingNo)
	return s.sendTextEmail(toEmail, subject, b.String())
}

// CouponOfferEmailInput coupon blast content
type CouponOfferEmailInput struct {
	StoreName   string
	Code        string
	Description string
	ExpiresAt   string
}

// SendCouponOffer sends one marketing coupon email
func (s *EmailService) SendCouponOffer(toEmail string, input CouponOfferEmailInput) error {
	subject := fmt.Sprintf("A treat from %s: %s", input.StoreName, input.Code)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n%s has a new offer for you.\n\nCode: %s\n", input.StoreName, input.Code)
	if strings.TrimSpace(input.Description) != "" {
		fmt.Fprintf(&b, "%s\n", input.Description)
	}
	fmt.Fprintf(&b, "Valid until: %s\n\nUse it on your next booking.\n", input.ExpiresAt)
	return s.sendTextEmail(toEmail, subject, b.String())
}

// ServiceAnnounceEmailInput service announcement content
type ServiceAnnounceEmailInput struct {
	StoreName   string
	ServiceName string
	Description string
	Price       models.Paise
}

// SendServiceAnnouncement sends one new-service announcement email
func (s *EmailService) SendServiceAnnouncement(toEmail string, input ServiceAnnounceEmailInput) error {
	subject := fmt.Sprintf("New at %s: %s", input.StoreName, input.ServiceName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hi,\n\n%s now offers %s.\n", input.StoreName, input.ServiceName)
	if strings.TrimSpace(input.Description) != "" {
		fmt.Fprintf(&b, "\n%s\n", input.Description)
	}
	fmt.Fprintf(&b, "\nPrice: Rs. %s\n\nBook a slot any time.\n", input.Price.String())
	return s.sendTextEmail(toEmail, subject, b.String())
}

// SendVerificationCode delivers an email verification code
func (s *EmailService) SendVerificationCode(toEmail, code, purpose string) error {
	subject := "Your verification code"
	action := "verify your email"
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case constants.OTPPurposeTenantSignup:
		subject = "NexPetCare signup code"
		action = "finish creating your store"
	case constants.OTPPurposeAccountClaim:
		subject = "Claim your account"
		action = "claim your customer account"
	}
	body := fmt.Sprintf("Your verification code is: %s\n\nUse it to %s. Do not share it with anyone.", code, action)
	return s.sendTextEmail(toEmail, subject, body)
}

func statusLabel(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case constants.BookingStatusConfirmed:
		return "confirmed"
	case constants.BookingStatusCompleted:
		return "completed"
	case constants.BookingStatusCanceled:
		return "canceled"
	default:
		return status
	}
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailNotConfigured
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrEmailInvalid
	}

	from := buildFromAddress(s.cfg.From, s.cfg.FromName)
	msg := buildEmailMessage(from, toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" || s.cfg.Password != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if s.cfg.UseSSL {
		return sendMailWithSSL(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	if s.cfg.UseTLS {
		return sendMailWithStartTLS(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
	}
	return sendMailPlain(addr, auth, s.cfg.Host, s.cfg.From, []string{toEmail}, []byte(msg))
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

func buildEmailMessage(from, to, subject, body string) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", subject)))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	return buf.String()
}

func sendMailWithSSL(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailWithStartTLS(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return err
	}

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendMailPlain(addr string, auth smtp.Auth, host, from string, to []string, msg []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
	}
	return sendSMTPData(client, from, to, msg)
}

func sendSMTPData(client *smtp.Client, from string, to []string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
