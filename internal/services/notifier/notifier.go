// Package notifier отправляет письма-квитанции по событиям о списаниях.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/smtp"
	"github.com/magabrotheeeer/nulltracker-premium/internal/models"
	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
)

// Service строит и отправляет письма.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(log *slog.Logger, transport smtp.TransportInterface) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// recipient возвращает адрес получателя или пустую строку, если адреса нет.
func recipient(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" || addr == paypal.NotAvailable {
		return ""
	}
	a, err := mail.ParseAddress(addr)
	if err != nil {
		return ""
	}
	return a.Address
}

// SendPaymentReceipt обрабатывает сообщение из очереди payments.captured.
func (s *Service) SendPaymentReceipt(_ context.Context, body []byte) error {
	const op = "notifier.Service.SendPaymentReceipt"

	var ev models.PaymentCapturedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}

	to := recipient(ev.PayerEmail)
	if to == "" {
		s.log.Warn("payment has no payer email, receipt skipped", sl.Op(op), slog.String("order_id", ev.OrderID))
		return nil
	}

	return s.sendEmail(to, "NullTracker Premium - Payment Receipt", PaymentReceiptText(ev))
}

// PaymentReceiptText возвращает текст квитанции по премиум-заказу.
func PaymentReceiptText(ev models.PaymentCapturedEvent) string {
	var b strings.Builder
	b.WriteString("Thank you for your purchase!\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", ev.OrderID)
	fmt.Fprintf(&b, "Amount Paid: %s %s\n", ev.Amount, ev.Currency)
	fmt.Fprintf(&b, "Billing: %s\n", ev.Billing)
	if ev.Discount != "" {
		fmt.Fprintf(&b, "Discount: %s\n", ev.Discount)
	}
	if ev.UserID != "" {
		fmt.Fprintf(&b, "User ID: %s\n", ev.UserID)
	}
	if ev.GuildID != "" {
		fmt.Fprintf(&b, "Guild ID: %s\n", ev.GuildID)
	}
	fmt.Fprintf(&b, "Date: %s\n", ev.CapturedAt.UTC().Format("2006-01-02 15:04 MST"))
	if len(ev.Services) > 0 {
		b.WriteString("\nServices:\n")
		for _, svc := range ev.Services {
			fmt.Fprintf(&b, "- %s\n", svc)
		}
	}
	b.WriteString("\nYour premium features will be activated shortly.")
	return b.String()
}

// SendDonationThanks обрабатывает сообщение из очереди donations.captured.
func (s *Service) SendDonationThanks(_ context.Context, body []byte) error {
	const op = "notifier.Service.SendDonationThanks"

	var ev models.DonationCapturedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}

	to := recipient(ev.PayerEmail)
	if to == "" {
		s.log.Warn("donation has no payer email, thanks skipped", sl.Op(op), slog.String("order_id", ev.OrderID))
		return nil
	}

	return s.sendEmail(to, "Thank you for supporting NullTracker", DonationThanksText(ev))
}

// DonationThanksText возвращает текст благодарности за пожертвование.
func DonationThanksText(ev models.DonationCapturedEvent) string {
	return fmt.Sprintf("Hi %s!\n\nWe received your donation of %s %s (order %s).\n"+
		"Every contribution keeps NullTracker running. Thank you!",
		ev.DonorName, ev.Amount, ev.Currency, ev.OrderID)
}

func (s *Service) sendEmail(to, subject, bodyText string) error {
	const op = "notifier.Service.sendEmail"
	log := s.log.With(sl.Op(op), slog.String("to", to))

	from := s.transport.From()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		log.Error("failed to connect to SMTP server", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Debug("failed to close SMTP client", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Rcpt(to); err != nil {
		log.Error("failed to set RCPT TO", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	wc, err := client.Data()
	if err != nil {
		log.Error("failed to get Data writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		log.Error("failed to write email body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		log.Error("failed to close Data writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Quit(); err != nil {
		log.Error("failed to quit SMTP client", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("email sent successfully")
	return nil
}
