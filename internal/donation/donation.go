// Package donation - контроллер страницы пожертвований: заказ на выбранную сумму,
// списание и запись донора в список.
package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/nulltracker-premium/internal/donor"
	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/metrics"
	"github.com/magabrotheeeer/nulltracker-premium/internal/models"
	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
	"github.com/magabrotheeeer/nulltracker-premium/internal/rabbitmq"
)

var (
	// ErrInvalidAmount возвращается для суммы меньше или равной нулю.
	ErrInvalidAmount = errors.New("donation amount must be greater than zero")
	// ErrProvider оборачивает ошибки платёжной системы.
	ErrProvider = errors.New("payment provider error")
)

// Failed показывается при ошибке платёжной системы.
const Failed = "Donation failed. Please try again or contact support."

// displayDateLayout - формат даты в списке доноров (M/D/YYYY).
const displayDateLayout = "1/2/2006"

// Leaderboard - список доноров.
type Leaderboard interface {
	AddDonation(ctx context.Context, rec donor.Record)
	Public() []donor.PublicEntry
	Count() int
	Export(now time.Time) (*donor.Export, error)
}

// Repository сохраняет пожертвования.
type Repository interface {
	SaveDonation(ctx context.Context, d *models.Donation) error
}

// EventPublisher публикует события в брокер.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// DonorInput - данные формы донора.
type DonorInput struct {
	Name         string `json:"donor_name" validate:"max=100"`
	Email        string `json:"donor_email" validate:"omitempty,email"`
	Message      string `json:"donor_message" validate:"max=500"`
	ShowPublicly bool   `json:"show_publicly"`
}

// Order - созданный заказ на пожертвование.
type Order struct {
	OrderID    string              `json:"order_id"`
	ApproveURL string              `json:"approve_url,omitempty"`
	Request    paypal.OrderRequest `json:"request"`
}

// Service обрабатывает пожертвования.
type Service struct {
	log         *slog.Logger
	widget      paypal.Widget
	leaderboard Leaderboard
	repo        Repository
	events      EventPublisher
	metrics     *metrics.Metrics
	now         func() time.Time
}

// New создаёт сервис. repo и events могут быть nil.
func New(log *slog.Logger, widget paypal.Widget, leaderboard Leaderboard, repo Repository,
	events EventPublisher, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &Service{
		log:         log,
		widget:      widget,
		leaderboard: leaderboard,
		repo:        repo,
		events:      events,
		metrics:     m,
		now:         time.Now,
	}
}

// Description возвращает описание заказа на пожертвование.
func Description(amount decimal.Decimal) string {
	return fmt.Sprintf("Donation to NullTracker - $%s USD", paypal.FormatAmount(amount))
}

// OrderRequest собирает запрос на создание заказа.
func OrderRequest(amount decimal.Decimal) (paypal.OrderRequest, error) {
	if !amount.Round(2).IsPositive() {
		return paypal.OrderRequest{}, ErrInvalidAmount
	}
	return paypal.OrderRequest{
		Intent: paypal.IntentCapture,
		PurchaseUnits: []paypal.PurchaseUnit{{
			Amount:      paypal.Amount{CurrencyCode: paypal.CurrencyUSD, Value: paypal.FormatAmount(amount)},
			Description: Description(amount),
		}},
	}, nil
}

// CreateOrder создаёт заказ на сумму amount.
func (s *Service) CreateOrder(ctx context.Context, amount decimal.Decimal) (*Order, error) {
	const op = "donation.Service.CreateOrder"

	req, err := OrderRequest(amount)
	if err != nil {
		return nil, err
	}
	order, err := s.widget.CreateOrder(ctx, req)
	if err != nil {
		s.metrics.PaymentsFailed.WithLabelValues("donation_create").Inc()
		s.log.Error("failed to create donation order", sl.Op(op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
	}
	return &Order{OrderID: order.ID, ApproveURL: order.ApproveURL(), Request: req}, nil
}

// NewRecord собирает запись донора из результата списания и формы.
func NewRecord(res *paypal.CaptureResult, in DonorInput, now time.Time) donor.Record {
	name := strings.TrimSpace(in.Name)
	if name == "" || !in.ShowPublicly {
		name = donor.Anonymous
	}
	email := strings.TrimSpace(in.Email)

	payerEmail := res.PayerEmail()
	if payerEmail == paypal.NotAvailable && email != "" {
		payerEmail = email
	}

	id := res.PaymentID()
	if id == paypal.NotAvailable {
		id = uuid.NewString()
	}

	return donor.Record{
		ID:           id,
		PayerID:      res.PayerID(),
		PayerEmail:   payerEmail,
		Amount:       res.AmountDecimal(),
		Currency:     res.CurrencyCode(),
		DonorName:    name,
		DonorEmail:   email,
		DonorMessage: strings.TrimSpace(in.Message),
		ShowPublicly: in.ShowPublicly,
		Timestamp:    now.UTC(),
		Date:         now.UTC().Format(displayDateLayout),
	}
}

// Capture списывает пожертвование и добавляет донора в список.
// Сохранение в базу и публикация события выполняются по возможности.
func (s *Service) Capture(ctx context.Context, orderID string, in DonorInput) (*donor.Record, error) {
	const op = "donation.Service.Capture"
	log := s.log.With(sl.Op(op), slog.String("order_id", orderID))

	res, err := s.widget.CaptureOrder(ctx, orderID)
	if err != nil {
		s.metrics.PaymentsFailed.WithLabelValues("donation_capture").Inc()
		log.Error("failed to capture donation", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
	}

	rec := NewRecord(res, in, s.now())
	s.leaderboard.AddDonation(ctx, rec)

	s.metrics.Donations.Inc()
	s.metrics.DonationsAmount.Add(rec.Amount.InexactFloat64())
	log.Info("donation captured", slog.String("amount", rec.Amount.StringFixed(2)))

	if s.repo != nil {
		err := s.repo.SaveDonation(ctx, &models.Donation{
			OrderID:      orderID,
			PayerID:      rec.PayerID,
			PayerEmail:   rec.PayerEmail,
			Amount:       rec.Amount,
			Currency:     rec.Currency,
			DonorName:    rec.DonorName,
			DonorMessage: rec.DonorMessage,
			ShowPublicly: rec.ShowPublicly,
		})
		if err != nil {
			log.Error("failed to save donation", sl.Err(err))
		}
	}

	if s.events != nil {
		ev := models.DonationCapturedEvent{
			OrderID:    orderID,
			PayerEmail: rec.PayerEmail,
			DonorName:  rec.DonorName,
			Amount:     paypal.FormatAmount(rec.Amount),
			Currency:   rec.Currency,
			CapturedAt: rec.Timestamp,
		}
		if err := s.events.Publish(ctx, rabbitmq.RoutingKeyDonationCaptured, ev); err != nil {
			log.Error("failed to publish donation event", sl.Err(err))
		}
	}

	return &rec, nil
}

// List возвращает список доноров для страницы.
func (s *Service) List() []donor.PublicEntry {
	return s.leaderboard.Public()
}

// Supporters возвращает количество доноров.
func (s *Service) Supporters() int {
	return s.leaderboard.Count()
}

// Export возвращает выгрузку списка доноров. Пустой список даёт donor.ErrNoDonors.
func (s *Service) Export() (*donor.Export, error) {
	return s.leaderboard.Export(s.now())
}
