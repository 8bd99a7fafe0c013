// Package checkout - контроллер страницы премиум-оплаты: сессии корзин,
// создание заказа в PayPal, списание и сводка для проверки платежа.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
	"github.com/magabrotheeeer/nulltracker-premium/internal/metrics"
	"github.com/magabrotheeeer/nulltracker-premium/internal/models"
	"github.com/magabrotheeeer/nulltracker-premium/internal/paypal"
	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
	"github.com/magabrotheeeer/nulltracker-premium/internal/rabbitmq"
)

var (
	// ErrOrderMismatch возвращается, если списывается заказ, созданный не этой корзиной.
	ErrOrderMismatch = errors.New("order does not belong to cart")
	// ErrNoOrder возвращается при списании до создания заказа.
	ErrNoOrder = errors.New("no order created for cart")
	// ErrProvider оборачивает ошибки платёжной системы.
	ErrProvider = errors.New("payment provider error")
	// ErrCartChanged возвращается, если корзина изменилась, пока создавался заказ.
	// Созданный заказ не привязывается к корзине, его нужно создать заново.
	ErrCartChanged = errors.New("cart changed while the order was being created")
)

// PaymentRepository сохраняет оплаченные заказы.
type PaymentRepository interface {
	SavePayment(ctx context.Context, p *models.Payment) (int64, error)
}

// EventPublisher публикует события в брокер.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

// OrderResult - созданный заказ и запрос, по которому он создан.
type OrderResult struct {
	OrderID    string              `json:"order_id"`
	ApproveURL string              `json:"approve_url,omitempty"`
	Request    paypal.OrderRequest `json:"request"`
	Totals     pricing.Totals      `json:"totals"`
}

// CaptureResult - итог успешной оплаты.
type CaptureResult struct {
	Notification Notification         `json:"notification"`
	Verification pricing.Verification `json:"verification"`
	Text         string               `json:"text"`
}

// Service связывает корзину с хранилищем сессий и платёжной системой.
type Service struct {
	log      *slog.Logger
	catalog  *pricing.Catalog
	promos   pricing.PromoTable
	carts    CartStore
	widget   paypal.Widget
	payments PaymentRepository
	events   EventPublisher
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string
}

// New создаёт сервис. payments и events могут быть nil: тогда сохранение
// и публикация после оплаты пропускаются.
func New(log *slog.Logger, catalog *pricing.Catalog, promos pricing.PromoTable, carts CartStore,
	widget paypal.Widget, payments PaymentRepository, events EventPublisher, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNoop()
	}
	return &Service{
		log:      log,
		catalog:  catalog,
		promos:   promos,
		carts:    carts,
		widget:   widget,
		payments: payments,
		events:   events,
		metrics:  m,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Catalog возвращает каталог услуг.
func (s *Service) Catalog() *pricing.Catalog {
	return s.catalog
}

func (s *Service) load(ctx context.Context, id string) (*Session, *pricing.Cart, error) {
	sess, err := s.carts.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	cart, err := pricing.RestoreCart(s.catalog, s.promos, sess.Cart)
	if err != nil {
		return nil, nil, err
	}
	return sess, cart, nil
}

func (s *Service) save(ctx context.Context, id string, sess *Session, cart *pricing.Cart) error {
	sess.Cart = cart.State()
	return s.carts.Save(ctx, id, sess)
}

// NewCart создаёт пустую корзину для варианта страницы.
func (s *Service) NewCart(ctx context.Context, variant string) (string, pricing.Summary, error) {
	const op = "checkout.Service.NewCart"

	v, ok := pricing.LookupVariant(variant)
	if !ok {
		return "", pricing.Summary{}, fmt.Errorf("%s: %w: %q", op, pricing.ErrUnknownVariant, variant)
	}
	cart := pricing.NewCart(s.catalog, s.promos, v)
	id := s.newID()
	if err := s.save(ctx, id, &Session{}, cart); err != nil {
		return "", pricing.Summary{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.CartsCreated.WithLabelValues(v.Name).Inc()
	return id, cart.Summary(), nil
}

// Summary возвращает текущую сводку корзины.
func (s *Service) Summary(ctx context.Context, id string) (pricing.Summary, error) {
	const op = "checkout.Service.Summary"
	_, cart, err := s.load(ctx, id)
	if err != nil {
		return pricing.Summary{}, fmt.Errorf("%s: %w", op, err)
	}
	return cart.Summary(), nil
}

// mutate атомарно применяет fn к сохранённой корзине.
// Созданный ранее заказ сбрасывается: его сумма больше не соответствует корзине.
func (s *Service) mutate(ctx context.Context, op, id string, fn func(*pricing.Cart) error) (*pricing.Cart, error) {
	var cart *pricing.Cart
	_, err := s.carts.Update(ctx, id, func(sess *Session) error {
		c, err := pricing.RestoreCart(s.catalog, s.promos, sess.Cart)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		sess.Cart = c.State()
		sess.OrderID = ""
		cart = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cart, nil
}

// SelectTier выбирает тариф услуги. pricing.NoTier убирает услугу из корзины.
func (s *Service) SelectTier(ctx context.Context, id, serviceID, tierID string) (pricing.Summary, error) {
	cart, err := s.mutate(ctx, "checkout.Service.SelectTier", id, func(c *pricing.Cart) error {
		return c.SelectTier(serviceID, tierID)
	})
	if err != nil {
		return pricing.Summary{}, err
	}
	return cart.Summary(), nil
}

// SetYearlyBilling переключает период оплаты.
func (s *Service) SetYearlyBilling(ctx context.Context, id string, yearly bool) (pricing.Summary, error) {
	cart, err := s.mutate(ctx, "checkout.Service.SetYearlyBilling", id, func(c *pricing.Cart) error {
		return c.SetYearlyBilling(yearly)
	})
	if err != nil {
		return pricing.Summary{}, err
	}
	return cart.Summary(), nil
}

// ApplyPromoCode применяет промокод. Неверный код - не ошибка, а результат со статусом invalid.
func (s *Service) ApplyPromoCode(ctx context.Context, id, code string) (pricing.PromoResult, pricing.Summary, error) {
	var res pricing.PromoResult
	cart, err := s.mutate(ctx, "checkout.Service.ApplyPromoCode", id, func(c *pricing.Cart) error {
		res = c.ApplyPromoCode(code)
		return nil
	})
	if err != nil {
		return pricing.PromoResult{}, pricing.Summary{}, err
	}
	s.metrics.PromoApplications.WithLabelValues(string(res.Status)).Inc()
	return res, cart.Summary(), nil
}

// CreateOrder проверяет корзину и создаёт заказ в платёжной системе.
// Ошибка проверки возвращается как *pricing.ValidationError.
func (s *Service) CreateOrder(ctx context.Context, id string, identity pricing.Identity) (*OrderResult, error) {
	const op = "checkout.Service.CreateOrder"
	log := s.log.With(sl.Op(op), slog.String("cart_id", id))

	sess, cart, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cart.Validate(identity); err != nil {
		return nil, err
	}

	totals := cart.ComputeTotals()
	req := cart.ToOrderRequest(totals.GrandTotal, identity)

	order, err := s.widget.CreateOrder(ctx, req)
	if err != nil {
		s.metrics.PaymentsFailed.WithLabelValues("create").Inc()
		log.Error("failed to create order", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
	}

	priced := sess.Cart
	_, err = s.carts.Update(ctx, id, func(cur *Session) error {
		if !cur.Cart.Equal(priced) {
			return ErrCartChanged
		}
		cur.OrderID = order.ID
		cur.Identity = identity
		return nil
	})
	if err != nil {
		log.Warn("order was not attached to cart", slog.String("order_id", order.ID), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.OrdersCreated.WithLabelValues(cart.Variant().Name).Inc()
	log.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("amount", req.PurchaseUnits[0].Amount.Value),
	)
	return &OrderResult{
		OrderID:    order.ID,
		ApproveURL: order.ApproveURL(),
		Request:    req,
		Totals:     totals,
	}, nil
}

// Capture списывает средства по заказу корзины и возвращает сводку для проверки.
// Сохранение платежа, публикация события и удаление сессии выполняются
// по возможности: их ошибки только логируются.
func (s *Service) Capture(ctx context.Context, id, orderID string) (*CaptureResult, error) {
	const op = "checkout.Service.Capture"
	log := s.log.With(sl.Op(op), slog.String("cart_id", id), slog.String("order_id", orderID))

	sess, cart, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	switch {
	case sess.OrderID == "":
		return nil, fmt.Errorf("%s: %w", op, ErrNoOrder)
	case sess.OrderID != orderID:
		return nil, fmt.Errorf("%s: %w", op, ErrOrderMismatch)
	}

	res, err := s.widget.CaptureOrder(ctx, orderID)
	if err != nil {
		s.metrics.PaymentsFailed.WithLabelValues("capture").Inc()
		log.Error("failed to capture order", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
	}
	if res.Status != "" && res.Status != paypal.StatusCompleted {
		log.Warn("capture finished with unexpected status", slog.String("status", res.Status))
	}

	v := pricing.NewVerification(cart, res, sess.Identity, s.now())
	s.metrics.PaymentsCaptured.WithLabelValues(cart.BillingLabel()).Inc()
	log.Info("payment captured", slog.String("payment_id", v.PaymentID), slog.String("amount", v.Amount))

	s.afterCapture(ctx, log, id, orderID, cart, v)

	return &CaptureResult{
		Notification: PaymentSucceeded,
		Verification: v,
		Text:         v.Text(),
	}, nil
}

func (s *Service) afterCapture(ctx context.Context, log *slog.Logger, id, orderID string, cart *pricing.Cart, v pricing.Verification) {
	if s.payments != nil {
		p := &models.Payment{
			OrderID:    orderID,
			UserID:     v.UserID,
			GuildID:    v.GuildID,
			Services:   v.Services,
			Amount:     cart.ComputeTotals().GrandTotal.Round(2),
			Currency:   v.Currency,
			Billing:    cart.BillingLabel(),
			PromoCode:  v.PromoCode,
			PayerID:    v.PayerID,
			PayerEmail: v.PayerEmail,
			Status:     paypal.StatusCompleted,
		}
		if _, err := s.payments.SavePayment(ctx, p); err != nil {
			log.Error("failed to save payment", sl.Err(err))
		}
	}

	if s.events != nil {
		ev := models.PaymentCapturedEvent{
			OrderID:    orderID,
			PayerEmail: v.PayerEmail,
			Amount:     v.Amount,
			Currency:   v.Currency,
			Billing:    v.Billing,
			Discount:   v.Discount,
			Services:   v.Services,
			UserID:     v.UserID,
			GuildID:    v.GuildID,
			CapturedAt: v.Timestamp,
		}
		if err := s.events.Publish(ctx, rabbitmq.RoutingKeyPaymentCaptured, ev); err != nil {
			log.Error("failed to publish payment event", sl.Err(err))
		}
	}

	if err := s.carts.Delete(ctx, id); err != nil {
		log.Warn("failed to delete cart session", sl.Err(err))
	}
}

// Cancel фиксирует отмену оплаты покупателем. Корзина сохраняется для повторной попытки.
func (s *Service) Cancel(ctx context.Context, id string) (Notification, error) {
	const op = "checkout.Service.Cancel"
	if _, err := s.carts.Load(ctx, id); err != nil {
		return Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.PaymentsCancelled.Inc()
	s.log.Info("payment cancelled by payer", sl.Op(op), slog.String("cart_id", id))
	return PaymentCancelled, nil
}

// Fail фиксирует ошибку, о которой сообщило окно оплаты. Повтор не выполняется,
// корзина и созданный заказ остаются без изменений.
func (s *Service) Fail(ctx context.Context, id, reason string) (Notification, error) {
	const op = "checkout.Service.Fail"
	if _, err := s.carts.Load(ctx, id); err != nil {
		return Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.PaymentsFailed.WithLabelValues("widget").Inc()
	s.log.Warn("payment widget reported an error", sl.Op(op), slog.String("cart_id", id), slog.String("reason", reason))
	return PaymentFailed, nil
}

// SavePayment сохраняет данные, которые страница отправляет после оплаты.
func (s *Service) SavePayment(ctx context.Context, req models.SavePaymentRequest) (int64, error) {
	const op = "checkout.Service.SavePayment"
	if s.payments == nil {
		return 0, fmt.Errorf("%s: payment storage is not configured", op)
	}
	id, err := s.payments.SavePayment(ctx, &models.Payment{
		OrderID:  req.OrderID,
		UserID:   req.UserID,
		GuildID:  req.GuildID,
		Services: req.Services,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
