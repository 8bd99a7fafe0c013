package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/nulltracker-premium/internal/models"
)

// SavePayment сохраняет оплаченный заказ. Повторное сохранение того же order_id
// дополняет запись. Запись со статусом (после списания) перезаписывает поля
// непустыми значениями, запись без статуса (со страницы) заполняет только пустые
// колонки и не может перепривязать заказ к другому пользователю или серверу.
func (s *Storage) SavePayment(ctx context.Context, p *models.Payment) (int64, error) {
	const op = "storage.SavePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	services, err := json.Marshal(servicesOrEmpty(p.Services))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO payments
		(order_id, user_id, guild_id, services, amount, currency, billing, promo_code, payer_id, payer_email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (order_id) DO UPDATE SET
			user_id     = ` + mergeText("user_id") + `,
			guild_id    = ` + mergeText("guild_id") + `,
			services    = CASE WHEN EXCLUDED.status <> ''
				THEN CASE WHEN EXCLUDED.services = '[]'::jsonb THEN payments.services ELSE EXCLUDED.services END
				ELSE CASE WHEN payments.services = '[]'::jsonb THEN EXCLUDED.services ELSE payments.services END
			END,
			amount      = CASE WHEN EXCLUDED.status <> ''
				THEN CASE WHEN EXCLUDED.amount = 0 THEN payments.amount ELSE EXCLUDED.amount END
				ELSE CASE WHEN payments.amount = 0 THEN EXCLUDED.amount ELSE payments.amount END
			END,
			currency    = ` + mergeText("currency") + `,
			billing     = ` + mergeText("billing") + `,
			promo_code  = ` + mergeText("promo_code") + `,
			payer_id    = ` + mergeText("payer_id") + `,
			payer_email = ` + mergeText("payer_email") + `,
			status      = COALESCE(NULLIF(EXCLUDED.status, ''), payments.status),
			updated_at  = NOW()
		RETURNING id`
	var id int64
	err = s.DB.QueryRowContext(ctx, query,
		p.OrderID, p.UserID, p.GuildID, services, p.Amount, p.Currency, p.Billing,
		p.PromoCode, p.PayerID, p.PayerEmail, p.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// GetPaymentByOrderID возвращает заказ по идентификатору PayPal.
func (s *Storage) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByOrderID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, order_id, user_id, guild_id, services, amount, currency, billing,
			promo_code, payer_id, payer_email, status, created_at
		FROM payments WHERE order_id = $1`
	var (
		p        models.Payment
		services []byte
	)
	err := s.DB.QueryRowContext(ctx, query, orderID).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.GuildID, &services, &p.Amount, &p.Currency, &p.Billing,
		&p.PromoCode, &p.PayerID, &p.PayerEmail, &p.Status, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(services, &p.Services); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// mergeText собирает выражение для текстовой колонки при конфликте order_id:
// запись со статусом побеждает непустым значением, запись без статуса
// заполняет колонку, только если она пуста.
func mergeText(col string) string {
	return fmt.Sprintf(`CASE WHEN EXCLUDED.status <> ''
				THEN COALESCE(NULLIF(EXCLUDED.%[1]s, ''), payments.%[1]s)
				ELSE COALESCE(NULLIF(payments.%[1]s, ''), EXCLUDED.%[1]s)
			END`, col)
}

func servicesOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
