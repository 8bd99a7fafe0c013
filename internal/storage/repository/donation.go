package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/nulltracker-premium/internal/models"
)

// SaveDonation сохраняет пожертвование. Повторный order_id игнорируется.
func (s *Storage) SaveDonation(ctx context.Context, d *models.Donation) error {
	const op = "storage.SaveDonation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO donations
		(order_id, payer_id, payer_email, amount, currency, donor_name, donor_message, show_publicly)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_id) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query,
		d.OrderID, d.PayerID, d.PayerEmail, d.Amount, d.Currency, d.DonorName, d.DonorMessage, d.ShowPublicly)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListDonations возвращает последние пожертвования, новые первыми.
func (s *Storage) ListDonations(ctx context.Context, limit int) ([]*models.Donation, error) {
	const op = "storage.ListDonations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, order_id, payer_id, payer_email, amount, currency, donor_name,
			donor_message, show_publicly, created_at
		FROM donations ORDER BY created_at DESC, id DESC LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Donation
	for rows.Next() {
		var d models.Donation
		if err := rows.Scan(&d.ID, &d.OrderID, &d.PayerID, &d.PayerEmail, &d.Amount, &d.Currency,
			&d.DonorName, &d.DonorMessage, &d.ShowPublicly, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
