package donor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/nulltracker-premium/internal/lib/sl"
)

// ErrNoDonors возвращается при выгрузке пустого списка.
var ErrNoDonors = errors.New("no donors to export")

// NoDonorsMessage показывается пользователю вместо пустой выгрузки.
const NoDonorsMessage = "No donors to export yet!"

// Store - хранилище JSON-блоба. UpdateBlob должен быть атомарным относительно
// других писателей того же ключа.
type Store interface {
	GetBlob(ctx context.Context, key string) ([]byte, bool, error)
	UpdateBlob(ctx context.Context, key string, expiration time.Duration,
		fn func(old []byte, found bool) ([]byte, error)) error
}

// Leaderboard хранит список доноров в памяти. Источник истины - хранилище:
// новая запись добавляется к сохранённому списку, а не к копии в памяти,
// поэтому несколько экземпляров сервиса не затирают записи друг друга.
type Leaderboard struct {
	mu     sync.RWMutex
	store  Store
	log    *slog.Logger
	donors []Record
}

// NewLeaderboard создаёт пустой список. Для чтения сохранённых данных вызовите Load.
func NewLeaderboard(store Store, log *slog.Logger) *Leaderboard {
	return &Leaderboard{store: store, log: log}
}

// Load читает сохранённый список. Повреждённые данные не восстанавливаются:
// список становится пустым. Ошибка возвращается только при недоступном хранилище.
func (l *Leaderboard) Load(ctx context.Context) error {
	const op = "donor.Leaderboard.Load"
	log := l.log.With(sl.Op(op))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.donors = nil

	raw, found, err := l.store.GetBlob(ctx, StorageKey)
	if err != nil {
		log.Error("failed to read donors", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil
	}

	var donors []Record
	if err := json.Unmarshal(raw, &donors); err != nil {
		log.Error("stored donors are malformed, starting with an empty list", sl.Err(err))
		return nil
	}
	l.donors = donors
	log.Info("donors loaded", slog.Int("count", len(donors)))
	return nil
}

// AddDonation добавляет запись в начало сохранённого списка и обновляет копию в памяти.
// Ошибка сохранения только логируется: запись остаётся в памяти.
func (l *Leaderboard) AddDonation(ctx context.Context, rec Record) {
	const op = "donor.Leaderboard.AddDonation"
	log := l.log.With(sl.Op(op), slog.String("donation_id", rec.ID))

	l.mu.Lock()
	defer l.mu.Unlock()

	var merged []Record
	err := l.store.UpdateBlob(ctx, StorageKey, 0, func(old []byte, found bool) ([]byte, error) {
		var stored []Record
		if found {
			if err := json.Unmarshal(old, &stored); err != nil {
				log.Warn("stored donors are malformed, replacing them", sl.Err(err))
				stored = nil
			}
		}
		merged = make([]Record, 0, len(stored)+1)
		merged = append(merged, rec)
		merged = append(merged, stored...)
		return json.Marshal(merged)
	})
	if err != nil {
		log.Error("failed to save donors", sl.Err(err))
		donors := make([]Record, 0, len(l.donors)+1)
		donors = append(donors, rec)
		l.donors = append(donors, l.donors...)
		return
	}
	l.donors = merged
	log.Debug("donation added", slog.Int("count", len(l.donors)))
}

// List возвращает копию списка, новые записи первыми.
func (l *Leaderboard) List() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.donors))
	copy(out, l.donors)
	return out
}

// Count возвращает число доноров.
func (l *Leaderboard) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.donors)
}

// Public возвращает список для отображения с порядковыми номерами.
func (l *Leaderboard) Public() []PublicEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]PublicEntry, 0, len(l.donors))
	for i, d := range l.donors {
		name := d.DonorName
		if name == "" || !d.ShowPublicly {
			name = Anonymous
		}
		out = append(out, PublicEntry{
			Rank:    i + 1,
			Name:    name,
			Message: d.DonorMessage,
			Date:    d.Date,
			Amount:  d.Amount,
		})
	}
	return out
}

// Export собирает выгрузку. Сумма пересчитывается при каждом вызове.
func (l *Leaderboard) Export(now time.Time) (*Export, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.donors) == 0 {
		return nil, ErrNoDonors
	}

	total := decimal.Zero
	donors := make([]ExportedDonor, 0, len(l.donors))
	for _, d := range l.donors {
		total = total.Add(d.Amount)
		donors = append(donors, ExportedDonor{
			ID:           d.ID,
			PayerID:      d.PayerID,
			PayerEmail:   d.PayerEmail,
			Amount:       d.Amount,
			Currency:     d.Currency,
			DonorName:    d.DonorName,
			DonorEmail:   d.DonorEmail,
			DonorMessage: d.DonorMessage,
			Timestamp:    d.Timestamp,
			Date:         d.Date,
		})
	}

	return &Export{
		ExportDate:  now.UTC(),
		TotalDonors: len(donors),
		TotalAmount: total,
		Donors:      donors,
	}, nil
}
