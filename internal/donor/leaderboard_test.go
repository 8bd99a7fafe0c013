package donor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/nulltracker-premium/internal/cache"
	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
)

type MockStore struct {
	mock.Mock
	saved []byte
}

func (m *MockStore) GetBlob(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockStore) UpdateBlob(ctx context.Context, key string, expiration time.Duration,
	fn func(old []byte, found bool) ([]byte, error)) error {
	args := m.Called(ctx, key)
	if err := args.Error(0); err != nil {
		return err
	}
	next, err := fn(m.saved, m.saved != nil)
	if err != nil {
		return err
	}
	m.saved = next
	return nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRedisStore(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func record(id, amount string, public bool) Record {
	return Record{
		ID:           id,
		PayerID:      "PAYER-" + id,
		PayerEmail:   id + "@example.com",
		Amount:       decimal.RequireFromString(amount),
		Currency:     "USD",
		DonorName:    "Donor " + id,
		DonorMessage: "thanks",
		ShowPublicly: public,
		Timestamp:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Date:         "5/1/2024",
	}
}

func TestLeaderboard_AddDonationOnEmpty(t *testing.T) {
	store, _ := newRedisStore(t)
	lb := NewLeaderboard(store, newNoopLogger())
	require.NoError(t, lb.Load(context.Background()))

	rec := record("1", "10.00", true)
	lb.AddDonation(context.Background(), rec)

	list := lb.List()
	require.Len(t, list, 1)
	assert.Equal(t, rec, list[0])

	exp, err := lb.Export(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, exp.TotalDonors)
	assert.True(t, rec.Amount.Equal(exp.TotalAmount))
}

func TestLeaderboard_NewestFirstAndPersisted(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	lb := NewLeaderboard(store, newNoopLogger())
	lb.AddDonation(ctx, record("1", "5", true))
	lb.AddDonation(ctx, record("2", "7.50", true))
	lb.AddDonation(ctx, record("3", "1.25", false))

	ids := func(rs []Record) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"3", "2", "1"}, ids(lb.List()))

	reloaded := NewLeaderboard(store, newNoopLogger())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"3", "2", "1"}, ids(reloaded.List()))
	assert.Equal(t, 3, reloaded.Count())

	exp, err := reloaded.Export(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "13.75", exp.TotalAmount.String())
}

func TestLeaderboard_LoadMalformedResets(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(StorageKey, "{not json"))

	lb := NewLeaderboard(store, newNoopLogger())
	require.NoError(t, lb.Load(context.Background()))
	assert.Empty(t, lb.List())
}

func TestLeaderboard_LoadStoreError(t *testing.T) {
	store := new(MockStore)
	store.On("GetBlob", mock.Anything, StorageKey).Return(nil, false, errors.New("redis down")).Once()

	lb := NewLeaderboard(store, newNoopLogger())
	err := lb.Load(context.Background())
	assert.Error(t, err)
	assert.Empty(t, lb.List())
	store.AssertExpectations(t)
}

func TestLeaderboard_SaveFailureKeepsRecord(t *testing.T) {
	store := new(MockStore)
	store.On("UpdateBlob", mock.Anything, StorageKey).Return(errors.New("quota exceeded")).Once()

	lb := NewLeaderboard(store, newNoopLogger())
	assert.NotPanics(t, func() {
		lb.AddDonation(context.Background(), record("1", "3", true))
	})
	assert.Equal(t, 1, lb.Count())
	store.AssertExpectations(t)
}

func TestLeaderboard_Public(t *testing.T) {
	store := new(MockStore)
	store.On("UpdateBlob", mock.Anything, StorageKey).Return(nil)

	lb := NewLeaderboard(store, newNoopLogger())
	lb.AddDonation(context.Background(), record("1", "5", true))
	hidden := record("2", "3", false)
	lb.AddDonation(context.Background(), hidden)
	unnamed := record("3", "1", true)
	unnamed.DonorName = ""
	lb.AddDonation(context.Background(), unnamed)

	entries := lb.Public()
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, Anonymous, entries[0].Name)
	assert.Equal(t, Anonymous, entries[1].Name)
	assert.Equal(t, "Donor 1", entries[2].Name)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestLeaderboard_ExportEmpty(t *testing.T) {
	lb := NewLeaderboard(new(MockStore), newNoopLogger())
	exp, err := lb.Export(time.Now())
	assert.ErrorIs(t, err, ErrNoDonors)
	assert.Nil(t, exp)
}

func TestExport_FileNameAndJSON(t *testing.T) {
	store := new(MockStore)
	store.On("UpdateBlob", mock.Anything, StorageKey).Return(nil)

	lb := NewLeaderboard(store, newNoopLogger())
	lb.AddDonation(context.Background(), record("1", "5", true))

	exp, err := lb.Export(time.Date(2024, 6, 30, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "nulltracker_donors_2024-06-30.json", exp.FileName())

	raw, err := json.Marshal(exp)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "exportDate")
	assert.Contains(t, doc, "totalDonors")
	assert.Contains(t, doc, "totalAmount")
	donors := doc["donors"].([]any)
	require.Len(t, donors, 1)
	assert.NotContains(t, donors[0], "showPublicly")
}

func TestLeaderboard_ReplicasDoNotOverwriteEachOther(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	first := NewLeaderboard(store, newNoopLogger())
	second := NewLeaderboard(store, newNoopLogger())
	require.NoError(t, first.Load(ctx))
	require.NoError(t, second.Load(ctx))

	first.AddDonation(ctx, record("1", "5", true))
	second.AddDonation(ctx, record("2", "7", true))

	assert.Equal(t, 2, second.Count())

	fresh := NewLeaderboard(store, newNoopLogger())
	require.NoError(t, fresh.Load(ctx))
	list := fresh.List()
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)
	assert.Equal(t, "1", list[1].ID)
}

func TestLeaderboard_ConcurrentAdds(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	boards := []*Leaderboard{
		NewLeaderboard(store, newNoopLogger()),
		NewLeaderboard(store, newNoopLogger()),
	}

	const perBoard = 10
	var wg sync.WaitGroup
	for b, lb := range boards {
		for i := range perBoard {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lb.AddDonation(ctx, record(fmt.Sprintf("%d-%d", b, i), "1", true))
			}()
		}
	}
	wg.Wait()

	fresh := NewLeaderboard(store, newNoopLogger())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, len(boards)*perBoard, fresh.Count())
}
