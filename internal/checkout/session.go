package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/nulltracker-premium/internal/pricing"
)

// ErrCartNotFound возвращается для неизвестной или истёкшей сессии корзины.
var ErrCartNotFound = errors.New("cart not found")

const cartKeyPrefix = "cart:"

// Session - сохраняемое состояние страницы оплаты: корзина и созданный по ней заказ.
type Session struct {
	Cart     pricing.CartState `json:"cart"`
	OrderID  string            `json:"order_id,omitempty"`
	Identity pricing.Identity  `json:"identity"`
}

// CartStore хранит сессии корзин. Update применяет fn к свежей копии сессии и
// сохраняет результат атомарно: параллельные изменения одной корзины не теряются.
// fn может быть вызвана несколько раз.
type CartStore interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, id string, s *Session) error
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// JSONCache - минимальный контракт кэша, на котором строится RedisCartStore.
type JSONCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
	UpdateBlob(ctx context.Context, key string, expiration time.Duration,
		fn func(old []byte, found bool) ([]byte, error)) error
}

// RedisCartStore хранит сессии в redis с TTL, который продлевается при каждом сохранении.
type RedisCartStore struct {
	cache JSONCache
	ttl   time.Duration
}

// NewRedisCartStore создаёт хранилище сессий.
func NewRedisCartStore(cache JSONCache, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{cache: cache, ttl: ttl}
}

func (s *RedisCartStore) Load(ctx context.Context, id string) (*Session, error) {
	const op = "checkout.RedisCartStore.Load"
	var sess Session
	found, err := s.cache.Get(ctx, cartKeyPrefix+id, &sess)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, ErrCartNotFound
	}
	return &sess, nil
}

func (s *RedisCartStore) Save(ctx context.Context, id string, sess *Session) error {
	const op = "checkout.RedisCartStore.Save"
	if err := s.cache.Set(ctx, cartKeyPrefix+id, sess, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *RedisCartStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	const op = "checkout.RedisCartStore.Update"
	var updated *Session
	err := s.cache.UpdateBlob(ctx, cartKeyPrefix+id, s.ttl, func(old []byte, found bool) ([]byte, error) {
		if !found {
			return nil, ErrCartNotFound
		}
		var sess Session
		if err := json.Unmarshal(old, &sess); err != nil {
			return nil, err
		}
		if err := fn(&sess); err != nil {
			return nil, err
		}
		updated = &sess
		return json.Marshal(&sess)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *RedisCartStore) Delete(ctx context.Context, id string) error {
	const op = "checkout.RedisCartStore.Delete"
	if err := s.cache.Invalidate(ctx, cartKeyPrefix+id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
