// Package cache - обёртка над redis для сессий корзин и JSON-блобов
// (список доноров хранится одним значением под фиксированным ключом).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/nulltracker-premium/internal/config"
)

// ErrConflict возвращается, если ключ так и не удалось обновить без гонки
// за maxUpdateAttempts попыток.
var ErrConflict = errors.New("concurrent update conflict")

const maxUpdateAttempts = 50

type Cache struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get читает JSON-значение в result. Отсутствие ключа не ошибка: found=false.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	raw, found, err := c.GetBlob(ctx, key)
	if err != nil || !found {
		return found, err
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет value в JSON. expiration=0 - без срока жизни.
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Db.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет ключ.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	const op = "cache.Invalidate"
	if err := c.Db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetBlob возвращает сырое значение ключа.
func (c *Cache) GetBlob(ctx context.Context, key string) ([]byte, bool, error) {
	const op = "cache.GetBlob"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// UpdateBlob атомарно читает значение key, передаёт его в fn и записывает результат
// с TTL expiration. Если ключ изменился между чтением и записью, fn вызывается заново
// на свежем значении. Ошибка fn прерывает обновление и доступна через errors.Is.
func (c *Cache) UpdateBlob(ctx context.Context, key string, expiration time.Duration,
	fn func(old []byte, found bool) ([]byte, error)) error {
	const op = "cache.UpdateBlob"

	txf := func(tx *redis.Tx) error {
		old, err := tx.Get(ctx, key).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			found = false
		} else if err != nil {
			return err
		}
		next, err := fn(old, found)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, expiration)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := c.Db.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	return fmt.Errorf("%s: %w", op, ErrConflict)
}

// Ping проверяет доступность redis.
func (c *Cache) Ping(ctx context.Context) error {
	return c.Db.Ping(ctx).Err()
}

// Close закрывает пул соединений.
func (c *Cache) Close() error {
	return c.Db.Close()
}
