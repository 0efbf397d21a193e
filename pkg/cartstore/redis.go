package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"hotelfood/entity"
)

const defaultRedisRetries = 10

// RedisStore keeps each cart as a JSON blob under "<prefix><session>". Updates use
// WATCH/MULTI and retry when another writer touched the same key.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	prefix  string
	retries int
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: "cart:", retries: defaultRedisRetries}
}

func (s *RedisStore) key(sessionID string) string { return s.prefix + sessionID }

func (s *RedisStore) load(ctx context.Context, c redis.Cmdable, key string) (*entity.Cart, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	cart := entity.NewCart()
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = make(map[uint]*entity.CartEntry)
	}
	return cart, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*entity.Cart, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	return s.load(ctx, s.client, s.key(sessionID))
}

func (s *RedisStore) Update(ctx context.Context, sessionID string, fn func(*entity.Cart) error) (*entity.Cart, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	key := s.key(sessionID)

	var out *entity.Cart
	txf := func(tx *redis.Tx) error {
		cart, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}
		data, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("encode cart: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			out = cart
		}
		return err
	}

	for i := 0; i < s.retries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, ErrConflict
}

func (s *RedisStore) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrNoSession
	}
	data, err := json.Marshal(entity.NewCart())
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID)).Err()
}
