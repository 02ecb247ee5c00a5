package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda o feed de próximas partidas com previsões no Redis.
// TTL curto; o registro de placar invalida as chaves tocadas.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Cache { return &Cache{R: r, TTL: ttl} }

func keyUpcoming(limit int) string { return fmt.Sprintf("matches:upcoming:%d", limit) }

func (c *Cache) GetUpcoming(ctx context.Context, limit int, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyUpcoming(limit)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetUpcoming(ctx context.Context, limit int, v any) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keyUpcoming(limit), b, c.TTL).Err()
}

// Invalidate remove todas as entradas do feed (chamado ao registrar placar)
func (c *Cache) Invalidate(ctx context.Context) error {
	iter := c.R.Scan(ctx, 0, "matches:upcoming:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.R.Del(ctx, keys...).Err()
}
