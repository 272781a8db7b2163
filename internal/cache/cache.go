package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw enrichment batches per carrier code. Derived results are
// never cached; they are recomputed on every request.
type Cache interface {
	Get(ctx context.Context, carrier string) ([]json.RawMessage, bool)
	Set(ctx context.Context, carrier string, records []json.RawMessage) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  15 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, carrier string) ([]json.RawMessage, bool) {
	data, err := c.client.Get(ctx, Key(carrier)).Bytes()
	if err != nil {
		return nil, false
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}

	return records, true
}

func (c *RedisCache) Set(ctx context.Context, carrier string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, Key(carrier), data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, carrier string) ([]json.RawMessage, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, carrier string, records []json.RawMessage) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func Key(carrier string) string {
	return "enrichment:" + strings.ToUpper(strings.TrimSpace(carrier))
}
