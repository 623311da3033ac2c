package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	PoolSize int
}

func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// ErrCorruptEntry means a key held something that is not an integer.
var ErrCorruptEntry = errors.New("corrupt balance cache entry")

// Entry is what the cache knows about one wallet. Either field may be
// missing independently of the other.
type Entry struct {
	Total    int64
	HasTotal bool
	Limit    int64
	HasLimit bool
}

// BalanceCache mirrors the total and limit of each wallet as two plain
// integer keys, so the total can be moved with INCRBY.
type BalanceCache struct {
	client redis.UniversalClient
}

func NewBalanceCache(client redis.UniversalClient) *BalanceCache {
	return &BalanceCache{client: client}
}

func totalKey(id uint32) string {
	return GenerateKey(EntityBalance, id, FieldTotal)
}

func limitKey(id uint32) string {
	return GenerateKey(EntityBalance, id, FieldLimit)
}

// Get reads both fields in one round trip. Missing keys are not an error.
func (c *BalanceCache) Get(ctx context.Context, id uint32) (Entry, error) {
	values, err := c.client.MGet(ctx, totalKey(id), limitKey(id)).Result()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read balance cache: %w", err)
	}

	var entry Entry
	if entry.Total, entry.HasTotal, err = parseInt(values[0]); err != nil {
		return Entry{}, fmt.Errorf("%w: total of wallet %d: %v", ErrCorruptEntry, id, err)
	}
	if entry.Limit, entry.HasLimit, err = parseInt(values[1]); err != nil {
		return Entry{}, fmt.Errorf("%w: limit of wallet %d: %v", ErrCorruptEntry, id, err)
	}
	return entry, nil
}

// SetLimit stores the limit unless one is already cached. Limits never
// change, so repeating the call is harmless.
func (c *BalanceCache) SetLimit(ctx context.Context, id uint32, limit uint32) error {
	return c.client.SetNX(ctx, limitKey(id), limit, 0).Err()
}

// SetTotal overwrites the cached total.
func (c *BalanceCache) SetTotal(ctx context.Context, id uint32, total int32) error {
	return c.client.Set(ctx, totalKey(id), total, 0).Err()
}

// IncrTotal moves the cached total by delta atomically.
func (c *BalanceCache) IncrTotal(ctx context.Context, id uint32, delta int64) error {
	return c.client.IncrBy(ctx, totalKey(id), delta).Err()
}

// Invalidate drops both fields of a wallet.
func (c *BalanceCache) Invalidate(ctx context.Context, id uint32) error {
	return c.client.Del(ctx, totalKey(id), limitKey(id)).Err()
}

// Flush drops every cached balance, used at startup so a fresh store
// does not inherit totals from a previous run.
func (c *BalanceCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, string(EntityBalance)+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *BalanceCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func parseInt(v interface{}) (int64, bool, error) {
	if v == nil {
		return 0, false, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, false, fmt.Errorf("unexpected type %T", v)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
