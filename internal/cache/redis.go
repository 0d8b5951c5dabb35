package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/keshster98/cashfly-backend/config"
	"github.com/keshster98/cashfly-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	flightsKey  = "cache:flights"
	airportsKey = "cache:airports"
)

// RedisCache keeps flight search results in one hash, one field per filter,
// so a single DEL drops every cached search.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return NewRedisCacheWithClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), ttl)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetFlights(ctx context.Context, key string) ([]domain.FlightDetails, error) {
	data, err := c.client.HGet(ctx, flightsKey, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decode[domain.FlightDetails](data)
}

func (c *RedisCache) SetFlights(ctx context.Context, key string, flights []domain.FlightDetails) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, flightsKey, key, payload)
	pipe.Expire(ctx, flightsKey, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey).Err()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, airportsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return decode[domain.Airport](data)
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey, payload, c.ttl).Err()
}

// InvalidateAirports also drops flight searches, which embed airport details.
func (c *RedisCache) InvalidateAirports(ctx context.Context) error {
	return c.client.Del(ctx, airportsKey, flightsKey).Err()
}

func decode[T any](data []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
