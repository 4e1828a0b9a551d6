package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"order_manager/internal/models"
)

// ErrMiss is returned when the requested key is not cached.
var ErrMiss = errors.New("cache miss")

const orderListKey = "orders:all"

// OrderCache holds the cached order list between mutations.
type OrderCache interface {
	GetOrderList() ([]models.Order, error)
	SetOrderList(orders []models.Order, ttl time.Duration) error
	InvalidateOrderList() error
	Close() error
}

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) GetOrderList() ([]models.Order, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, orderListKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("failed to get order list: %w", err)
	}

	var orders []models.Order
	if err := json.Unmarshal([]byte(val), &orders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order list: %w", err)
	}
	return orders, nil
}

func (c *Client) SetOrderList(orders []models.Order, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("failed to marshal order list: %w", err)
	}
	return c.rdb.Set(ctx, orderListKey, jsonData, ttl).Err()
}

func (c *Client) InvalidateOrderList() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, orderListKey).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
