package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
)

const (
	productKeyPrefix = "product:"
	defaultCacheTTL  = 5 * time.Minute
)

// ProductCache is a read-through cache for product detail lookups. A nil
// result with nil error is a miss.
type ProductCache interface {
	Get(ctx context.Context, id int64) (*models.Product, error)
	Set(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// RedisProductCache implements ProductCache on Redis.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

func NewRedisProductCache(cfg config.RedisConfig) *RedisProductCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logging.New("product-cache"),
	}
}

func productKey(id int64) string {
	return productKeyPrefix + strconv.FormatInt(id, 10)
}

func (c *RedisProductCache) Get(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", logging.Fields{"product_id": id})
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", logging.Fields{"product_id": id})
	return &p, nil
}

func (c *RedisProductCache) Set(ctx context.Context, p *models.Product) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, productKey(p.ID), data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{
			"product_id": p.ID,
			"error":      err.Error(),
		})
		return err
	}

	c.logger.Debug("Product cached", logging.Fields{
		"product_id": p.ID,
		"ttl":        c.ttl.String(),
	})
	return nil
}

func (c *RedisProductCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, productKey(id)).Err(); err != nil {
		c.logger.Error("Cache delete error", logging.Fields{
			"product_id": id,
			"error":      err.Error(),
		})
		return err
	}
	c.logger.Debug("Product evicted from cache", logging.Fields{"product_id": id})
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}
