package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ileke_server/config"
	"ileke_server/structs"
	"ileke_server/structs/tables"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching with connection pooling and retry logic.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			MaxRetries: cfg.Cache.MaxRetries,
		})
	})
	return redisClient
}

func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff.
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network errors, not on logical ones like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // ms
		base := 100        // ms

		backoff := base * (1 << attempt)
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic.
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key; a missing key yields ("", nil).
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

func (cs *CacheService) Exists(key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// SetNX sets a key only if it does not exist. Used as a processing guard for
// webhook deliveries so a reference is handled exactly once per window.
func (cs *CacheService) SetNX(key string, value any, ttl time.Duration) (bool, error) {
	var acquired bool

	err := cs.withRetry(func() error {
		ok, err := cs.client.SetNX(redisCtx, key, value, ttl).Result()
		if err != nil {
			return err
		}
		acquired = ok
		return nil
	}, 3)

	return acquired, err
}

// IncrementRateLimit atomically increments a rate limit counter, setting the
// window expiry on first increment.
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// GetRateLimit reads the current counter without incrementing it.
func (cs *CacheService) GetRateLimit(ip, endpoint string) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)
	val, err := cs.Get(key)
	if err != nil {
		return 0, err
	}

	if val == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit value: %w", err)
	}

	return count, nil
}

func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// ============================================================================
// Catalog Caching
// ============================================================================

// GetProductByHandle retrieves a cached product by its URL handle.
func (cs *CacheService) GetProductByHandle(handle string) (*tables.Product, error) {
	key := fmt.Sprintf("product:handle:%s", handle)

	product, err := getJSON[tables.Product](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get product from cache", "error", err, "handle", handle)
		return nil, err
	}

	return product, nil
}

func (cs *CacheService) SetProductByHandle(product *tables.Product) error {
	key := fmt.Sprintf("product:handle:%s", product.Handle)
	return setJSON(cs, key, product, cs.catalogTTL())
}

// GetProductList retrieves a cached product listing page.
func (cs *CacheService) GetProductList(cacheKey string) ([]tables.Product, error) {
	key := fmt.Sprintf("products:list:%s", cacheKey)

	products, err := getJSON[[]tables.Product](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get product list from cache", "error", err, "key", key)
		return nil, err
	}

	if products == nil {
		return nil, nil
	}

	return *products, nil
}

func (cs *CacheService) SetProductList(cacheKey string, products []tables.Product) error {
	key := fmt.Sprintf("products:list:%s", cacheKey)
	return setJSON(cs, key, products, cs.catalogTTL())
}

// GetCollectionByHandle retrieves a cached collection by its URL handle.
func (cs *CacheService) GetCollectionByHandle(handle string) (*tables.Collection, error) {
	key := fmt.Sprintf("collection:handle:%s", handle)

	collection, err := getJSON[tables.Collection](cs, key)
	if err != nil {
		cs.logger.Warn("Failed to get collection from cache", "error", err, "handle", handle)
		return nil, err
	}

	return collection, nil
}

func (cs *CacheService) SetCollectionByHandle(collection *tables.Collection) error {
	key := fmt.Sprintf("collection:handle:%s", collection.Handle)
	return setJSON(cs, key, collection, cs.catalogTTL())
}

// InvalidateCatalogCaches removes all catalog caches. Called whenever an admin
// mutates a product or collection.
func (cs *CacheService) InvalidateCatalogCaches() error {
	patterns := []string{
		"product:*",
		"products:*",
		"collection:*",
	}

	for _, pattern := range patterns {
		if err := cs.DeletePattern(pattern); err != nil {
			cs.logger.Error("Failed to delete cache pattern", "pattern", pattern, "error", err)
			return err
		}
	}

	return nil
}

// ============================================================================
// Upload Rate Limiting
// ============================================================================

// IncrementUploadCount tracks reference image uploads per custom-order
// request so a single request cannot flood storage.
func (cs *CacheService) IncrementUploadCount(requestID uuid.UUID, window time.Duration) (int, error) {
	key := fmt.Sprintf("uploads:request:%s", requestID.String())

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		if val == 1 {
			return cs.client.Expire(redisCtx, key, window).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// DeletePattern removes all keys matching a pattern using SCAN.
func (cs *CacheService) DeletePattern(pattern string) error {
	return cs.withRetry(func() error {
		var cursor uint64

		for {
			keys, nextCursor, err := cs.client.Scan(redisCtx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(keys) > 0 {
				if err := cs.client.Del(redisCtx, keys...).Err(); err != nil {
					return fmt.Errorf("delete failed: %w", err)
				}
			}

			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}

		return nil
	}, 3)
}

func (cs *CacheService) catalogTTL() time.Duration {
	return 5 * time.Minute
}

func setJSON[T any](cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(key, data, ttl)
}

func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil
	}

	var result T
	err = json.Unmarshal([]byte(val), &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
