package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"sailbook/internal/config"
	"sailbook/internal/logger"
	"sailbook/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AccountCache keeps account profiles in Redis, keyed by account id.
// Registered as an account-service listener so every mutation drops the
// stale entry.
type AccountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAccountCache(cfg *config.Config) (*AccountCache, error) {
	db, _ := strconv.Atoi(cfg.RedisDB)
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &AccountCache{client: rdb, ttl: 10 * time.Minute}, nil
}

func key(accountID string) string {
	return "account:" + accountID
}

// Get returns (nil, false) on a miss or a decode problem.
func (c *AccountCache) Get(ctx context.Context, accountID string) (*models.AccountProfileResponse, bool) {
	data, err := c.client.Get(ctx, key(accountID)).Result()
	if err != nil {
		return nil, false
	}
	var p models.AccountProfileResponse
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, false
	}
	return &p, true
}

// Set stores the profile. A failed cache write is logged, not returned.
func (c *AccountCache) Set(ctx context.Context, p *models.AccountProfileResponse) {
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(p.ID), data, c.ttl).Err(); err != nil {
		logger.Log.Warn("account cache write failed", zap.String("account_id", p.ID), zap.Error(err))
	}
}

// Invalidate matches the services.Listener signature.
func (c *AccountCache) Invalidate(accountID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.client.Del(ctx, key(accountID)).Err(); err != nil {
		logger.Log.Warn("account cache invalidation failed", zap.String("account_id", accountID), zap.Error(err))
	}
}

func (c *AccountCache) Close() error {
	return c.client.Close()
}
