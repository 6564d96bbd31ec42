package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

// errNoRedis is returned by the helpers when Redis was never initialised.
var errNoRedis = errors.New("redis is not configured")

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := Redis.Ping(Ctx).Result(); err != nil {
		logger.Warn().Err(err).Str("addr", config.AppConfig.RedisAddr).
			Msg("Failed to connect to Redis. Completion cache, challenge cache and logout will be degraded")
		return
	}
	logger.Info().Str("addr", config.AppConfig.RedisAddr).Msg("Connected to Redis")
}

// CheckRateLimit counts a hit for bucket in a fixed window and reports
// whether it is still within limit.
func CheckRateLimit(bucket string, limit int, window time.Duration) (bool, error) {
	if Redis == nil {
		return true, errNoRedis
	}
	key := fmt.Sprintf("rate_limit:%s", bucket)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		Redis.Expire(Ctx, key, window)
	}
	return count <= int64(limit), nil
}

// Token blacklist

func blacklistKey(jti string) string {
	return "blacklist:" + jti
}

// BlacklistToken revokes a token id until its natural expiry.
func BlacklistToken(jti string, expiresAt time.Time) error {
	if Redis == nil {
		return errNoRedis
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return Redis.Set(Ctx, blacklistKey(jti), "1", ttl).Err()
}

// IsTokenBlacklisted reports whether jti was revoked. Lookup failures count
// as not revoked.
func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	n, err := Redis.Exists(Ctx, blacklistKey(jti)).Result()
	if err != nil {
		logger.Debug().Err(err).Msg("Blacklist lookup failed")
		return false
	}
	return n > 0
}

// Caching

func CacheSet(key string, value interface{}, expiration time.Duration) error {
	if Redis == nil {
		return errNoRedis
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(Ctx, key, raw, expiration).Err()
}

func CacheGet(key string, dest interface{}) error {
	if Redis == nil {
		return errNoRedis
	}
	val, err := Redis.Get(Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func CacheInvalidate(pattern string) error {
	if Redis == nil {
		return nil
	}
	keys, err := Redis.Keys(Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return Redis.Del(Ctx, keys...).Err()
	}
	return nil
}
