// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/buildledger/backoffice/logging"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// Sensitive entries (provider bank details) are sealed when a key is configured.
	encryptionKey = []byte(viper.GetString("redis.encryptionKey"))
	if len(encryptionKey) != 0 && len(encryptionKey) != 32 {
		return fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// CacheKey builds the redis key for a cached entity.
func CacheKey(kind, id string) string {
	return fmt.Sprintf("%s:%s", kind, id)
}

// CacheJSON stores v under kind:id, sealed with AES-GCM when sensitive and a key is set.
func CacheJSON(ctx context.Context, kind, id string, v any, sensitive bool) error {
	if RedisClient == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", kind, err)
	}

	value := string(payload)
	if sensitive && len(encryptionKey) > 0 {
		sealed, err := encrypt(payload)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", kind, err)
		}
		value = base64.StdEncoding.EncodeToString(sealed)
	}

	key := CacheKey(kind, id)
	if err := RedisClient.Set(ctx, key, value, viper.GetDuration("redis.defaultCacheTTL")).Err(); err != nil {
		return fmt.Errorf("failed to cache %s: %w", kind, err)
	}

	logger.Debug("Entry cached successfully", zap.String("key", key))
	return nil
}

// GetCachedJSON loads kind:id into v. A miss returns (false, nil).
func GetCachedJSON(ctx context.Context, kind, id string, v any, sensitive bool) (bool, error) {
	if RedisClient == nil {
		return false, nil
	}
	key := CacheKey(kind, id)
	raw, err := RedisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logger.Debug("Entry not found in cache", zap.String("key", key))
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get %s from cache: %w", kind, err)
	}

	payload := []byte(raw)
	if sensitive && len(encryptionKey) > 0 {
		sealed, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return false, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		if payload, err = decrypt(sealed); err != nil {
			return false, fmt.Errorf("failed to decrypt %s: %w", kind, err)
		}
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", kind, err)
	}

	logger.Debug("Entry retrieved from cache", zap.String("key", key))
	return true, nil
}

func DeleteCached(ctx context.Context, kind, id string) error {
	if RedisClient == nil {
		return nil
	}
	key := CacheKey(kind, id)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from cache: %w", kind, err)
	}
	logger.Debug("Entry deleted from cache", zap.String("key", key))
	return nil
}

// RateLimit is a sliding-window counter kept in a sorted set.
func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	card := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := card.Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
