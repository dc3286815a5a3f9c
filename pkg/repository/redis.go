package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/example/mealshop/pkg/config"
)

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

// SaveOTP stores the bcrypt hash of a one-time code. The TTL is the only
// expiry mechanism; nothing is persisted on the user document.
func (r *RedisRepository) SaveOTP(ctx context.Context, email, codeHash string, ttl time.Duration) error {
	return r.client.Set(ctx, otpKey(email), codeHash, ttl).Err()
}

// OTPHash returns the stored hash, or ("", nil) when no code is pending.
func (r *RedisRepository) OTPHash(ctx context.Context, email string) (string, error) {
	hash, err := r.client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// DropOTP discards a code after a successful verification.
func (r *RedisRepository) DropOTP(ctx context.Context, email string) error {
	return r.client.Del(ctx, otpKey(email)).Err()
}
