package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func keyRevokedToken(jti string) string { return "auth:revoked:" + jti }

// TokenDenylist remembers logged-out token ids until they would have expired anyway.
type TokenDenylist struct {
	RDB *redis.Client
}

func NewTokenDenylist(rdb *redis.Client) *TokenDenylist {
	if rdb == nil {
		return nil
	}
	return &TokenDenylist{RDB: rdb}
}

func (d *TokenDenylist) Revoke(ctx context.Context, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return d.RDB.Set(ctx, keyRevokedToken(jti), "1", ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := d.RDB.Get(ctx, keyRevokedToken(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
