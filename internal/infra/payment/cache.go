package payment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

const verificationKeyPrefix = "seatly:verification:"

type RedisVerificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ commands.VerificationCache = (*RedisVerificationCache)(nil)

func NewRedisVerificationCache(client *redis.Client, ttl time.Duration) *RedisVerificationCache {
	return &RedisVerificationCache{client: client, ttl: ttl}
}

func (c *RedisVerificationCache) Get(ctx context.Context, paymentID string) (*commands.Verification, error) {
	raw, err := c.client.Get(ctx, verificationKeyPrefix+paymentID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errs.Wrap(err, "read cached verification")
	}

	var v commands.Verification
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errs.Wrap(err, "decode cached verification")
	}
	return &v, nil
}

// Put ignores anything that is not approved: a pending payment may still change.
func (c *RedisVerificationCache) Put(ctx context.Context, paymentID string, v *commands.Verification) error {
	if v == nil || !v.Approved() {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errs.Wrap(err, "encode verification")
	}
	if err := c.client.Set(ctx, verificationKeyPrefix+paymentID, raw, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "write cached verification")
	}
	return nil
}

// NoopVerificationCache is used when Redis is disabled.
type NoopVerificationCache struct{}

func (NoopVerificationCache) Get(context.Context, string) (*commands.Verification, error) {
	return nil, nil
}

func (NoopVerificationCache) Put(context.Context, string, *commands.Verification) error {
	return nil
}
