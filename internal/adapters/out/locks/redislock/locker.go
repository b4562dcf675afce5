// Package redislock serializes workflow steps per order across processes with
// a Redis key per order.
package redislock

import (
	"context"
	"log/slog"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "workshop:order-lock:"
	retryBackoff = 25 * time.Millisecond
)

var _ ports.OrderLocker = &Locker{}

// releaseScript deletes the key only while it still carries our token, so an
// expired lock taken over by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Locker struct {
	c   redis.UniversalClient
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *Locker {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

func NewWithClient(c redis.UniversalClient, ttl time.Duration) *Locker {
	return &Locker{c: c, ttl: ttl}
}

// Lock retries SET NX until it wins or ctx is done. The key expires after the
// configured TTL so a crashed holder cannot block the order forever.
func (l *Locker) Lock(ctx context.Context, orderID kernel.UUID) (ports.ReleaseFunc, error) {
	key := keyPrefix + orderID.String()
	token := kernel.NewUUID().String()

	for {
		ok, err := l.c.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrap(err, "redis lock")
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "redis lock")
		case <-time.After(retryBackoff):
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// the caller's ctx may already be cancelled
		if err := releaseScript.Run(context.Background(), l.c, []string{key}, token).Err(); err != nil {
			slog.Warn("failed to release order lock", "order_id", orderID.String(), "error", err)
		}
	}, nil
}

func (l *Locker) Close() error {
	return l.c.Close()
}
