package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Billing periods are calendar months in UTC. Keys outlive their period by
// one more so a quote confirmed at month end still reads consistently.
const (
	orderCounterKeyFormat = "orders:%d:%s"
	orderCounterTTL       = 62 * 24 * time.Hour
)

// OrderCounter is the system of record for how many orders a merchant has
// confirmed in the current billing period. The count feeds the
// order-processing-fee waiver.
type OrderCounter interface {
	Increment(ctx context.Context, merchantID uint) (int64, error)
	Current(ctx context.Context, merchantID uint) (int, error)
}

type redisOrderCounter struct {
	client *redis.Client
	now    func() time.Time
}

func NewOrderCounter(client *redis.Client) OrderCounter {
	return &redisOrderCounter{
		client: client,
		now:    time.Now,
	}
}

func (c *redisOrderCounter) key(merchantID uint) string {
	return fmt.Sprintf(orderCounterKeyFormat, merchantID, c.now().UTC().Format("2006-01"))
}

func (c *redisOrderCounter) Increment(ctx context.Context, merchantID uint) (int64, error) {
	key := c.key(merchantID)
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment order counter: %w", err)
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, orderCounterTTL).Err(); err != nil {
			return count, fmt.Errorf("set counter ttl: %w", err)
		}
	}
	return count, nil
}

func (c *redisOrderCounter) Current(ctx context.Context, merchantID uint) (int, error) {
	count, err := c.client.Get(ctx, c.key(merchantID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read order counter: %w", err)
	}
	return count, nil
}
