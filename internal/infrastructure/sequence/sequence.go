// Package sequence produces human friendly bill numbers.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store hands out increasing values for a named counter.
type Store interface {
	Next(ctx context.Context, name string) (int64, error)
}

// RedisStore keeps counters in redis using INCR.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore creates a redis backed counter store.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "shopbill:seq:"}
}

func (s *RedisStore) Next(ctx context.Context, name string) (int64, error) {
	v, err := s.rdb.Incr(ctx, s.prefix+name).Result()
	if err != nil {
		return 0, fmt.Errorf("sequence: incr %s: %w", name, err)
	}
	return v, nil
}

// BillNumber is a generated display number and its sequence within the day.
type BillNumber struct {
	Number   string
	Sequence int64
}

// Generator formats bill numbers as PREFIX-YYYYMMDD-NNNNNN with a counter
// that restarts every UTC day.
type Generator struct {
	store  Store
	prefix string
	now    func() time.Time
}

// NewGenerator creates a bill number generator.
func NewGenerator(store Store, prefix string) *Generator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "BILL"
	}
	return &Generator{store: store, prefix: prefix, now: time.Now}
}

// Next returns the next bill number.
func (g *Generator) Next(ctx context.Context) (BillNumber, error) {
	day := g.now().UTC().Format("20060102")
	seq, err := g.store.Next(ctx, "bills:"+day)
	if err != nil {
		return BillNumber{}, err
	}
	return BillNumber{
		Number:   fmt.Sprintf("%s-%s-%06d", g.prefix, day, seq),
		Sequence: seq,
	}, nil
}
