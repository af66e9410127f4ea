package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PeriodGuard gates a batch job to one run per calendar period.
// The depreciation engine itself has no notion of which month it runs
// for, so the once-per-month discipline lives here, at the caller
// layer, as a SETNX key per period.
type PeriodGuard struct {
	rdb    *redis.Client
	prefix string
}

func NewPeriodGuard(rdb *redis.Client, prefix string) *PeriodGuard {
	return &PeriodGuard{rdb: rdb, prefix: prefix}
}

func (g *PeriodGuard) periodKey(t time.Time) string {
	return fmt.Sprintf("%s:%s", g.prefix, t.UTC().Format("2006-01"))
}

// TryAcquire claims the current month. Returns false when the period
// was already claimed. The TTL outlives the month so a restart cannot
// re-run a period that already ran.
func (g *PeriodGuard) TryAcquire(ctx context.Context, now time.Time) (bool, error) {
	return g.rdb.SetNX(ctx, g.periodKey(now), "1", 40*24*time.Hour).Result()
}

// Release frees the current period, e.g. after the guarded job failed
// before doing any work.
func (g *PeriodGuard) Release(ctx context.Context, now time.Time) error {
	return g.rdb.Del(ctx, g.periodKey(now)).Err()
}
