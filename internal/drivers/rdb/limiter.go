package rdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "time/tzdata" // embed the timezone database into the binary
)

var (
	ErrDailyLimitReached  = errors.New("daily request limit reached")
	ErrMinuteLimitReached = errors.New("minute request limit reached")
)

// Limiter counts requests to a quota-bound upstream in Redis,
// so the limits hold across app and worker processes.
// The daily bucket resets at midnight in the limiter location.
type Limiter struct {
	rdb       *Service
	prefix    string
	loc       *time.Location
	perDay    int64
	perMinute int64
}

// NewLimiter creates new limiter. A non-positive limit disables that bucket.
func NewLimiter(rdb *Service, prefix, timezone string, perDay, perMinute int64) (*Limiter, error) {

	if rdb == nil {
		return nil, errors.New("unable to create a limiter without Redis")
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	return &Limiter{
		rdb:       rdb,
		prefix:    prefix,
		loc:       loc,
		perDay:    perDay,
		perMinute: perMinute,
	}, nil
}

func (l *Limiter) dailyKey(now time.Time) string {
	return l.prefix + ":rpd:" + now.Format("2006-01-02")
}

func (l *Limiter) minuteKey(now time.Time) string {
	return l.prefix + ":rpm:" + now.Format("2006-01-02-15-04")
}

// Acquire attempts to consume 1 request from the daily and minute buckets.
// It returns a sentinel error if any of the quotas are full.
func (l *Limiter) Acquire(ctx context.Context) error {
	now := time.Now().In(l.loc)

	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, l.loc)
	dailyKey, minuteKey := l.dailyKey(now), l.minuteKey(now)

	// Both counters move in one round trip
	pipe := l.rdb.Client.Pipeline()
	dailyIncr := pipe.Incr(ctx, dailyKey)
	pipe.Expire(ctx, dailyKey, time.Until(nextMidnight))

	minuteIncr := pipe.Incr(ctx, minuteKey)
	pipe.Expire(ctx, minuteKey, 65*time.Second) // slightly over a minute

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis failure: %w", err)
	}

	if l.perDay > 0 && dailyIncr.Val() > l.perDay {
		return fmt.Errorf("%w (%d)", ErrDailyLimitReached, l.perDay)
	}

	if l.perMinute > 0 && minuteIncr.Val() > l.perMinute {
		return fmt.Errorf("%w (%d)", ErrMinuteLimitReached, l.perMinute)
	}

	return nil
}

// Exhausted returns true if the daily limit has already been hit
func (l *Limiter) Exhausted(ctx context.Context) bool {
	if l.perDay <= 0 {
		return false
	}

	val, err := l.rdb.Client.Get(ctx, l.dailyKey(time.Now().In(l.loc))).Int64()
	if err != nil {
		return false
	}

	return val >= l.perDay
}
