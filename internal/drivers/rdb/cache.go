package rdb

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetCachedNonEmpty tries the cache first and calls the callable on a miss,
// storing its result for the given timeout. An empty result is returned
// without being cached, so the next call retries the source.
// Redis failures are logged and never returned, the callable is the source of truth.
// The slice type needs to implement the encoding.BinaryMarshaler
// and encoding.BinaryUnmarshaler interfaces if its elements are not basic types.
func GetCachedNonEmpty[S ~[]E, E any](
	ctx context.Context,
	rdb *Service,
	cacheKey string,
	cacheTimeout time.Duration,
	callable func() (S, error),
) (S, error) {
	nonEmpty := func(data S) bool { return len(data) > 0 }
	return getCachedData(ctx, rdb, cacheKey, cacheTimeout, callable, nonEmpty)
}

// getCachedData stores the callable result only if keep is nil or approves it
func getCachedData[T any](
	ctx context.Context,
	rdb *Service,
	cacheKey string,
	cacheTimeout time.Duration,
	callable func() (T, error),
	keep func(T) bool,
) (T, error) {

	var zero, data T

	// Respect the caller's cancellation before touching Redis
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	err := rdb.Client.Get(ctx, cacheKey).Scan(&data)
	if err == nil {
		return data, nil
	}

	if err != redis.Nil {
		log.Printf(
			"Error getting data from Redis for key '%s': %v",
			cacheKey, err,
		)
	}

	data, err = callable()
	if err != nil {
		return zero, err
	}

	if keep != nil && !keep(data) {
		return data, nil
	}

	if err = rdb.Client.Set(ctx, cacheKey, data, cacheTimeout).Err(); err != nil {
		// Don't return an error if unable to set redis cache
		log.Printf("Error setting cache in Redis for key '%s': %v", cacheKey, err)
	}

	return data, nil
}

// Delete removes the keys from the cache
func (rs *Service) Delete(ctx context.Context, keys ...string) error {
	return rs.Client.Del(ctx, keys...).Err()
}
