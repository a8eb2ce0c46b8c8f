// Package providers wires the video sources the playlist loads from.
package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vlatan/video-playlist/internal/config"
	"github.com/vlatan/video-playlist/internal/drivers/database"
	"github.com/vlatan/video-playlist/internal/drivers/rdb"
	"github.com/vlatan/video-playlist/internal/integrations/yt"
	"github.com/vlatan/video-playlist/internal/models"
	"github.com/vlatan/video-playlist/internal/playlist"
	"github.com/vlatan/video-playlist/internal/repositories/videos"
)

// CacheKey is the Redis key the loaded playlist is cached under
const CacheKey = "playlist:videos"

// Cached serves the videos from Redis and falls back to the next provider
type Cached struct {
	next    playlist.Provider
	rdb     *rdb.Service
	key     string
	timeout time.Duration
}

func NewCached(next playlist.Provider, rdb *rdb.Service, key string, timeout time.Duration) *Cached {
	return &Cached{
		next:    next,
		rdb:     rdb,
		key:     key,
		timeout: timeout,
	}
}

// GetVideos implements the playlist.Provider interface.
// An empty playlist is not cached.
func (c *Cached) GetVideos(ctx context.Context) (models.Videos, error) {
	return rdb.GetCachedNonEmpty(ctx, c.rdb, c.key, c.timeout,
		func() (models.Videos, error) {
			return c.next.GetVideos(ctx)
		},
	)
}

// Invalidate drops the cached playlist so the next load hits the source
func (c *Cached) Invalidate(ctx context.Context) error {
	return c.rdb.Delete(ctx, c.key)
}

// New builds the provider for the configured video source.
// The result is cached in Redis if caching is enabled and Redis is available.
func New(
	cfg *config.Config,
	db database.Service,
	yts *yt.Service,
	rs *rdb.Service,
) (playlist.Provider, error) {

	if cfg == nil {
		return nil, errors.New("unable to create a provider with nil config")
	}

	var provider playlist.Provider
	switch cfg.VideoSource {
	case config.YouTube:
		if yts == nil {
			return nil, errors.New("YouTube source selected without a YouTube service")
		}
		ytProvider := yt.NewProvider(yts, cfg.YouTubePlaylistID, cfg.VideoURLs...)
		if rs != nil {
			limiter, err := rdb.NewLimiter(rs, "youtube", cfg.YouTubeTimezone, cfg.YouTubeRPD, cfg.YouTubeRPM)
			if err != nil {
				return nil, fmt.Errorf("couldn't create the YouTube limiter; %w", err)
			}
			ytProvider.WithQuota(limiter)
		}
		provider = ytProvider
	case config.Database:
		if db == nil {
			return nil, errors.New("database source selected without a database")
		}
		provider = videos.New(db)
	default:
		return nil, fmt.Errorf("unknown video source '%s'", cfg.VideoSource)
	}

	if !cfg.CacheVideos || rs == nil {
		return provider, nil
	}

	return NewCached(provider, rs, CacheKey, cfg.CacheTimeout), nil
}
