package yt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/vlatan/video-playlist/internal/models"
)

// Provider loads the playlist from YouTube.
// Videos from the playlist come first, followed by the ones from the URLs.
type Provider struct {
	yt         *Service
	quota      Quota // Can be nil
	playlistID string
	urls       []string
}

// Quota guards the YouTube Data API daily units
type Quota interface {
	Acquire(ctx context.Context) error
	Exhausted(ctx context.Context) bool
}

var ErrQuotaExhausted = errors.New("YouTube daily quota exhausted")

func NewProvider(yt *Service, playlistID string, urls ...string) *Provider {
	return &Provider{
		yt:         yt,
		playlistID: playlistID,
		urls:       urls,
	}
}

// WithQuota makes every load consume one request from the quota
func (p *Provider) WithQuota(quota Quota) *Provider {
	p.quota = quota
	return p
}

// GetVideos implements the playlist.Provider interface
func (p *Provider) GetVideos(ctx context.Context) (models.Videos, error) {

	if p.playlistID == "" && len(p.urls) == 0 {
		return nil, errors.New("no YouTube playlist or video URLs configured")
	}

	if p.quota != nil {
		// Don't count requests that can't go through anyway
		if p.quota.Exhausted(ctx) {
			return nil, ErrQuotaExhausted
		}

		if err := p.quota.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("YouTube quota; %w", err)
		}
	}

	var ids []string
	if p.playlistID != "" {
		playlistIDs, err := p.yt.PlaylistVideoIDs(ctx, p.playlistID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, playlistIDs...)
	}

	urlIDs, invalid := ExtractVideoIDs(p.urls...)
	for _, url := range invalid {
		log.Printf("Skipping '%s', not a YouTube video URL", url)
	}

	// A video is listed once, the first occurrence wins
	for _, id := range urlIDs {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return models.Videos{}, nil
	}

	ytVideos, err := p.yt.ListVideos(ctx, ids...)
	if err != nil {
		return nil, err
	}

	videos := make(models.Videos, len(ytVideos))
	for i, video := range ytVideos {
		videos[i] = p.yt.NewVideo(video)
	}

	return videos, nil
}
