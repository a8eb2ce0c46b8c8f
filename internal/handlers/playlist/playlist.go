// Package playlist exposes the playlist store over a JSON API.
package playlist

import (
	"context"

	"github.com/vlatan/video-playlist/internal/config"
	playlistStore "github.com/vlatan/video-playlist/internal/playlist"
	"github.com/vlatan/video-playlist/internal/ui"
)

// Invalidator drops cached provider data
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	store  *playlistStore.Store
	cache  Invalidator // Can be nil
	ui     ui.Service
	config *config.Config
}

func New(
	store *playlistStore.Store,
	cache Invalidator,
	ui ui.Service,
	config *config.Config,
) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		ui:     ui,
		config: config,
	}
}
