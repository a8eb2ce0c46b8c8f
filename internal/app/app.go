package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vlatan/video-playlist/internal/config"
	"github.com/vlatan/video-playlist/internal/drivers/database"
	"github.com/vlatan/video-playlist/internal/drivers/rdb"
	"github.com/vlatan/video-playlist/internal/handlers/misc"
	playlistHandlers "github.com/vlatan/video-playlist/internal/handlers/playlist"
	"github.com/vlatan/video-playlist/internal/integrations/yt"
	"github.com/vlatan/video-playlist/internal/middlewares"
	"github.com/vlatan/video-playlist/internal/playlist"
	"github.com/vlatan/video-playlist/internal/providers"
	"github.com/vlatan/video-playlist/internal/ui"
)

type App struct {
	playlist *playlistHandlers.Service
	misc     *misc.Service
	mw       *middlewares.Service
	store    *playlist.Store
	cleanup  func() error
	server   *http.Server
}

// New creates the app with every service it needs,
// loads the playlist and registers the routes
func New() *App {

	// Init config
	cfg := config.New()
	ctx := context.Background()

	// Create database service, only needed as a video source
	var db database.Service
	if cfg.VideoSource == config.Database {
		var err error
		if db, err = database.New(cfg); err != nil {
			log.Fatalf("couldn't create DB service; %v", err)
		}
	}

	// Create Redis service, only needed for caching
	var rs *rdb.Service
	if cfg.CacheVideos {
		var err error
		if rs, err = rdb.New(cfg); err != nil {
			log.Fatalf("couldn't create Redis service; %v", err)
		}
	}

	// Create YouTube service, only needed as a video source
	var yts *yt.Service
	if cfg.VideoSource == config.YouTube {
		var err error
		if yts, err = yt.New(ctx, cfg); err != nil {
			log.Fatalf("couldn't create YouTube service: %v", err)
		}
	}

	provider, err := providers.New(cfg, db, yts, rs)
	if err != nil {
		log.Fatalf("couldn't create the video provider: %v", err)
	}

	// Only the Redis decorator can be invalidated
	var cache playlistHandlers.Invalidator
	if cached, ok := provider.(*providers.Cached); ok {
		cache = cached
	}

	store := playlist.New(provider)
	store.SetLoadTimeout(cfg.LoadTimeout)

	// The app can serve an empty playlist and reload it later
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()
	if err := store.Init(loadCtx); err != nil {
		log.Printf("Initial playlist load failed; %v", err)
	}

	ui := ui.New()

	a := &App{
		playlist: playlistHandlers.New(store, cache, ui, cfg),
		misc:     misc.New(cfg, db, rs, ui),
		mw:       middlewares.New(ui, cfg),
		store:    store,
		cleanup: func() error {
			var errs []error
			if db != nil {
				db.Close()
			}
			if rs != nil {
				errs = append(errs, rs.Close())
			}
			return errors.Join(errs...)
		},
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.LoadTimeout + 10*time.Second,
		},
	}

	return a.RegisterRoutes()
}
