package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vlatan/video-playlist/internal/config"
	"github.com/vlatan/video-playlist/internal/drivers/database"
	"github.com/vlatan/video-playlist/internal/drivers/rdb"
	"github.com/vlatan/video-playlist/internal/integrations/yt"
	"github.com/vlatan/video-playlist/internal/providers"
	"github.com/vlatan/video-playlist/internal/repositories/videos"
	"github.com/vlatan/video-playlist/internal/worker"
)

func main() {

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load the .env file; %v", err)
	}

	// Listen for interruption signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.New()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("couldn't create DB service; %v", err)
	}
	defer db.Close()

	yts, err := yt.New(ctx, cfg)
	if err != nil {
		log.Fatalf("couldn't create YouTube service: %v", err)
	}

	// The app caches whatever it loaded, drop it after the sync
	var cache worker.Invalidator
	if cfg.CacheVideos {
		rs, err := rdb.New(cfg)
		if err != nil {
			log.Fatalf("couldn't create Redis service; %v", err)
		}
		defer rs.Close()
		cache = providers.NewCached(nil, rs, providers.CacheKey, cfg.CacheTimeout)
	}

	source := yt.NewProvider(yts, cfg.YouTubePlaylistID, cfg.VideoURLs...)
	if _, err := worker.New(source, videos.New(db), cache).Run(ctx); err != nil {
		log.Println(err)
	}
}
