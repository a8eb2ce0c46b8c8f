// Package worker syncs the YouTube playlist into the database
// so the app can serve it with the database video source.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vlatan/video-playlist/internal/models"
	"github.com/vlatan/video-playlist/internal/playlist"
)

// VideoStore persists the synced videos
type VideoStore interface {
	InsertVideo(ctx context.Context, video *models.Video, position int) (int64, error)
	DeleteVideosExcept(ctx context.Context, videoIDs []string) (int64, error)
}

// Invalidator drops cached provider data
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	source playlist.Provider
	store  VideoStore
	cache  Invalidator // Can be nil
}

// Result summarizes a sync run
type Result struct {
	Upserted int
	Deleted  int64
}

func New(source playlist.Provider, store VideoStore, cache Invalidator) *Service {
	return &Service{
		source: source,
		store:  store,
		cache:  cache,
	}
}

// Run the worker
func (s *Service) Run(ctx context.Context) (Result, error) {

	var result Result
	log.Println("Worker running...")

	log.Println("Fetching videos from YouTube...")
	videos, err := s.source.GetVideos(ctx)
	if err != nil {
		return result, fmt.Errorf("could not fetch the videos from YouTube; %w", err)
	}

	// Never wipe the DB because of an empty upstream
	if len(videos) == 0 {
		return result, errors.New("fetched ZERO videos from YouTube")
	}

	log.Printf("Fetched %d videos from YouTube", len(videos))

	videoIDs := make([]string, 0, len(videos))
	for i, video := range videos {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if _, err := s.store.InsertVideo(ctx, video, i); err != nil {
			return result, fmt.Errorf("could not upsert video '%s' in DB; %w", video.VideoID, err)
		}

		videoIDs = append(videoIDs, video.VideoID)
		result.Upserted++
	}

	log.Println("Removing the videos no longer in the playlist...")
	result.Deleted, err = s.store.DeleteVideosExcept(ctx, videoIDs)
	if err != nil {
		return result, fmt.Errorf("could not delete the stale videos from DB; %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("Failed to invalidate the cached videos; %v", err)
		}
	}

	log.Printf("Upserted %d and deleted %d videos", result.Upserted, result.Deleted)
	return result, nil
}
