package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/vlatan/video-playlist/internal/drivers/database"
	"github.com/vlatan/video-playlist/internal/models"
)

type Repository struct {
	db database.Service
}

func New(db database.Service) *Repository {
	return &Repository{db: db}
}

// GetVideos gets the playlist from DB in position order.
// Implements the playlist.Provider interface.
func (r *Repository) GetVideos(ctx context.Context) (models.Videos, error) {

	rows, err := r.db.Query(ctx, getVideosQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	videos := models.Videos{}
	for rows.Next() {
		var video models.Video

		var (
			duration    string
			description *string // Nullable columns in the DB need pointers for the scan
			thumbnail   []byte
		)

		if err := rows.Scan(
			&video.VideoID,
			&video.Title,
			&description,
			&thumbnail,
			&duration,
		); err != nil {
			return nil, err
		}

		if description != nil {
			video.Description = *description
		}

		if len(thumbnail) > 0 {
			video.Thumbnail = &models.Thumbnail{}
			if err := json.Unmarshal(thumbnail, video.Thumbnail); err != nil {
				return nil, fmt.Errorf("video ID '%s': %w", video.VideoID, err)
			}
		}

		video.Duration = models.ISO8601Duration(duration)
		seconds, err := video.Duration.Seconds()
		if err != nil {
			log.Printf("video '%s' has invalid duration: %v", video.VideoID, err)
		}
		video.VideoTime = seconds

		videos = append(videos, &video)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return videos, nil
}

// InsertVideo inserts or updates a video at the given playlist position
func (r *Repository) InsertVideo(ctx context.Context, video *models.Video, position int) (int64, error) {

	var thumbnail []byte
	if video.Thumbnail != nil {
		var err error
		if thumbnail, err = json.Marshal(video.Thumbnail); err != nil {
			return 0, err
		}
	}

	return r.db.Exec(
		ctx,
		insertVideoQuery,
		video.VideoID,
		video.Title,
		video.Description,
		thumbnail,
		string(video.Duration),
		position,
	)
}

// DeleteVideosExcept removes every video whose ID is not in the list
func (r *Repository) DeleteVideosExcept(ctx context.Context, videoIDs []string) (int64, error) {
	if videoIDs == nil {
		videoIDs = []string{}
	}
	return r.db.Exec(ctx, deleteVideosExceptQuery, videoIDs)
}
