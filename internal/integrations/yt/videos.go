package yt

import (
	"context"
	"errors"
	"html"
	"log"
	"strings"
	"time"

	"github.com/vlatan/video-playlist/internal/models"
	"github.com/vlatan/video-playlist/internal/utils"
	"google.golang.org/api/youtube/v3"
)

// The API accepts at most 50 IDs per request
const maxResults = 50

var retryConfig = utils.RetryConfig{
	MaxRetries: 3,
	MaxJitter:  time.Second,
	Delay:      time.Second,
}

// ListVideos gets YouTube videos metadata, provided video IDs.
// The result follows the order of the IDs, unknown IDs are skipped.
func (s *Service) ListVideos(ctx context.Context, videoIDs ...string) ([]*youtube.Video, error) {

	found := make(map[string]*youtube.Video, len(videoIDs))
	part := []string{"snippet", "contentDetails"}

	for start := 0; start < len(videoIDs); start += maxResults {
		batch := videoIDs[start:min(start+maxResults, len(videoIDs))]

		response, err := utils.Retry(ctx, retryConfig, func() (*youtube.VideoListResponse, error) {
			return s.youtube.Videos.List(part).Id(batch...).Context(ctx).Do()
		})

		if err != nil {
			log.Printf("unable to get a response from YouTube: %v", err)
			return nil, err
		}

		for _, video := range response.Items {
			found[video.Id] = video
		}
	}

	videos := make([]*youtube.Video, 0, len(found))
	for _, id := range videoIDs {
		if video, ok := found[id]; ok {
			videos = append(videos, video)
		}
	}

	if len(videos) == 0 && len(videoIDs) > 0 {
		return nil, errors.New("could not fetch a result from YouTube")
	}

	return videos, nil
}

// PlaylistVideoIDs gets the IDs of all the videos in a playlist, in playlist order
func (s *Service) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {

	var ids []string
	call := s.youtube.PlaylistItems.
		List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults)

	err := call.Pages(ctx, func(response *youtube.PlaylistItemListResponse) error {
		for _, item := range response.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				ids = append(ids, item.ContentDetails.VideoId)
			}
		}
		return nil
	})

	if err != nil {
		log.Printf("unable to get the items of playlist '%s': %v", playlistID, err)
		return nil, err
	}

	return ids, nil
}

// NewVideo creates a playlist video from YouTube metadata
func (s *Service) NewVideo(video *youtube.Video) *models.Video {

	v := &models.Video{VideoID: video.Id}

	if video.Snippet != nil {
		v.Title = s.sanitize(video.Snippet.Title)
		v.Description = s.sanitize(video.Snippet.Description)

		if thumbs := video.Snippet.Thumbnails; thumbs != nil {
			v.Thumbnail = (&models.Thumbnails{
				Default:  thumbs.Default,
				Medium:   thumbs.Medium,
				High:     thumbs.High,
				Standard: thumbs.Standard,
				Maxres:   thumbs.Maxres,
			}).MaxThumb()
		}
	}

	if video.ContentDetails != nil {
		v.Duration = models.ISO8601Duration(video.ContentDetails.Duration)
		seconds, err := v.Duration.Seconds()
		if err != nil {
			log.Printf("video '%s' has invalid duration: %v", video.Id, err)
		}
		v.VideoTime = seconds
	}

	return v
}

// sanitize strips any markup, the text is served as plain JSON
func (s *Service) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}
