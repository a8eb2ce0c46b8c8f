package playlist

import (
	"errors"

	"github.com/vlatan/video-playlist/internal/models"
	playlistStore "github.com/vlatan/video-playlist/internal/playlist"
)

var (
	errAmbiguousTarget = errors.New("provide either an index or a video ID")
	errNegativeSeconds = errors.New("seconds must not be negative")
)

// Body of PUT /api/active
type activeRequest struct {
	Index   *int    `json:"index,omitempty"`
	VideoID *string `json:"video_id,omitempty"`
}

func (ar activeRequest) validate() error {
	if (ar.Index == nil) == (ar.VideoID == nil) {
		return errAmbiguousTarget
	}
	return nil
}

// resolve finds the requested video in the snapshot
func (ar activeRequest) resolve(s playlistStore.State) (*models.Video, bool) {
	if ar.Index != nil {
		return playlistStore.ItemByIndex(s, *ar.Index)
	}
	return playlistStore.FindByVideoID(s, *ar.VideoID)
}

// Body of POST /api/timers/{index}
type addTimeRequest struct {
	Seconds int `json:"seconds"`
}

func (atr addTimeRequest) validate() error {
	if atr.Seconds < 0 {
		return errNegativeSeconds
	}
	return nil
}

type indexResponse struct {
	Index int `json:"index"`
}

type unlockResponse struct {
	Unlock int `json:"unlock"`
}

type episodeResponse struct {
	Episode *int `json:"episode"`
}

type loadResponse struct {
	Videos int `json:"videos"`
}

type videoIDResponse struct {
	VideoID string `json:"video_id"`
}
