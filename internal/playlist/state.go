// Package playlist holds the playlist state: the ordered videos,
// the active video and the per-video watch timers.
package playlist

import (
	"slices"

	"github.com/vlatan/video-playlist/internal/models"
)

// State is a snapshot of the playlist.
// The query functions below are pure and only read the snapshot.
type State struct {
	Videos models.Videos
	Active *models.Video // nil if nothing selected
	Timers models.Timers
}

// ItemIndex returns the zero-based position of the item in the list,
// -1 if the item is nil or not in the list.
// Items are compared by reference, the first match wins.
func ItemIndex(s State, item *models.Video) int {
	if item == nil {
		return -1
	}
	return slices.Index(s.Videos, item)
}

// ItemByIndex returns the video at position i
func ItemByIndex(s State, i int) (*models.Video, bool) {
	if i < 0 || i >= len(s.Videos) {
		return nil, false
	}
	return s.Videos[i], true
}

// Episode returns the 1-based position of the active video,
// false if there's no active video or it's not in the list.
func Episode(s State) (int, bool) {
	idx := ItemIndex(s, s.Active)
	if idx == -1 {
		return 0, false
	}
	return idx + 1, true
}

// UnlockThreshold returns the cumulative playback duration
// of all the videos before the item. A video unlocks
// once that many seconds of the playlist have been watched.
func UnlockThreshold(s State, item *models.Video) (int, bool) {
	idx := ItemIndex(s, item)
	if idx == -1 {
		return 0, false
	}

	var total int
	for _, video := range s.Videos[:idx] {
		total += video.VideoTime
	}

	return total, true
}

// FindByVideoID returns the first video in the list with the given video ID
func FindByVideoID(s State, videoID string) (*models.Video, bool) {
	idx := slices.IndexFunc(s.Videos, func(v *models.Video) bool {
		return v != nil && v.VideoID == videoID
	})

	if idx == -1 {
		return nil, false
	}

	return s.Videos[idx], true
}
