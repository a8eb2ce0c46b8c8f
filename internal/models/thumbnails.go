package models

import (
	"google.golang.org/api/youtube/v3"
)

type Thumbnail = youtube.Thumbnail

type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// MaxThumb returns the widest available thumbnail, nil if none
func (t *Thumbnails) MaxThumb() *Thumbnail {
	if t == nil {
		return nil
	}

	var maxThumb *Thumbnail
	for _, thumb := range []*Thumbnail{t.Default, t.Medium, t.High, t.Standard, t.Maxres} {
		if thumb != nil && (maxThumb == nil || thumb.Width > maxThumb.Width) {
			maxThumb = thumb
		}
	}

	return maxThumb
}
