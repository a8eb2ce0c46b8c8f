package yt

import (
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"
	"github.com/vlatan/video-playlist/internal/config"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type Service struct {
	config  *config.Config
	youtube *youtube.Service
	policy  *bluemonday.Policy
}

// Create new YouTube service
func New(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*Service, error) {

	if cfg == nil {
		return nil, errors.New("unable to create YouTube service with nil config")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.YouTubeAPIKey)}, opts...)
	youtube, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		config:  cfg,
		youtube: youtube,
		policy:  bluemonday.StrictPolicy(),
	}, nil
}
