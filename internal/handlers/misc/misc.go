package misc

import (
	"github.com/vlatan/video-playlist/internal/config"
	"github.com/vlatan/video-playlist/internal/drivers/database"
	"github.com/vlatan/video-playlist/internal/drivers/rdb"
	"github.com/vlatan/video-playlist/internal/ui"
)

type Service struct {
	config *config.Config
	db     database.Service // Can be nil
	rdb    *rdb.Service     // Can be nil
	ui     ui.Service
}

func New(config *config.Config, db database.Service, rdb *rdb.Service, ui ui.Service) *Service {
	return &Service{
		config: config,
		db:     db,
		rdb:    rdb,
		ui:     ui,
	}
}
