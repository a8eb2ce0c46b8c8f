package config

import (
	"fmt"
	"log"
	"math"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
)

// Source names the provider the playlist loads its videos from
type Source string

const (
	YouTube  Source = "youtube"
	Database Source = "database"
)

type Config struct {
	// Running localy or not
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Playlist settings
	VideoSource  Source        `env:"VIDEO_SOURCE" envDefault:"youtube"`
	VideoURLs    []string      `env:"VIDEO_URLS" envSeparator:","`
	LoadTimeout  time.Duration `env:"LOAD_TIMEOUT" envDefault:"30s"`
	CacheVideos  bool          `env:"CACHE_VIDEOS" envDefault:"true"`
	CacheTimeout time.Duration `env:"CACHE_TIMEOUT" envDefault:"3600s"`

	// Google APIs settings
	YouTubeAPIKey     string `env:"YOUTUBE_API_KEY"`
	YouTubePlaylistID string `env:"YOUTUBE_PLAYLIST_ID"`

	// YouTube quota resets at midnight Pacific time
	YouTubeRPD      int64  `env:"YOUTUBE_RPD" envDefault:"500"`
	YouTubeRPM      int64  `env:"YOUTUBE_RPM" envDefault:"10"`
	YouTubeTimezone string `env:"YOUTUBE_TIMEZONE" envDefault:"America/Los_Angeles"`

	// Redis
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Postgres
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBDatabase string `env:"DB_DATABASE" envDefault:"playlist"`
	DBUsername string `env:"DB_USERNAME" envDefault:"playlist"`
	DBPassword string `env:"DB_PASSWORD"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"4"`

	// Local app host and port
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"5000"`
}

// New creates new config object
func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	return cfg
}

// Parse reads the config from the environment and validates it
func Parse() (*Config, error) {

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	numCPU := runtime.NumCPU()
	if numCPU > math.MaxInt32 || numCPU < math.MinInt32 {
		return nil, fmt.Errorf("failed to get proper CPU cores count: %d", numCPU)
	}

	// Raise DBMaxConns to at least the number of cores
	cfg.DBMaxConns = max(cfg.DBMaxConns, int32(numCPU))

	if err := cfg.VideoSource.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the source is a known one
func (s Source) Validate() error {
	switch s {
	case YouTube, Database:
		return nil
	default:
		return fmt.Errorf("unknown video source '%s'", s)
	}
}
