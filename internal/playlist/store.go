package playlist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/vlatan/video-playlist/internal/models"

	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a provider request shared by concurrent loads
const DefaultLoadTimeout = 30 * time.Second

var (
	ErrNoProvider = errors.New("no video provider configured")
	ErrOutOfRange = errors.New("playlist index out of range")
)

// Provider supplies the ordered list of videos
type Provider interface {
	GetVideos(ctx context.Context) (models.Videos, error)
}

// Store is the single source of truth for the playlist.
// It's safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	state       State
	provider    Provider
	group       singleflight.Group
	loadTimeout time.Duration
}

// New creates an empty store backed by the provider
func New(provider Provider) *Store {
	return &Store{
		provider:    provider,
		state:       State{Timers: models.NewTimers(0, 0)},
		loadTimeout: DefaultLoadTimeout,
	}
}

// SetLoadTimeout changes the provider request timeout, non-positive values are ignored
func (s *Store) SetLoadTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadTimeout = timeout
}

// Snapshot returns a copy of the current state.
// The videos are shared, the list and the timers are not.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Videos: slices.Clone(s.state.Videos),
		Active: s.state.Active,
		Timers: s.state.Timers.Clone(),
	}
}

func (s *Store) Videos() models.Videos {
	return s.Snapshot().Videos
}

func (s *Store) Active() *models.Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Active
}

func (s *Store) Timers() models.Timers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Timers.Clone()
}

func (s *Store) Episode() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Episode(s.state)
}

func (s *Store) ItemByIndex(i int) (*models.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ItemByIndex(s.state, i)
}

func (s *Store) ItemIndex(item *models.Video) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ItemIndex(s.state, item)
}

func (s *Store) UnlockThreshold(item *models.Video) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return UnlockThreshold(s.state, item)
}

// SetVideos replaces the video list.
// The active video and the timers are left as they are.
func (s *Store) SetVideos(videos models.Videos) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Videos = videos
}

// SetActive replaces the active video, nil clears the selection.
// It's up to the caller to pass a video from the list.
func (s *Store) SetActive(video *models.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Active = video
}

// SetTimers replaces the timers wholesale
func (s *Store) SetTimers(timers models.Timers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Timers = timers.Clone()
}

// AddTime adds watched seconds to the video at index i and to the total
func (s *Store) AddTime(i, seconds int) (models.Timers, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.state.Videos) {
		return models.Timers{}, ErrOutOfRange
	}

	timers := s.state.Timers.Clone()
	if timers.Items == nil {
		timers.Items = make(map[int]int)
	}

	timers.Items[i] += seconds
	timers.Total += seconds
	s.state.Timers = timers

	return timers.Clone(), nil
}

// Load fetches the videos from the provider.
// On a non-empty result the list is replaced, every index gets a fresh zero timer,
// the total is carried over and the first video becomes active.
// An empty result leaves the state untouched.
// Concurrent calls share a single provider request. That request outlives
// the caller who started it and is bounded by the store load timeout,
// each caller stops waiting when its own context is done.
func (s *Store) Load(ctx context.Context) error {

	if s.provider == nil {
		return ErrNoProvider
	}

	s.mu.RLock()
	timeout := s.loadTimeout
	s.mu.RUnlock()

	ch := s.group.DoChan("load", func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		videos, err := s.provider.GetVideos(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to load the videos; %w", err)
		}

		if len(videos) == 0 {
			log.Println("The provider returned no videos, playlist unchanged")
			return nil, nil
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.state.Videos = videos
		s.state.Timers = models.NewTimers(s.state.Timers.Total, len(videos))
		s.state.Active = videos[0]

		log.Printf("Loaded %d videos into the playlist", len(videos))
		return nil, nil
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// Init loads the playlist once on application startup
func (s *Store) Init(ctx context.Context) error {
	return s.Load(ctx)
}
