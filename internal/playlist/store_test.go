package playlist

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/video-playlist/internal/models"
)

type fakeProvider struct {
	videos    models.Videos
	err       error
	calls     atomic.Int32
	cancelled atomic.Int32
	started   chan struct{} // if not nil receives a value when GetVideos is entered
	release   chan struct{} // if not nil GetVideos blocks until closed
}

func (p *fakeProvider) GetVideos(ctx context.Context) (models.Videos, error) {
	p.calls.Add(1)
	if p.started != nil {
		p.started <- struct{}{}
	}

	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			p.cancelled.Add(1)
			return nil, ctx.Err()
		}
	}

	return p.videos, p.err
}

func TestNew(t *testing.T) {

	store := New(&fakeProvider{})
	state := store.Snapshot()

	if len(state.Videos) != 0 {
		t.Errorf("got %d videos, want 0", len(state.Videos))
	}

	if state.Active != nil {
		t.Errorf("got active = %v, want nil", state.Active)
	}

	if state.Timers.Total != 0 || len(state.Timers.Items) != 0 {
		t.Errorf("got timers = %+v, want empty", state.Timers)
	}

	if _, ok := store.Episode(); ok {
		t.Error("got an episode on an empty store")
	}
}

func TestLoad(t *testing.T) {

	videos := newVideos()

	store := New(&fakeProvider{videos: videos})
	store.SetTimers(models.Timers{Total: 77, Items: map[int]int{0: 70, 5: 7}})

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("failed to load the store; %v", err)
	}

	state := store.Snapshot()

	if diff := cmp.Diff(videos, state.Videos); diff != "" {
		t.Errorf("videos mismatch (-want +got):\n%s", diff)
	}

	if state.Active != videos[0] {
		t.Errorf("got active = %v, want %v", state.Active, videos[0])
	}

	expected := models.Timers{Total: 77, Items: map[int]int{0: 0, 1: 0, 2: 0}}
	if diff := cmp.Diff(expected, state.Timers); diff != "" {
		t.Errorf("timers mismatch (-want +got):\n%s", diff)
	}

	if episode, ok := store.Episode(); !ok || episode != 1 {
		t.Errorf("got episode = %d (%t), want 1", episode, ok)
	}
}

func TestLoadUnchanged(t *testing.T) {

	videos := newVideos()
	timers := models.Timers{Total: 12, Items: map[int]int{0: 2, 1: 10}}

	tests := []struct {
		name     string
		provider Provider
		wantErr  bool
	}{
		{"empty result", &fakeProvider{videos: models.Videos{}}, false},
		{"nil result", &fakeProvider{}, false},
		{"provider error", &fakeProvider{videos: newVideos(), err: errors.New("boom")}, true},
		{"no provider", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(tt.provider)
			store.SetVideos(videos)
			store.SetActive(videos[1])
			store.SetTimers(timers)
			before := store.Snapshot()

			err := store.Load(context.Background())
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}

			after := store.Snapshot()
			if diff := cmp.Diff(before, after); diff != "" {
				t.Errorf("state changed (-before +after):\n%s", diff)
			}

			if after.Active != videos[1] {
				t.Errorf("active video was replaced")
			}
		})
	}
}

func TestLoadErrorWrapping(t *testing.T) {

	sentinel := errors.New("provider down")
	store := New(&fakeProvider{err: sentinel})

	if err := store.Init(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("got error = %v, want %v", err, sentinel)
	}

	if err := New(nil).Init(context.Background()); !errors.Is(err, ErrNoProvider) {
		t.Errorf("got error = %v, want %v", err, ErrNoProvider)
	}
}

func TestLoadOutlivesCancelledCaller(t *testing.T) {

	provider := &fakeProvider{
		videos:  newVideos(),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	store := New(provider)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() { first <- store.Load(ctx) }()

	// The first caller gives up while the provider request is in flight
	<-provider.started
	cancel()

	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Fatalf("got error = %v for the cancelled caller, want context.Canceled", err)
	}

	second := make(chan error, 1)
	go func() { second <- store.Load(context.Background()) }()
	close(provider.release)

	if err := <-second; err != nil {
		t.Fatalf("got error = %v for the live caller, want nil", err)
	}

	if n := provider.cancelled.Load(); n != 0 {
		t.Errorf("the provider request was cancelled %d times, want 0", n)
	}

	if got := len(store.Videos()); got != 3 {
		t.Errorf("got %d videos, want 3", got)
	}
}

func TestLoadTimeout(t *testing.T) {

	provider := &fakeProvider{videos: newVideos(), release: make(chan struct{})}
	defer close(provider.release)

	store := New(provider)
	store.SetLoadTimeout(10 * time.Millisecond)

	err := store.Load(context.Background())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got error = %v, want context.DeadlineExceeded", err)
	}

	if got := len(store.Videos()); got != 0 {
		t.Errorf("got %d videos after a timed out load, want 0", got)
	}
}

func TestLoadConcurrent(t *testing.T) {

	provider := &fakeProvider{videos: newVideos(), release: make(chan struct{})}
	store := New(provider)

	const callers = 5
	var wg sync.WaitGroup
	errs := make(chan error, callers)

	var started sync.WaitGroup
	started.Add(callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			errs <- store.Init(context.Background())
		}()
	}

	// Let the callers pile up on the in-flight request
	started.Wait()
	for provider.calls.Load() == 0 {
		runtime.Gosched()
	}
	close(provider.release)

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("got error = %v, want nil", err)
		}
	}

	if got := len(store.Videos()); got != 3 {
		t.Errorf("got %d videos, want 3", got)
	}

	// Callers that arrived after the shared request finished may trigger another one
	if calls := provider.calls.Load(); calls < 1 || calls > callers {
		t.Errorf("got %d provider calls", calls)
	}
}

func TestSetters(t *testing.T) {

	videos := newVideos()
	store := New(nil)

	store.SetVideos(videos)
	if got := store.ItemIndex(videos[2]); got != 2 {
		t.Errorf("got index = %d, want 2", got)
	}

	// Any video is accepted, even one outside the list
	stranger := &models.Video{VideoID: "stranger"}
	store.SetActive(stranger)
	if store.Active() != stranger {
		t.Error("active video not replaced")
	}

	if _, ok := store.Episode(); ok {
		t.Error("got an episode for a video outside the list")
	}

	store.SetActive(videos[1])
	if episode, _ := store.Episode(); episode != 2 {
		t.Errorf("got episode = %d, want 2", episode)
	}

	timers := models.Timers{Total: 3, Items: map[int]int{7: 3}}
	store.SetTimers(timers)
	timers.Items[7] = 100 // the store keeps its own copy

	if got := store.Timers().Items[7]; got != 3 {
		t.Errorf("got timer = %d, want 3", got)
	}

	if threshold, ok := store.UnlockThreshold(videos[2]); !ok || threshold != 300 {
		t.Errorf("got threshold = %d (%t), want 300", threshold, ok)
	}

	if video, ok := store.ItemByIndex(0); !ok || video != videos[0] {
		t.Errorf("got %v, want %v", video, videos[0])
	}
}

func TestAddTime(t *testing.T) {

	store := New(&fakeProvider{videos: newVideos()})
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("failed to load the store; %v", err)
	}

	tests := []struct {
		name    string
		index   int
		seconds int
		total   int
		wantErr bool
	}{
		{"first video", 0, 5, 5, false},
		{"same video again", 0, 5, 10, false},
		{"last video", 2, 1, 11, false},
		{"negative index", -1, 1, 11, true},
		{"past the end", 3, 1, 11, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.AddTime(tt.index, tt.seconds)
			if gotErr := err != nil; gotErr != tt.wantErr {
				t.Errorf("got error = %v, want error = %t", err, tt.wantErr)
			}

			if got := store.Timers().Total; got != tt.total {
				t.Errorf("got total = %d, want %d", got, tt.total)
			}
		})
	}

	expected := map[int]int{0: 10, 1: 0, 2: 1}
	if diff := cmp.Diff(expected, store.Timers().Items); diff != "" {
		t.Errorf("timers mismatch (-want +got):\n%s", diff)
	}
}
