package playlist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vlatan/video-playlist/internal/config"
	"github.com/vlatan/video-playlist/internal/models"
	playlistStore "github.com/vlatan/video-playlist/internal/playlist"
	"github.com/vlatan/video-playlist/internal/ui"
)

type stubProvider struct {
	videos models.Videos
	err    error
}

func (sp *stubProvider) GetVideos(ctx context.Context) (models.Videos, error) {
	return sp.videos, sp.err
}

type stubCache struct {
	invalidated int
}

func (sc *stubCache) Invalidate(ctx context.Context) error {
	sc.invalidated++
	return nil
}

func testVideos() models.Videos {
	return models.Videos{
		{VideoID: "dQw4w9WgXcQ", Title: "First", VideoTime: 10},
		{VideoID: "9bZkp7q19f0", Title: "Second", VideoTime: 20},
		{VideoID: "kJQP7kiw5Fk", Title: "Third", VideoTime: 30},
	}
}

// newTestService creates a handler service with a loaded store
func newTestService(t *testing.T, provider playlistStore.Provider) *Service {
	t.Helper()

	store := playlistStore.New(provider)
	if provider != nil {
		if err := store.Load(context.Background()); err != nil {
			t.Fatalf("failed to load the store; %v", err)
		}
	}

	cfg := &config.Config{LoadTimeout: time.Second}
	return New(store, nil, ui.New(), cfg)
}

// serve runs the handler on a request with the given path values
func serve(
	handler http.HandlerFunc,
	method, target, body string,
	pathValues map[string]string,
) *httptest.ResponseRecorder {

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode body %q; %v", rec.Body.String(), err)
	}
	return v
}

func TestVideosHandler(t *testing.T) {

	t.Run("loaded", func(t *testing.T) {
		s := newTestService(t, &stubProvider{videos: testVideos()})
		rec := serve(s.VideosHandler, http.MethodGet, "/api/videos", "", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}

		got := decode[models.Videos](t, rec)
		if diff := cmp.Diff(testVideos(), got); diff != "" {
			t.Errorf("videos mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty", func(t *testing.T) {
		s := newTestService(t, nil)
		rec := serve(s.VideosHandler, http.MethodGet, "/api/videos", "", nil)

		if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
			t.Errorf("got body %s, want []", got)
		}
	})
}

func TestVideoHandler(t *testing.T) {
	tests := []struct {
		name       string
		index      string
		wantStatus int
		wantID     string
	}{
		{"first", "0", http.StatusOK, "dQw4w9WgXcQ"},
		{"last", "2", http.StatusOK, "kJQP7kiw5Fk"},
		{"out of range", "3", http.StatusNotFound, ""},
		{"negative", "-1", http.StatusBadRequest, ""},
		{"not a number", "abc", http.StatusBadRequest, ""},
	}

	s := newTestService(t, &stubProvider{videos: testVideos()})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s.VideoHandler, http.MethodGet, "/api/videos/"+tt.index, "",
				map[string]string{"index": tt.index})

			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			if got := decode[models.Video](t, rec); got.VideoID != tt.wantID {
				t.Errorf("got video %q, want %q", got.VideoID, tt.wantID)
			}
		})
	}
}

func TestVideoIndexHandler(t *testing.T) {
	tests := []struct {
		name  string
		video string
		want  int
	}{
		{"first", "dQw4w9WgXcQ", 0},
		{"third", "kJQP7kiw5Fk", 2},
		{"unknown", "aaaaaaaaaaa", -1},
	}

	s := newTestService(t, &stubProvider{videos: testVideos()})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s.VideoIndexHandler, http.MethodGet, "/api/videos/"+tt.video+"/index", "",
				map[string]string{"video": tt.video})

			if got := decode[indexResponse](t, rec); got.Index != tt.want {
				t.Errorf("got index %d, want %d", got.Index, tt.want)
			}
		})
	}
}

func TestUnlockHandler(t *testing.T) {
	tests := []struct {
		name       string
		video      string
		wantStatus int
		want       int
	}{
		{"first unlocks at zero", "dQw4w9WgXcQ", http.StatusOK, 0},
		{"second", "9bZkp7q19f0", http.StatusOK, 10},
		{"third", "kJQP7kiw5Fk", http.StatusOK, 30},
		{"unknown", "aaaaaaaaaaa", http.StatusNotFound, 0},
	}

	s := newTestService(t, &stubProvider{videos: testVideos()})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s.UnlockHandler, http.MethodGet, "/api/videos/"+tt.video+"/unlock", "",
				map[string]string{"video": tt.video})

			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			if got := decode[unlockResponse](t, rec); got.Unlock != tt.want {
				t.Errorf("got unlock %d, want %d", got.Unlock, tt.want)
			}
		})
	}
}

func TestSetActiveHandler(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantActive  string
		wantEpisode int
	}{
		{"by index", `{"index": 1}`, http.StatusOK, "9bZkp7q19f0", 2},
		{"by video ID", `{"video_id": "kJQP7kiw5Fk"}`, http.StatusOK, "kJQP7kiw5Fk", 3},
		{"index out of range", `{"index": 5}`, http.StatusNotFound, "dQw4w9WgXcQ", 1},
		{"unknown video ID", `{"video_id": "aaaaaaaaaaa"}`, http.StatusNotFound, "dQw4w9WgXcQ", 1},
		{"both targets", `{"index": 1, "video_id": "kJQP7kiw5Fk"}`, http.StatusBadRequest, "dQw4w9WgXcQ", 1},
		{"no target", `{}`, http.StatusBadRequest, "dQw4w9WgXcQ", 1},
		{"malformed", `{"index":`, http.StatusBadRequest, "dQw4w9WgXcQ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, &stubProvider{videos: testVideos()})
			rec := serve(s.SetActiveHandler, http.MethodPut, "/api/active", tt.body, nil)

			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			active := decode[models.Video](t,
				serve(s.ActiveHandler, http.MethodGet, "/api/active", "", nil))
			if active.VideoID != tt.wantActive {
				t.Errorf("got active %q, want %q", active.VideoID, tt.wantActive)
			}

			episode := decode[episodeResponse](t,
				serve(s.EpisodeHandler, http.MethodGet, "/api/episode", "", nil))
			if episode.Episode == nil || *episode.Episode != tt.wantEpisode {
				t.Errorf("got episode %v, want %d", episode.Episode, tt.wantEpisode)
			}
		})
	}
}

func TestEpisodeHandlerEmpty(t *testing.T) {
	s := newTestService(t, nil)
	rec := serve(s.EpisodeHandler, http.MethodGet, "/api/episode", "", nil)

	if got, want := strings.TrimSpace(rec.Body.String()), `{"episode":null}`; got != want {
		t.Errorf("got body %s, want %s", got, want)
	}

	rec = serve(s.ActiveHandler, http.MethodGet, "/api/active", "", nil)
	if got := strings.TrimSpace(rec.Body.String()); got != "null" {
		t.Errorf("got active %s, want null", got)
	}
}

func TestTimersHandlers(t *testing.T) {
	s := newTestService(t, &stubProvider{videos: testVideos()})

	got := decode[models.Timers](t, serve(s.TimersHandler, http.MethodGet, "/api/timers", "", nil))
	if diff := cmp.Diff(models.NewTimers(0, 3), got); diff != "" {
		t.Errorf("initial timers mismatch (-want +got):\n%s", diff)
	}

	rec := serve(s.SetTimersHandler, http.MethodPut, "/api/timers",
		`{"total": 15, "0": 10, "1": 5, "2": 0}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}

	want := models.Timers{Total: 15, Items: map[int]int{0: 10, 1: 5, 2: 0}}
	got = decode[models.Timers](t, serve(s.TimersHandler, http.MethodGet, "/api/timers", "", nil))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("replaced timers mismatch (-want +got):\n%s", diff)
	}

	rec = serve(s.SetTimersHandler, http.MethodPut, "/api/timers", `{"total": 1, "x": 2}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d for an invalid key, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAddTimeHandler(t *testing.T) {
	tests := []struct {
		name       string
		index      string
		body       string
		wantStatus int
		want       models.Timers
	}{
		{
			name:       "adds to the item and the total",
			index:      "1",
			body:       `{"seconds": 4}`,
			wantStatus: http.StatusOK,
			want:       models.Timers{Total: 4, Items: map[int]int{0: 0, 1: 4, 2: 0}},
		},
		{"out of range", "7", `{"seconds": 4}`, http.StatusNotFound, models.Timers{}},
		{"negative seconds", "0", `{"seconds": -4}`, http.StatusBadRequest, models.Timers{}},
		{"bad index", "x", `{"seconds": 4}`, http.StatusBadRequest, models.Timers{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService(t, &stubProvider{videos: testVideos()})
			rec := serve(s.AddTimeHandler, http.MethodPost, "/api/timers/"+tt.index, tt.body,
				map[string]string{"index": tt.index})

			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			if diff := cmp.Diff(tt.want, decode[models.Timers](t, rec)); diff != "" {
				t.Errorf("timers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadHandler(t *testing.T) {

	t.Run("success", func(t *testing.T) {
		provider := &stubProvider{}
		s := newTestService(t, provider)
		cache := &stubCache{}
		s.cache = cache

		provider.videos = testVideos()
		rec := serve(s.LoadHandler, http.MethodPost, "/api/load?refresh=true", "", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
		}

		if got := decode[loadResponse](t, rec); got.Videos != 3 {
			t.Errorf("got %d videos, want 3", got.Videos)
		}

		if cache.invalidated != 1 {
			t.Errorf("cache invalidated %d times, want 1", cache.invalidated)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		provider := &stubProvider{videos: testVideos()}
		s := newTestService(t, provider)

		provider.err = errors.New("quota exceeded")
		rec := serve(s.LoadHandler, http.MethodPost, "/api/load", "", nil)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusBadGateway)
		}

		if got := len(s.store.Videos()); got != 3 {
			t.Errorf("got %d videos after a failed load, want 3", got)
		}
	})

	t.Run("no provider", func(t *testing.T) {
		s := newTestService(t, nil)
		rec := serve(s.LoadHandler, http.MethodPost, "/api/load", "", nil)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("got status %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestVideoIDHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantStatus int
		want       string
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", http.StatusOK, "dQw4w9WgXcQ"},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", http.StatusOK, "dQw4w9WgXcQ"},
		{"not a video", "https://example.com/page", http.StatusNotFound, ""},
		{"missing", "", http.StatusBadRequest, ""},
	}

	s := newTestService(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/video-id", nil)
			q := req.URL.Query()
			if tt.url != "" {
				q.Set("url", tt.url)
			}
			req.URL.RawQuery = q.Encode()

			rec := httptest.NewRecorder()
			s.VideoIDHandler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantStatus != http.StatusOK {
				return
			}

			if got := decode[videoIDResponse](t, rec); got.VideoID != tt.want {
				t.Errorf("got video ID %q, want %q", got.VideoID, tt.want)
			}
		})
	}
}
