package playlist

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/vlatan/video-playlist/internal/integrations/yt"
	"github.com/vlatan/video-playlist/internal/models"
	playlistStore "github.com/vlatan/video-playlist/internal/playlist"
	"github.com/vlatan/video-playlist/internal/utils"
)

// Handle the whole list of videos
func (s *Service) VideosHandler(w http.ResponseWriter, r *http.Request) {
	videos := s.store.Videos()
	if videos == nil {
		videos = models.Videos{}
	}
	s.ui.WriteJSON(w, r, videos)
}

// Handle a single video addressed by its index
func (s *Service) VideoHandler(w http.ResponseWriter, r *http.Request) {

	i, err := utils.ParseIndex(r.PathValue("index"))
	if err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	video, ok := s.store.ItemByIndex(i)
	if !ok {
		utils.HttpError(w, http.StatusNotFound)
		return
	}

	s.ui.WriteJSON(w, r, video)
}

// Handle the index of a video, -1 if it's not in the playlist
func (s *Service) VideoIndexHandler(w http.ResponseWriter, r *http.Request) {
	state := s.store.Snapshot()
	video, _ := playlistStore.FindByVideoID(state, r.PathValue("video"))
	s.ui.WriteJSON(w, r, indexResponse{Index: playlistStore.ItemIndex(state, video)})
}

// Handle the seconds that need to be watched before the video unlocks
func (s *Service) UnlockHandler(w http.ResponseWriter, r *http.Request) {

	state := s.store.Snapshot()
	video, _ := playlistStore.FindByVideoID(state, r.PathValue("video"))

	threshold, ok := playlistStore.UnlockThreshold(state, video)
	if !ok {
		utils.HttpError(w, http.StatusNotFound)
		return
	}

	s.ui.WriteJSON(w, r, unlockResponse{Unlock: threshold})
}

// Handle the active video, null if there is none
func (s *Service) ActiveHandler(w http.ResponseWriter, r *http.Request) {
	s.ui.WriteJSON(w, r, s.store.Active())
}

// Handle switching the active video
func (s *Service) SetActiveHandler(w http.ResponseWriter, r *http.Request) {

	var req activeRequest
	if err := s.ui.DecodeJSON(w, r, &req); err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	if err := req.validate(); err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	video, ok := req.resolve(s.store.Snapshot())
	if !ok {
		utils.HttpError(w, http.StatusNotFound)
		return
	}

	s.store.SetActive(video)
	s.ui.WriteJSON(w, r, video)
}

// Handle the 1-based episode number of the active video
func (s *Service) EpisodeHandler(w http.ResponseWriter, r *http.Request) {
	var res episodeResponse
	if episode, ok := s.store.Episode(); ok {
		res.Episode = &episode
	}
	s.ui.WriteJSON(w, r, res)
}

// Handle the timer map
func (s *Service) TimersHandler(w http.ResponseWriter, r *http.Request) {
	s.ui.WriteJSON(w, r, s.store.Timers())
}

// Handle replacing the timer map wholesale
func (s *Service) SetTimersHandler(w http.ResponseWriter, r *http.Request) {

	var timers models.Timers
	if err := s.ui.DecodeJSON(w, r, &timers); err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	s.store.SetTimers(timers)
	s.ui.WriteJSON(w, r, s.store.Timers())
}

// Handle adding watched seconds to a video
func (s *Service) AddTimeHandler(w http.ResponseWriter, r *http.Request) {

	i, err := utils.ParseIndex(r.PathValue("index"))
	if err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	var req addTimeRequest
	if err := s.ui.DecodeJSON(w, r, &req); err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	if err := req.validate(); err != nil {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	timers, err := s.store.AddTime(i, req.Seconds)
	if errors.Is(err, playlistStore.ErrOutOfRange) {
		utils.HttpError(w, http.StatusNotFound)
		return
	}

	if err != nil {
		log.Printf("Failed to add time to video %d; %v", i, err)
		utils.HttpError(w, http.StatusInternalServerError)
		return
	}

	s.ui.WriteJSON(w, r, timers)
}

// Handle (re)loading the playlist from the provider.
// With ?refresh=true the cached videos are dropped first.
func (s *Service) LoadHandler(w http.ResponseWriter, r *http.Request) {

	ctx, cancel := context.WithTimeout(r.Context(), s.config.LoadTimeout)
	defer cancel()

	if r.URL.Query().Get("refresh") == "true" && s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("Failed to invalidate the cached videos; %v", err)
		}
	}

	err := s.store.Load(ctx)
	if errors.Is(err, playlistStore.ErrNoProvider) {
		utils.HttpError(w, http.StatusServiceUnavailable)
		return
	}

	if err != nil {
		log.Println(err)
		utils.HttpError(w, http.StatusBadGateway)
		return
	}

	s.ui.WriteJSON(w, r, loadResponse{Videos: len(s.store.Videos())})
}

// Handle extracting the video ID from a URL
func (s *Service) VideoIDHandler(w http.ResponseWriter, r *http.Request) {

	url := r.URL.Query().Get("url")
	if url == "" {
		utils.HttpError(w, http.StatusBadRequest)
		return
	}

	videoID, ok := yt.ExtractVideoID(url)
	if !ok {
		utils.HttpError(w, http.StatusNotFound)
		return
	}

	s.ui.WriteJSON(w, r, videoIDResponse{VideoID: videoID})
}
