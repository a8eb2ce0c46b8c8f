package app

import (
	"net/http"
)

// RegisterRoutes registers routes and
// assigns custom handler to the HTTP server
func (a *App) RegisterRoutes() *App {
	mux := http.NewServeMux()

	// Videos
	mux.HandleFunc("GET /api/videos", a.playlist.VideosHandler)
	mux.HandleFunc("GET /api/videos/{index}", a.playlist.VideoHandler)
	mux.HandleFunc("GET /api/videos/{video}/index", a.playlist.VideoIndexHandler)
	mux.HandleFunc("GET /api/videos/{video}/unlock", a.playlist.UnlockHandler)

	// Active video
	mux.HandleFunc("GET /api/active", a.playlist.ActiveHandler)
	mux.HandleFunc("PUT /api/active", a.playlist.SetActiveHandler)
	mux.HandleFunc("GET /api/episode", a.playlist.EpisodeHandler)

	// Timers
	mux.HandleFunc("GET /api/timers", a.playlist.TimersHandler)
	mux.HandleFunc("PUT /api/timers", a.playlist.SetTimersHandler)
	mux.HandleFunc("POST /api/timers/{index}", a.playlist.AddTimeHandler)

	// The rest
	mux.HandleFunc("POST /api/load", a.playlist.LoadHandler)
	mux.HandleFunc("GET /api/video-id", a.playlist.VideoIDHandler)
	mux.HandleFunc("GET /health/{$}", a.misc.HealthHandler)
	mux.HandleFunc("GET /healthcheck", a.misc.HealthcheckHandler)

	// Chain middlewares that apply to all requests.
	// The order is important.
	a.server.Handler = a.mw.ApplyToAll(
		a.mw.RecoverPanic,
		a.mw.CloseBody,
		a.mw.Logging,
		a.mw.AddHeaders,
		a.mw.Compress,
		a.mw.HandleErrors,
	)(mux)

	return a
}
